// Package service holds the car reference catalog use cases.
package service

import (
	"context"
	"fmt"

	"autotradespot_backend/internal/catalog/repository"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"

	"gopkg.in/yaml.v3"
)

// Fixture is the shape of the reference data seed file.
type Fixture struct {
	Makes   []repository.SeedMake `yaml:"makes"`
	Options []string              `yaml:"options"`
}

// ParseFixture decodes YAML seed data.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse car fixture: %w", err)
	}
	for i, m := range f.Makes {
		if m.Name == "" {
			return Fixture{}, fmt.Errorf("parse car fixture: make %d has no name", i)
		}
	}
	return f, nil
}

type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Seed loads the fixture into the catalog without touching existing rows.
func (s *Service) Seed(ctx context.Context, data []byte) error {
	fixture, err := ParseFixture(data)
	if err != nil {
		return err
	}
	if err := s.repo.Seed(ctx, fixture.Makes, fixture.Options); err != nil {
		return err
	}
	s.log.Info("car catalog seeded", "makes", len(fixture.Makes), "options", len(fixture.Options))
	return nil
}

func (s *Service) ListMakes(ctx context.Context) ([]repository.Make, error) {
	return s.repo.ListMakes(ctx)
}

// ListModels returns every model, or only those of makeID when given.
func (s *Service) ListModels(ctx context.Context, makeID *int) ([]repository.Model, error) {
	return s.repo.ListModels(ctx, makeID)
}

func (s *Service) ListOptions(ctx context.Context) ([]repository.Option, error) {
	return s.repo.ListOptions(ctx)
}

func (s *Service) GetMake(ctx context.Context, id int) (repository.Make, error) {
	return s.repo.GetMake(ctx, id)
}

func (s *Service) GetModel(ctx context.Context, id int) (repository.Model, error) {
	return s.repo.GetModel(ctx, id)
}

// ResolveNames maps registry-provided names to catalog entries. A missing
// model still returns the make.
func (s *Service) ResolveNames(ctx context.Context, makeName, modelName string) (*repository.Make, *repository.Model, error) {
	if makeName == "" {
		return nil, nil, nil
	}
	m, err := s.repo.FindMakeByName(ctx, makeName)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if modelName == "" {
		return &m, nil, nil
	}
	model, err := s.repo.FindModelByName(ctx, m.ID, modelName)
	if apperr.Is(err, apperr.KindNotFound) {
		return &m, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &m, &model, nil
}

// ValidatePair checks that modelID belongs to makeID and returns both.
func (s *Service) ValidatePair(ctx context.Context, makeID, modelID int) (repository.Make, repository.Model, error) {
	m, err := s.repo.GetMake(ctx, makeID)
	if apperr.Is(err, apperr.KindNotFound) {
		return repository.Make{}, repository.Model{}, invalidChoice("make")
	}
	if err != nil {
		return repository.Make{}, repository.Model{}, err
	}

	model, err := s.repo.GetModel(ctx, modelID)
	if apperr.Is(err, apperr.KindNotFound) || (err == nil && model.MakeID != m.ID) {
		return repository.Make{}, repository.Model{}, invalidChoice("model")
	}
	if err != nil {
		return repository.Make{}, repository.Model{}, err
	}
	return m, model, nil
}

// ValidateOptions rejects unknown option ids.
func (s *Service) ValidateOptions(ctx context.Context, ids []int) error {
	unique := dedupe(ids)
	count, err := s.repo.CountOptions(ctx, unique)
	if err != nil {
		return err
	}
	if count != len(unique) {
		return invalidChoice("options")
	}
	return nil
}

func invalidChoice(field string) error {
	return apperr.Validation("validation failed").WithDetails(map[string]string{
		field: "Select a valid choice. That choice is not one of the available choices.",
	})
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
