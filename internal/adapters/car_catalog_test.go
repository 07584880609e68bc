package adapters

import (
	"context"
	"testing"

	catrepo "autotradespot_backend/internal/catalog/repository"
	"autotradespot_backend/platform/apperr"
)

type stubCatalog struct {
	optionCalls int
}

func (s *stubCatalog) ValidatePair(_ context.Context, makeID, modelID int) (catrepo.Make, catrepo.Model, error) {
	if makeID != 1 || modelID != 10 {
		return catrepo.Make{}, catrepo.Model{}, apperr.Validation("validation failed")
	}
	return catrepo.Make{ID: 1, Name: "Volkswagen"}, catrepo.Model{ID: 10, MakeID: 1, Name: "Golf"}, nil
}

func (s *stubCatalog) ValidateOptions(context.Context, []int) error {
	s.optionCalls++
	return nil
}

func (s *stubCatalog) ResolveNames(_ context.Context, makeName, modelName string) (*catrepo.Make, *catrepo.Model, error) {
	if makeName != "Volkswagen" {
		return nil, nil, nil
	}
	m := &catrepo.Make{ID: 1, Name: "Volkswagen"}
	if modelName != "Golf" {
		return m, nil, nil
	}
	return m, &catrepo.Model{ID: 10, MakeID: 1, Name: "Golf"}, nil
}

func TestCheckMakeModelReturnsNames(t *testing.T) {
	a := NewCarCatalog(&stubCatalog{})
	mm, err := a.CheckMakeModel(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mm.MakeName != "Volkswagen" || mm.ModelName != "Golf" {
		t.Fatalf("unexpected pair %+v", mm)
	}
	if _, err := a.CheckMakeModel(context.Background(), 1, 11); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveMakeModelKeepsMakeWithoutModel(t *testing.T) {
	a := NewCarCatalog(&stubCatalog{})
	mm, ok, err := a.ResolveMakeModel(context.Background(), "Volkswagen", "Beetle Custom")
	if err != nil || !ok {
		t.Fatalf("expected make to resolve, got ok=%v err=%v", ok, err)
	}
	if mm.MakeID != 1 || mm.ModelID != 0 {
		t.Fatalf("unexpected pair %+v", mm)
	}
	if _, ok, _ := a.ResolveMakeModel(context.Background(), "Trabant", ""); ok {
		t.Fatalf("expected unknown make not to resolve")
	}
}

func TestCheckOptionsSkipsEmptySelection(t *testing.T) {
	stub := &stubCatalog{}
	a := NewCarCatalog(stub)
	if err := a.CheckOptions(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.optionCalls != 0 {
		t.Fatalf("expected no catalog call for an empty selection")
	}
}
