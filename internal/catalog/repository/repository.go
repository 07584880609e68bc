package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autotradespot_backend/platform/apperr"
)

const (
	makeNotFoundMessage  = "car make not found"
	modelNotFoundMessage = "car model not found"

	listModelsQuery = `
		SELECT id, make_id, name FROM car_models
		WHERE ($1::int IS NULL OR make_id = $1)
		ORDER BY make_id, name`
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) ListMakes(ctx context.Context) ([]Make, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM car_makes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list makes: %w", err)
	}
	defer rows.Close()

	makes := make([]Make, 0)
	for rows.Next() {
		var m Make
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan make: %w", err)
		}
		makes = append(makes, m)
	}
	return makes, rows.Err()
}

func (r *Repo) GetMake(ctx context.Context, id int) (Make, error) {
	var m Make
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM car_makes WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Make{}, apperr.NotFound(makeNotFoundMessage)
	}
	if err != nil {
		return Make{}, fmt.Errorf("get make: %w", err)
	}
	return m, nil
}

// FindMakeByName matches case-insensitively, as registry data is upper case.
func (r *Repo) FindMakeByName(ctx context.Context, name string) (Make, error) {
	var m Make
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM car_makes WHERE lower(name) = lower($1)`, name).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Make{}, apperr.NotFound(makeNotFoundMessage)
	}
	if err != nil {
		return Make{}, fmt.Errorf("find make: %w", err)
	}
	return m, nil
}

func (r *Repo) ListModels(ctx context.Context, makeID *int) ([]Model, error) {
	rows, err := r.pool.Query(ctx, listModelsQuery, makeID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	models := make([]Model, 0)
	for rows.Next() {
		var m Model
		if err := rows.Scan(&m.ID, &m.MakeID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (r *Repo) GetModel(ctx context.Context, id int) (Model, error) {
	var m Model
	err := r.pool.QueryRow(ctx, `SELECT id, make_id, name FROM car_models WHERE id = $1`, id).
		Scan(&m.ID, &m.MakeID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Model{}, apperr.NotFound(modelNotFoundMessage)
	}
	if err != nil {
		return Model{}, fmt.Errorf("get model: %w", err)
	}
	return m, nil
}

func (r *Repo) FindModelByName(ctx context.Context, makeID int, name string) (Model, error) {
	var m Model
	err := r.pool.QueryRow(ctx, `
		SELECT id, make_id, name FROM car_models
		WHERE make_id = $1 AND lower(name) = lower($2)`, makeID, name).
		Scan(&m.ID, &m.MakeID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Model{}, apperr.NotFound(modelNotFoundMessage)
	}
	if err != nil {
		return Model{}, fmt.Errorf("find model: %w", err)
	}
	return m, nil
}

func (r *Repo) ListOptions(ctx context.Context) ([]Option, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM car_options ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	options := make([]Option, 0)
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *Repo) CountOptions(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM car_options WHERE id = ANY($1)`, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("count options: %w", err)
	}
	return count, nil
}

// Seed inserts fixture rows that are not present yet. Existing rows are kept.
func (r *Repo) Seed(ctx context.Context, makes []SeedMake, options []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, m := range makes {
		batch.Queue(`INSERT INTO car_makes (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, m.Name)
		for _, model := range m.Models {
			batch.Queue(`
				INSERT INTO car_models (make_id, name)
				SELECT id, $2 FROM car_makes WHERE name = $1
				ON CONFLICT (make_id, name) DO NOTHING`, m.Name, model)
		}
	}
	for _, name := range options {
		batch.Queue(`INSERT INTO car_options (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return tx.Commit(ctx)
}
