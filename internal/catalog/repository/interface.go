package repository

import "context"

// Make is a car brand.
type Make struct {
	ID   int
	Name string
}

// Model is a car model belonging to a make.
type Model struct {
	ID     int
	MakeID int
	Name   string
}

// Option is a free-standing equipment tag.
type Option struct {
	ID   int
	Name string
}

// SeedMake is one make and its models as read from fixture data.
type SeedMake struct {
	Name   string   `yaml:"name"`
	Models []string `yaml:"models"`
}

// Repository is read-mostly access to the car reference catalog.
type Repository interface {
	ListMakes(ctx context.Context) ([]Make, error)
	GetMake(ctx context.Context, id int) (Make, error)
	FindMakeByName(ctx context.Context, name string) (Make, error)
	ListModels(ctx context.Context, makeID *int) ([]Model, error)
	GetModel(ctx context.Context, id int) (Model, error)
	FindModelByName(ctx context.Context, makeID int, name string) (Model, error)
	ListOptions(ctx context.Context) ([]Option, error)
	CountOptions(ctx context.Context, ids []int) (int, error)
	Seed(ctx context.Context, makes []SeedMake, options []string) error
}
