package adapters

import (
	"context"
	"fmt"

	catrepo "autotradespot_backend/internal/catalog/repository"
	listingports "autotradespot_backend/internal/listings/ports"
	wizardports "autotradespot_backend/internal/wizard/ports"
)

// CarReferenceChecker is the part of the catalog service the adapter needs.
type CarReferenceChecker interface {
	ValidatePair(ctx context.Context, makeID, modelID int) (catrepo.Make, catrepo.Model, error)
	ValidateOptions(ctx context.Context, ids []int) error
	ResolveNames(ctx context.Context, makeName, modelName string) (*catrepo.Make, *catrepo.Model, error)
}

// CarCatalog adapts the car catalog for the listings and wizard domains,
// satisfying listingports.CatalogValidator and wizardports.CarCatalog.
type CarCatalog struct {
	catalog CarReferenceChecker
}

func NewCarCatalog(catalog CarReferenceChecker) *CarCatalog {
	return &CarCatalog{catalog: catalog}
}

func (a *CarCatalog) CheckPair(ctx context.Context, makeID, modelID int) error {
	_, _, err := a.catalog.ValidatePair(ctx, makeID, modelID)
	return err
}

func (a *CarCatalog) CheckOptions(ctx context.Context, optionIDs []int) error {
	if len(optionIDs) == 0 {
		return nil
	}
	return a.catalog.ValidateOptions(ctx, optionIDs)
}

func (a *CarCatalog) CheckMakeModel(ctx context.Context, makeID, modelID int) (wizardports.MakeModel, error) {
	m, model, err := a.catalog.ValidatePair(ctx, makeID, modelID)
	if err != nil {
		return wizardports.MakeModel{}, err
	}
	return wizardports.MakeModel{MakeID: m.ID, MakeName: m.Name, ModelID: model.ID, ModelName: model.Name}, nil
}

// ResolveMakeModel maps registry names to catalog ids. An unknown model
// still resolves the make.
func (a *CarCatalog) ResolveMakeModel(ctx context.Context, makeName, modelName string) (wizardports.MakeModel, bool, error) {
	m, model, err := a.catalog.ResolveNames(ctx, makeName, modelName)
	if err != nil {
		return wizardports.MakeModel{}, false, fmt.Errorf("car catalog adapter: resolve names: %w", err)
	}
	if m == nil {
		return wizardports.MakeModel{}, false, nil
	}
	mm := wizardports.MakeModel{MakeID: m.ID, MakeName: m.Name}
	if model != nil {
		mm.ModelID = model.ID
		mm.ModelName = model.Name
	}
	return mm, true, nil
}

var (
	_ listingports.CatalogValidator = (*CarCatalog)(nil)
	_ wizardports.CarCatalog        = (*CarCatalog)(nil)
)
