// Package service implements the listing search engine: a facet selection
// is compiled into one conjunctive query over publicly visible listings.
package service

import (
	"context"
	"time"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/internal/search/transport"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"
)

// ListingFinder is the read side of the listing store.
type ListingFinder interface {
	ListSummaries(ctx context.Context, filter repository.Filter) ([]domain.Listing, error)
}

type Service struct {
	listings ListingFinder
	log      *logger.Logger
	now      func() time.Time
}

func New(listings ListingFinder, log *logger.Logger) *Service {
	return &Service{listings: listings, log: log, now: time.Now}
}

// Search returns the active listings matching every supplied facet, oldest
// first.
func (s *Service) Search(ctx context.Context, req transport.SearchRequest) ([]domain.Listing, error) {
	preds := Build(req, s.now())
	s.log.Debug("listing search", "predicates", Describe(preds))

	results, err := s.listings.ListSummaries(ctx, Compile(preds))
	if err != nil {
		appErr := apperr.Internal("search failed").WithOp("search.Search")
		appErr.Err = err
		return nil, appErr
	}
	return results, nil
}

var annualKmFilter = []transport.IntChoice{
	{Value: 5000, Label: "5.000"},
	{Value: 10000, Label: "10.000"},
	{Value: 12000, Label: "12.000"},
	{Value: 15000, Label: "15.000"},
	{Value: 17500, Label: "17.500"},
	{Value: 18000, Label: "18.000"},
	{Value: 20000, Label: "20.000"},
	{Value: 25000, Label: "25.000"},
	{Value: 30000, Label: "30.000"},
	{Value: 35000, Label: "35.000"},
	{Value: 40000, Label: "40.000+"},
}

var leasePeriodFilter = []transport.IntChoice{
	{Value: 0, Label: "any period"},
	{Value: 12, Label: "1 - 12 months"},
	{Value: 24, Label: "12 - 24 months"},
	{Value: 36, Label: "24 - 36 months"},
	{Value: 48, Label: "36 - 48 months"},
	{Value: 60, Label: "48 - 60 months"},
}

// Filters lists the options of the select facets.
func (s *Service) Filters() transport.FiltersResponse {
	return transport.FiltersResponse{
		ListingTypes:    domain.TypeChoices,
		SalePriceTypes:  domain.SalePriceTypeChoices,
		LeasePriceTypes: domain.LeasePriceTypeChoices,
		FuelTypes:       domain.FuelTypeChoices,
		Transmissions:   domain.TransmissionChoices,
		NumDoors:        []int{2, 3, 4, 5},
		AnnualKms:       annualKmFilter,
		LeasePeriods:    leasePeriodFilter,
	}
}
