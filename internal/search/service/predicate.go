package service

import (
	"fmt"
	"strings"
	"time"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/internal/search/transport"
)

// Op is a comparison used by a predicate.
type Op string

const (
	OpEq  Op = "="
	OpIn  Op = "IN"
	OpGte Op = ">="
	OpLte Op = "<="
)

// Predicate is one typed filter clause over the listing summary columns.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

const (
	daysPerPeriodMonth = 30
	leaseWindowDays    = 356
)

// Build turns a facet selection into predicates. The active status
// predicate always comes first. Price, mileage and price type facets only
// apply once a listing type is chosen, and each listing type reads its
// own pricing table.
func Build(req transport.SearchRequest, now time.Time) []Predicate {
	preds := []Predicate{{Column: "l.status", Op: OpEq, Value: int16(domain.StatusActive)}}
	add := func(column string, op Op, value any) {
		preds = append(preds, Predicate{Column: column, Op: op, Value: value})
	}

	if req.ListingType != "" {
		add("l.type", OpEq, req.ListingType)
	}
	if len(req.FuelType) > 0 {
		add("cd.fuel_type", OpIn, req.FuelType)
	}
	if len(req.Transmission) > 0 {
		add("cd.transmission", OpIn, req.Transmission)
	}
	if len(req.NumDoors) > 0 {
		add("cd.num_doors", OpIn, req.NumDoors)
	}
	if req.Make > 0 {
		add("cd.make_id", OpEq, req.Make)
	}
	if req.Model > 0 {
		add("cd.model_id", OpEq, req.Model)
	}

	switch domain.Type(req.ListingType) {
	case domain.TypeSale:
		if req.PriceType != "" {
			add("sp.price_type", OpEq, req.PriceType)
		}
		if req.FromPriceSale > 0 {
			add("sp.price", OpGte, req.FromPriceSale)
		}
		if req.ToPriceSale > 0 {
			add("sp.price", OpLte, req.ToPriceSale)
		}
		if req.MaxKmsDriven > 0 {
			add("cd.mileage", OpLte, req.MaxKmsDriven)
		}
	case domain.TypeLease:
		if req.PriceType != "" {
			add("lp.price_type", OpEq, req.PriceType)
		}
		if req.FromPriceLease > 0 {
			add("lp.price", OpGte, req.FromPriceLease)
		}
		if req.ToPriceLease > 0 {
			add("lp.price", OpLte, req.ToPriceLease)
		}
		if req.MinAnnualKms > 0 {
			add("lp.annual_kms", OpGte, req.MinAnnualKms)
		}
		if req.LeasePeriod > 0 {
			start := now.AddDate(0, 0, req.LeasePeriod*daysPerPeriodMonth)
			add("lp.lease_period", OpGte, start)
			add("lp.lease_period", OpLte, start.AddDate(0, 0, leaseWindowDays))
		}
	}
	return preds
}

// Compile renders predicates as one conjunctive filter with positional
// arguments.
func Compile(preds []Predicate) repository.Filter {
	f := repository.Filter{
		Where: make([]string, 0, len(preds)),
		Args:  make([]any, 0, len(preds)),
	}
	for _, p := range preds {
		f.Args = append(f.Args, p.Value)
		n := len(f.Args)
		if p.Op == OpIn {
			f.Where = append(f.Where, fmt.Sprintf("%s = ANY($%d)", p.Column, n))
			continue
		}
		f.Where = append(f.Where, fmt.Sprintf("%s %s $%d", p.Column, p.Op, n))
	}
	return f
}

// Describe renders predicates for debug logging.
func Describe(preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = fmt.Sprintf("%s %s %v", p.Column, p.Op, p.Value)
	}
	return strings.Join(parts, " AND ")
}
