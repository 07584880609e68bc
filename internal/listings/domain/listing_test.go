package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func completeListing() *Listing {
	return &Listing{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Type:    TypeSale,
		Status:  StatusDraft,
		Pricing: SalePricing{PriceType: "F", Price: MoneyFromEuros(12500)},
		Details: &CarDetails{Transmission: "MANUAL", FuelType: "B"},
		Images:  []Image{{ID: uuid.New()}},
	}
}

func TestCompleteForPostingPasses(t *testing.T) {
	ok, failed := completeListing().CompleteForPosting()
	if !ok || len(failed) != 0 {
		t.Fatalf("expected complete listing, got %v %v", ok, failed)
	}
}

func TestCompleteForPostingNamesExactlyTheFailingChecks(t *testing.T) {
	l := completeListing()
	l.Images = nil

	ok, failed := l.CompleteForPosting()
	if ok {
		t.Fatal("expected gate to fail without images")
	}
	if !reflect.DeepEqual(failed, []Check{CheckImages}) {
		t.Fatalf("expected only images to fail, got %v", failed)
	}
}

func TestCompleteForPostingAllFailures(t *testing.T) {
	l := &Listing{Type: TypeLease, Status: StatusReported}
	ok, failed := l.CompleteForPosting()
	if ok {
		t.Fatal("expected gate to fail")
	}
	want := []Check{CheckStatus, CheckPricing, CheckImages, CheckDetails}
	if !reflect.DeepEqual(failed, want) {
		t.Fatalf("expected %v, got %v", want, failed)
	}

	reasons := l.Explain(failed)
	if len(reasons) != 4 {
		t.Fatalf("expected four reasons, got %d", len(reasons))
	}
	if reasons[0] != "this listing hs been Reported and cannot be changed at this time." {
		t.Fatalf("unexpected status reason %q", reasons[0])
	}
}

func TestCompleteForPostingRejectsMismatchedPricing(t *testing.T) {
	l := completeListing()
	l.Type = TypeLease

	_, failed := l.CompleteForPosting()
	if !reflect.DeepEqual(failed, []Check{CheckPricing}) {
		t.Fatalf("expected pricing to fail for mismatched type, got %v", failed)
	}
}

func TestVisibility(t *testing.T) {
	l := completeListing()
	owner := l.OwnerID
	stranger := uuid.New()

	if !l.CanView(&owner, false) {
		t.Fatal("owner must see their draft")
	}
	if !l.CanView(&stranger, true) {
		t.Fatal("staff must see drafts")
	}
	if l.CanView(&stranger, false) {
		t.Fatal("strangers must not see drafts")
	}
	if l.CanView(nil, false) {
		t.Fatal("anonymous visitors must not see drafts")
	}

	for _, s := range []Status{StatusActive, StatusReserved, StatusSold} {
		l.Status = s
		if !l.CanView(nil, false) {
			t.Fatalf("expected %s to be public", s)
		}
	}
}

func TestCountsView(t *testing.T) {
	l := completeListing()
	l.Status = StatusActive
	owner := l.OwnerID
	other := uuid.New()

	if l.CountsView(&owner) {
		t.Fatal("owner views must not count")
	}
	if !l.CountsView(&other) || !l.CountsView(nil) {
		t.Fatal("visitor views must count")
	}
	l.Status = StatusDraft
	if l.CountsView(&other) {
		t.Fatal("views of hidden listings must not count")
	}
}

func TestTransitions(t *testing.T) {
	l := completeListing()
	if err := l.SetUnderReview(); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if err := l.SetUnderReview(); err != ErrTransitionNotAllowed {
		t.Fatalf("expected review to be irreversible by owner, got %v", err)
	}
	if err := l.Approve(); err != nil || l.Status != StatusActive {
		t.Fatalf("approve: %v (%s)", err, l.Status)
	}
	if err := l.SetReserved(); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := l.SetSold(); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if err := l.SetDeleted(); err != nil || l.Status != StatusRemoved {
		t.Fatalf("delete: %v (%s)", err, l.Status)
	}
	if err := l.Restore(); err != nil || l.Status != StatusActive {
		t.Fatalf("restore: %v (%s)", err, l.Status)
	}
	if err := l.Report(); err != nil || l.Status != StatusReported {
		t.Fatalf("report: %v (%s)", err, l.Status)
	}
	if err := l.SetDeleted(); err != ErrTransitionNotAllowed {
		t.Fatalf("expected reported listing to stay reported, got %v", err)
	}
}

func TestSetUnderReviewRequiresCompleteDraft(t *testing.T) {
	l := completeListing()
	l.Details = nil
	if err := l.SetUnderReview(); err != ErrIncomplete {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if l.Status != StatusDraft {
		t.Fatalf("expected status to stay draft, got %s", l.Status)
	}
}

func TestPublishKeepsIncompleteDraft(t *testing.T) {
	l := completeListing()
	l.Pricing = nil
	if err := l.Publish(); err != ErrIncomplete {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if l.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", l.Status)
	}

	l.Pricing = SalePricing{PriceType: "N", Price: 100}
	if err := l.Publish(); err != nil || l.Status != StatusActive {
		t.Fatalf("publish: %v (%s)", err, l.Status)
	}
}

func TestMoney(t *testing.T) {
	m := MoneyFromEuros(12500.004)
	if m != 1250000 {
		t.Fatalf("expected rounding to 1250000 cents, got %d", m)
	}
	if MoneyFromEuros(99.5).String() != "99.50" {
		t.Fatalf("unexpected format %q", MoneyFromEuros(99.5).String())
	}
	if Money(1999).Whole() != 19 {
		t.Fatal("expected whole euros")
	}
}

func TestManufactureYears(t *testing.T) {
	years := ManufactureYears(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	if years[0] != 2024 || years[len(years)-1] != FirstManufactureYear {
		t.Fatalf("unexpected range %d..%d", years[0], years[len(years)-1])
	}
}

func TestFullMakeName(t *testing.T) {
	d := CarDetails{MakeName: "Volkswagen", ModelName: "Golf", Variant: "GTI"}
	if d.FullMakeName() != "Volkswagen Golf GTI" {
		t.Fatalf("unexpected name %q", d.FullMakeName())
	}
	d.Variant = ""
	if d.FullMakeName() != "Volkswagen Golf" {
		t.Fatalf("unexpected name %q", d.FullMakeName())
	}
}
