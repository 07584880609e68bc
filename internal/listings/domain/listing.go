// Package domain holds the listing aggregate, its lifecycle rules and the
// enumerations shared by the wizard and the search engine.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTransitionNotAllowed is returned when a status change is illegal from the current state.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	// ErrNotOwner is returned when a non-owner attempts an owner-only change.
	ErrNotOwner = errors.New("not the owner of this listing")
	// ErrIncomplete is returned when a listing fails the readiness gate.
	ErrIncomplete = errors.New("listing is not complete for posting")
)

// Image is one uploaded picture of a listing.
type Image struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	FileName     string
	ContentType  string
	SizeBytes    int64
	OriginalKey  string
	ThumbnailKey string
	PreviewKey   string
	CreatedAt    time.Time
}

// Option is a selected car option.
type Option struct {
	ID   int
	Name string
}

// CarDetails describes the listed vehicle.
type CarDetails struct {
	Transmission    string
	FuelType        string
	BodyType        string
	Condition       string
	Color           string
	InteriorColor   string
	NumDoors        *int
	NumSeats        *int
	ManufactureYear int
	Mileage         int
	MakeID          *int
	MakeName        string
	ModelID         *int
	ModelName       string
	Variant         string
	LicensePlate    string
	Options         []Option
}

// FullMakeName joins make, model and variant for display.
func (d *CarDetails) FullMakeName() string {
	name := d.MakeName
	for _, part := range []string{d.ModelName, d.Variant} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// OptionIDs returns the ids of the selected options.
func (d *CarDetails) OptionIDs() []int {
	ids := make([]int, len(d.Options))
	for i, o := range d.Options {
		ids[i] = o.ID
	}
	return ids
}

// Listing is a single vehicle advertisement.
type Listing struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Description   string
	AvailableFrom time.Time
	Type          Type
	Status        Status
	ViewCount     int64
	CreatedAt     time.Time
	ModifiedAt    time.Time

	Pricing    Pricing
	Details    *CarDetails
	Images     []Image
	Favourites int
}

// Check names one readiness requirement of the posting gate.
type Check string

const (
	CheckStatus  Check = "status"
	CheckPricing Check = "pricing"
	CheckImages  Check = "images"
	CheckDetails Check = "details"
)

var checkOrder = []Check{CheckStatus, CheckPricing, CheckImages, CheckDetails}

// CompleteForPosting evaluates the readiness gate. The returned checks are
// the failing requirements in a stable order.
func (l *Listing) CompleteForPosting() (bool, []Check) {
	passed := map[Check]bool{
		CheckStatus:  !l.Status.Locked(),
		CheckPricing: l.Pricing != nil && l.Pricing.ListingType() == l.Type,
		CheckImages:  len(l.Images) > 0,
		CheckDetails: l.Details != nil,
	}

	var failed []Check
	for _, c := range checkOrder {
		if !passed[c] {
			failed = append(failed, c)
		}
	}
	return len(failed) == 0, failed
}

// Explain turns failing checks into user-facing reasons.
func (l *Listing) Explain(checks []Check) []string {
	reasons := make([]string, 0, len(checks))
	for _, c := range checks {
		switch c {
		case CheckStatus:
			reasons = append(reasons, fmt.Sprintf("this listing hs been %s and cannot be changed at this time.", l.Status))
		case CheckPricing:
			reasons = append(reasons, "this listing has no pricing details, these are needed before being able to activate the listing.")
		case CheckImages:
			reasons = append(reasons, "this listing has either no images, or the images do not meet the minimum requirements")
		case CheckDetails:
			reasons = append(reasons, "this listing has insufficient details about the listed object")
		}
	}
	return reasons
}

// VisibleToPublic reports whether any visitor may open the listing.
func (l *Listing) VisibleToPublic() bool {
	return l.Status.PubliclyVisible()
}

// IsOwner reports whether userID owns the listing.
func (l *Listing) IsOwner(userID uuid.UUID) bool {
	return userID != uuid.Nil && l.OwnerID == userID
}

// CanView applies the visibility rule for a viewer. A nil viewer is anonymous.
func (l *Listing) CanView(viewer *uuid.UUID, staff bool) bool {
	if l.VisibleToPublic() || staff {
		return true
	}
	return viewer != nil && l.IsOwner(*viewer)
}

// CountsView reports whether a view by viewer increments the view counter.
func (l *Listing) CountsView(viewer *uuid.UUID) bool {
	if !l.VisibleToPublic() {
		return false
	}
	return viewer == nil || !l.IsOwner(*viewer)
}

// SetUnderReview submits the listing for moderation. Leaving DRAFT requires
// the readiness gate to pass.
func (l *Listing) SetUnderReview() error {
	if !l.Status.OwnerEditable() {
		return ErrTransitionNotAllowed
	}
	if ok, _ := l.CompleteForPosting(); !ok {
		return ErrIncomplete
	}
	l.Status = StatusUnderReview
	return nil
}

// Approve activates a listing after moderation.
func (l *Listing) Approve() error {
	if l.Status != StatusUnderReview {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusActive
	return nil
}

// Restore brings a removed listing back online at the owner's request.
func (l *Listing) Restore() error {
	if l.Status != StatusRemoved {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusActive
	return nil
}

// Publish activates a draft that passes the readiness gate.
func (l *Listing) Publish() error {
	if l.Status.Locked() || l.Status == StatusUnderReview {
		return ErrTransitionNotAllowed
	}
	if ok, _ := l.CompleteForPosting(); !ok {
		return ErrIncomplete
	}
	l.Status = StatusActive
	return nil
}

// SaveAsDraft returns an editable listing to DRAFT.
func (l *Listing) SaveAsDraft() error {
	if l.Status.Locked() || l.Status == StatusUnderReview {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusDraft
	return nil
}

// SetDeleted soft-deletes the listing.
func (l *Listing) SetDeleted() error {
	if l.Status == StatusReported {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusRemoved
	return nil
}

// SetReserved marks an active listing as reserved.
func (l *Listing) SetReserved() error {
	if l.Status != StatusActive {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusReserved
	return nil
}

// SetSold marks an active or reserved listing as sold.
func (l *Listing) SetSold() error {
	if l.Status != StatusActive && l.Status != StatusReserved {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusSold
	return nil
}

// Report flags a public listing for moderation.
func (l *Listing) Report() error {
	if !l.VisibleToPublic() {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusReported
	return nil
}

// Deactivate takes a listing offline without removing it.
func (l *Listing) Deactivate() error {
	if l.Status.Locked() {
		return ErrTransitionNotAllowed
	}
	l.Status = StatusInactive
	return nil
}
