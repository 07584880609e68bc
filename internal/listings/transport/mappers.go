package transport

import (
	"time"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/ports"

	"github.com/google/uuid"
)

// ToListingResponse maps a listing. viewer may be nil; owners additionally
// get the readiness report.
func ToListingResponse(l *domain.Listing, urls map[uuid.UUID]ports.ImageURLs, viewer *uuid.UUID) ListingResponse {
	resp := ListingResponse{
		ID:            l.ID.String(),
		OwnerID:       l.OwnerID.String(),
		Title:         l.Title,
		Description:   l.Description,
		AvailableFrom: l.AvailableFrom.Format(DateLayout),
		Type:          string(l.Type),
		TypeLabel:     l.Type.Label(),
		Status:        int(l.Status),
		StatusName:    l.Status.String(),
		ViewCount:     l.ViewCount,
		Favourites:    l.Favourites,
		CreatedAt:     l.CreatedAt,
		ModifiedAt:    l.ModifiedAt,
		Pricing:       toPricingResponse(l.Pricing),
		Details:       toDetailsResponse(l.Details),
		Images:        make([]ImageResponse, 0, len(l.Images)),
	}
	for _, img := range l.Images {
		resp.Images = append(resp.Images, toImageResponse(img, urls[img.ID]))
	}

	if viewer != nil && l.IsOwner(*viewer) {
		resp.IsOwner = true
		ok, failed := l.CompleteForPosting()
		c := &CompletenessResponse{Complete: ok, Failing: make([]string, 0, len(failed)), Reasons: l.Explain(failed)}
		for _, f := range failed {
			c.Failing = append(c.Failing, string(f))
		}
		resp.Completeness = c
	}
	return resp
}

// ToListingList maps a slice of listing summaries.
func ToListingList(listings []domain.Listing, urls map[uuid.UUID]ports.ImageURLs, viewer *uuid.UUID) ListingListResponse {
	items := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		items = append(items, ToListingResponse(&listings[i], urls, viewer))
	}
	return ListingListResponse{Items: items, Total: len(items)}
}

// Images collects every image of the given listings.
func Images(listings []domain.Listing) []domain.Image {
	var images []domain.Image
	for _, l := range listings {
		images = append(images, l.Images...)
	}
	return images
}

func toPricingResponse(p domain.Pricing) *PricingResponse {
	switch v := p.(type) {
	case domain.SalePricing:
		return &PricingResponse{
			Kind:           "sale",
			PriceType:      v.PriceType,
			PriceTypeLabel: v.PriceTypeLabel(),
			Price:          v.Price.Euros(),
		}
	case domain.LeasePricing:
		kms := v.AnnualKms
		return &PricingResponse{
			Kind:           "lease",
			PriceType:      v.PriceType,
			PriceTypeLabel: v.PriceTypeLabel(),
			Price:          v.Price.Euros(),
			AnnualKms:      &kms,
			LeaseCompany:   v.LeaseCompany,
			LeasePeriod:    formatDate(v.LeasePeriod),
		}
	}
	return nil
}

func toDetailsResponse(d *domain.CarDetails) *DetailsResponse {
	if d == nil {
		return nil
	}
	resp := &DetailsResponse{
		Transmission:      d.Transmission,
		TransmissionLabel: domain.LabelFor(domain.TransmissionChoices, d.Transmission),
		FuelType:          d.FuelType,
		FuelTypeLabel:     domain.LabelFor(domain.FuelTypeChoices, d.FuelType),
		BodyType:          d.BodyType,
		BodyTypeLabel:     domain.LabelFor(domain.BodyTypeChoices, d.BodyType),
		Condition:         d.Condition,
		ConditionLabel:    domain.LabelFor(domain.ConditionChoices, d.Condition),
		Color:             d.Color,
		ColorInterior:     d.InteriorColor,
		NumDoors:          d.NumDoors,
		NumSeats:          d.NumSeats,
		ManufactureYear:   d.ManufactureYear,
		Mileage:           d.Mileage,
		MakeID:            d.MakeID,
		Make:              d.MakeName,
		ModelID:           d.ModelID,
		Model:             d.ModelName,
		Variant:           d.Variant,
		FullName:          d.FullMakeName(),
		LicensePlate:      d.LicensePlate,
		Options:           make([]OptionResponse, 0, len(d.Options)),
	}
	for _, o := range d.Options {
		resp.Options = append(resp.Options, OptionResponse{ID: o.ID, Name: o.Name})
	}
	return resp
}

// ToImageResponses maps images with their signed links.
func ToImageResponses(images []domain.Image, urls map[uuid.UUID]ports.ImageURLs) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toImageResponse(img, urls[img.ID]))
	}
	return out
}

func toImageResponse(img domain.Image, urls ports.ImageURLs) ImageResponse {
	return ImageResponse{
		ID:           img.ID.String(),
		FileName:     img.FileName,
		URL:          urls.Original,
		ThumbnailURL: urls.Thumbnail,
		PreviewURL:   urls.Preview,
		CreatedAt:    img.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// NewTypesResponse lists every enumeration.
func NewTypesResponse(now time.Time) TypesResponse {
	statuses := make([]StatusChoice, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		statuses = append(statuses, StatusChoice{Value: int(s), Label: s.String()})
	}
	return TypesResponse{
		ListingTypes:     domain.TypeChoices,
		Statuses:         statuses,
		SalePriceTypes:   domain.SalePriceTypeChoices,
		LeasePriceTypes:  domain.LeasePriceTypeChoices,
		Transmissions:    domain.TransmissionChoices,
		FuelTypes:        domain.FuelTypeChoices,
		BodyTypes:        domain.BodyTypeChoices,
		Conditions:       domain.ConditionChoices,
		AnnualKms:        domain.AnnualKmChoices,
		LeasePeriods:     domain.LeasePeriodChoices,
		ManufactureYears: domain.ManufactureYears(now),
	}
}
