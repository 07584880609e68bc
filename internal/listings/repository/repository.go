// Package repository is the pgx-backed listing store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listingNotFoundMessage = "listing not found"
	imageNotFoundMessage   = "image not found"

	foreignKeyViolation = "23503"
)

// Repo implements Repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new listing repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, ownerID uuid.UUID, fields ListingFields) (*domain.Listing, error) {
	l := &domain.Listing{
		OwnerID:       ownerID,
		Title:         fields.Title,
		Description:   fields.Description,
		AvailableFrom: fields.AvailableFrom,
		Type:          fields.Type,
	}
	err := r.pool.QueryRow(ctx, insertListingQuery,
		ownerID, fields.Title, fields.Description, fields.AvailableFrom, string(fields.Type),
	).Scan(&l.ID, &l.Status, &l.ViewCount, &l.CreatedAt, &l.ModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}
	return l, nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields ListingFields) error {
	tag, err := r.pool.Exec(ctx, updateListingQuery,
		id, fields.Title, fields.Description, fields.AvailableFrom, string(fields.Type),
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(listingNotFoundMessage)
	}
	return nil
}

// UpsertPricing writes the pricing variant and removes the other one, so a
// listing never carries both.
func (r *Repo) UpsertPricing(ctx context.Context, listingID uuid.UUID, pricing domain.Pricing) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin pricing tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	switch p := pricing.(type) {
	case domain.SalePricing:
		if _, err := tx.Exec(ctx, upsertSalePricingQuery, listingID, p.PriceType, int64(p.Price)); err != nil {
			return mapWriteError("upsert sale pricing", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM lease_pricing WHERE listing_id = $1`, listingID); err != nil {
			return fmt.Errorf("drop lease pricing: %w", err)
		}
	case domain.LeasePricing:
		if _, err := tx.Exec(ctx, upsertLeasePricingQuery,
			listingID, p.PriceType, int64(p.Price), p.AnnualKms, p.LeaseCompany, p.LeasePeriod,
		); err != nil {
			return mapWriteError("upsert lease pricing", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM sale_pricing WHERE listing_id = $1`, listingID); err != nil {
			return fmt.Errorf("drop sale pricing: %w", err)
		}
	default:
		return fmt.Errorf("unsupported pricing %T", pricing)
	}

	if _, err := tx.Exec(ctx, `UPDATE listings SET modified_at = now() WHERE id = $1`, listingID); err != nil {
		return fmt.Errorf("touch listing: %w", err)
	}
	return tx.Commit(ctx)
}

// UpsertDetails writes the car details and replaces the full option set.
func (r *Repo) UpsertDetails(ctx context.Context, listingID uuid.UUID, d domain.CarDetails, optionIDs []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin details tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, upsertDetailsQuery,
		listingID, d.Transmission, d.FuelType, d.BodyType, d.Condition, d.Color, d.InteriorColor,
		d.NumDoors, d.NumSeats, d.ManufactureYear, d.Mileage, d.MakeID, d.ModelID, d.Variant, d.LicensePlate,
	); err != nil {
		return mapWriteError("upsert car details", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM car_detail_options WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("clear options: %w", err)
	}
	if len(optionIDs) > 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO car_detail_options (listing_id, option_id)
			SELECT $1, unnest($2::int[])
			ON CONFLICT DO NOTHING`, listingID, optionIDs); err != nil {
			return mapWriteError("set options", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE listings SET modified_at = now() WHERE id = $1`, listingID); err != nil {
		return fmt.Errorf("touch listing: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listings, err := r.ListSummaries(ctx, Filter{Where: []string{"l.id = $1"}, Args: []any{id}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, apperr.NotFound(listingNotFoundMessage)
	}
	l := listings[0]

	images, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Images = images

	if l.Details != nil {
		options, err := r.listOptions(ctx, id)
		if err != nil {
			return nil, err
		}
		l.Details.Options = options
	}
	return &l, nil
}

// ListSummaries returns listings with pricing, details and their first image.
func (r *Repo) ListSummaries(ctx context.Context, f Filter) ([]domain.Listing, error) {
	query := BuildSummaryQuery(f)
	rows, err := r.pool.Query(ctx, query, f.Args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// BuildSummaryQuery renders the summary select for a filter.
func BuildSummaryQuery(f Filter) string {
	var b strings.Builder
	b.WriteString(summarySelect)
	if len(f.Where) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(f.Where, "\n\t  AND "))
	}
	order := f.OrderBy
	if order == "" {
		order = DefaultOrder
	}
	b.WriteString("\n\tORDER BY ")
	b.WriteString(order)
	if f.Limit > 0 {
		b.WriteString("\n\tLIMIT ")
		b.WriteString(strconv.Itoa(f.Limit))
	}
	return b.String()
}

func scanSummary(row pgx.Row) (domain.Listing, error) {
	var (
		l       domain.Listing
		typ     string
		spType  *string
		spPrice *int64
		lpType  *string
		lpPrice *int64
		lpKms   *int
		lpComp  *string
		lpEnd   *time.Time

		hasDetails                   bool
		transmission, fuel, body     *string
		condition, color, interior   *string
		doors, seats, year, mileage  *int
		makeID, modelID              *int
		makeName, modelName, variant *string
		plate                        *string

		imgID                     *uuid.UUID
		imgName, imgType          *string
		imgSize                   *int64
		imgOrig, imgThumb, imgPrv *string
		imgCreated                *time.Time
		favourites                int
	)

	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.AvailableFrom, &typ, &l.Status,
		&l.ViewCount, &l.CreatedAt, &l.ModifiedAt,
		&spType, &spPrice,
		&lpType, &lpPrice, &lpKms, &lpComp, &lpEnd,
		&hasDetails, &transmission, &fuel, &body, &condition,
		&color, &interior, &doors, &seats, &year, &mileage,
		&makeID, &makeName, &modelID, &modelName, &variant, &plate,
		&imgID, &imgName, &imgType, &imgSize, &imgOrig, &imgThumb, &imgPrv, &imgCreated,
		&favourites,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Type = domain.Type(typ)
	l.Favourites = favourites

	sale := func() domain.Pricing {
		return domain.SalePricing{PriceType: deref(spType), Price: domain.Money(derefInt64(spPrice))}
	}
	lease := func() domain.Pricing {
		p := domain.LeasePricing{
			PriceType:    deref(lpType),
			Price:        domain.Money(derefInt64(lpPrice)),
			AnnualKms:    derefInt(lpKms),
			LeaseCompany: deref(lpComp),
		}
		if lpEnd != nil {
			p.LeasePeriod = *lpEnd
		}
		return p
	}
	switch {
	case l.Type == domain.TypeSale && spType != nil:
		l.Pricing = sale()
	case l.Type == domain.TypeLease && lpType != nil:
		l.Pricing = lease()
	case spType != nil:
		l.Pricing = sale()
	case lpType != nil:
		l.Pricing = lease()
	}

	if hasDetails {
		l.Details = &domain.CarDetails{
			Transmission:    deref(transmission),
			FuelType:        deref(fuel),
			BodyType:        deref(body),
			Condition:       deref(condition),
			Color:           deref(color),
			InteriorColor:   deref(interior),
			NumDoors:        doors,
			NumSeats:        seats,
			ManufactureYear: derefInt(year),
			Mileage:         derefInt(mileage),
			MakeID:          makeID,
			MakeName:        deref(makeName),
			ModelID:         modelID,
			ModelName:       deref(modelName),
			Variant:         deref(variant),
			LicensePlate:    deref(plate),
		}
	}

	if imgID != nil {
		img := domain.Image{
			ID:           *imgID,
			ListingID:    l.ID,
			FileName:     deref(imgName),
			ContentType:  deref(imgType),
			SizeBytes:    derefInt64(imgSize),
			OriginalKey:  deref(imgOrig),
			ThumbnailKey: deref(imgThumb),
			PreviewKey:   deref(imgPrv),
		}
		if imgCreated != nil {
			img.CreatedAt = *imgCreated
		}
		l.Images = []domain.Image{img}
	}
	return l, nil
}

func (r *Repo) listOptions(ctx context.Context, listingID uuid.UUID) ([]domain.Option, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.name
		FROM car_detail_options cdo
		JOIN car_options o ON o.id = cdo.option_id
		WHERE cdo.listing_id = $1
		ORDER BY o.name`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list listing options: %w", err)
	}
	defer rows.Close()

	options := make([]domain.Option, 0)
	for rows.Next() {
		var o domain.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *Repo) ListImages(ctx context.Context, listingID uuid.UUID) ([]domain.Image, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+imageColumns+` FROM listing_images WHERE listing_id = $1 ORDER BY created_at`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *Repo) GetImage(ctx context.Context, imageID uuid.UUID) (domain.Image, error) {
	img, err := scanImage(r.pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM listing_images WHERE id = $1`, imageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Image{}, apperr.NotFound(imageNotFoundMessage)
	}
	if err != nil {
		return domain.Image{}, fmt.Errorf("get image: %w", err)
	}
	return img, nil
}

func (r *Repo) AddImage(ctx context.Context, img domain.Image) (domain.Image, error) {
	created, err := scanImage(r.pool.QueryRow(ctx, `
		INSERT INTO listing_images (listing_id, file_name, content_type, size_bytes, original_key, thumbnail_key, preview_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+imageColumns,
		img.ListingID, img.FileName, img.ContentType, img.SizeBytes, img.OriginalKey, img.ThumbnailKey, img.PreviewKey,
	))
	if err != nil {
		return domain.Image{}, mapWriteError("insert image", err)
	}
	return created, nil
}

func (r *Repo) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listing_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(imageNotFoundMessage)
	}
	return nil
}

func scanImage(row pgx.Row) (domain.Image, error) {
	var img domain.Image
	err := row.Scan(&img.ID, &img.ListingID, &img.FileName, &img.ContentType, &img.SizeBytes,
		&img.OriginalKey, &img.ThumbnailKey, &img.PreviewKey, &img.CreatedAt)
	return img, err
}

// UpdateStatus moves a listing from one status to another. The change only
// applies when the stored status still equals from.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	tag, err := r.pool.Exec(ctx, updateStatusQuery, id, from, to)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("listing status changed concurrently, please reload")
	}
	return nil
}

func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE listings SET view_count = view_count + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ToggleFavourite flips the favourite flag and reports the new state.
func (r *Repo) ToggleFavourite(ctx context.Context, listingID, userID uuid.UUID) (bool, error) {
	var added bool
	err := r.pool.QueryRow(ctx, toggleFavouriteQuery, listingID, userID).Scan(&added)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapWriteError("toggle favourite", err)
	}
	return added, nil
}

func (r *Repo) IsFavourite(ctx context.Context, listingID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listing_favourites WHERE listing_id = $1 AND user_id = $2)`,
		listingID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favourite: %w", err)
	}
	return exists, nil
}

// DeletePermanent removes the listing row; sub-records cascade.
func (r *Repo) DeletePermanent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(listingNotFoundMessage)
	}
	return nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return apperr.NotFound("referenced record does not exist").WithOp(op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
