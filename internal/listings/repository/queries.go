package repository

const listingColumns = `
	l.id, l.owner_id, l.title, l.description, l.available_from, l.type, l.status,
	l.view_count, l.created_at, l.modified_at`

// summarySelect joins every sub-record a listing card needs. The first image
// is picked by upload time.
const summarySelect = `
	SELECT` + listingColumns + `,
		sp.price_type, (sp.price * 100)::bigint,
		lp.price_type, (lp.price * 100)::bigint, lp.annual_kms, lp.lease_company, lp.lease_period,
		cd.listing_id IS NOT NULL, cd.transmission, cd.fuel_type, cd.body_type, cd.condition,
		cd.color, cd.interior_color, cd.num_doors, cd.num_seats, cd.manufacture_year, cd.mileage,
		cd.make_id, mk.name, cd.model_id, md.name, cd.variant, cd.license_plate,
		img.id, img.file_name, img.content_type, img.size_bytes, img.original_key, img.thumbnail_key, img.preview_key, img.created_at,
		(SELECT count(*) FROM listing_favourites f WHERE f.listing_id = l.id)
	FROM listings l
	LEFT JOIN sale_pricing sp ON sp.listing_id = l.id
	LEFT JOIN lease_pricing lp ON lp.listing_id = l.id
	LEFT JOIN car_details cd ON cd.listing_id = l.id
	LEFT JOIN car_makes mk ON mk.id = cd.make_id
	LEFT JOIN car_models md ON md.id = cd.model_id
	LEFT JOIN LATERAL (
		SELECT i.id, i.file_name, i.content_type, i.size_bytes, i.original_key, i.thumbnail_key, i.preview_key, i.created_at
		FROM listing_images i
		WHERE i.listing_id = l.id
		ORDER BY i.created_at
		LIMIT 1
	) img ON true`

// DefaultOrder matches the catalogue ordering: oldest first, then last modified.
const DefaultOrder = "l.created_at, l.modified_at"

const insertListingQuery = `
	INSERT INTO listings (owner_id, title, description, available_from, type)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, status, view_count, created_at, modified_at`

const updateListingQuery = `
	UPDATE listings
	SET title = $2, description = $3, available_from = $4, type = $5, modified_at = now()
	WHERE id = $1`

const upsertSalePricingQuery = `
	INSERT INTO sale_pricing (listing_id, price_type, price)
	VALUES ($1, $2, $3::numeric / 100)
	ON CONFLICT (listing_id) DO UPDATE
	SET price_type = EXCLUDED.price_type, price = EXCLUDED.price`

const upsertLeasePricingQuery = `
	INSERT INTO lease_pricing (listing_id, price_type, price, annual_kms, lease_company, lease_period)
	VALUES ($1, $2, $3::numeric / 100, $4, $5, $6)
	ON CONFLICT (listing_id) DO UPDATE
	SET price_type = EXCLUDED.price_type,
		price = EXCLUDED.price,
		annual_kms = EXCLUDED.annual_kms,
		lease_company = EXCLUDED.lease_company,
		lease_period = EXCLUDED.lease_period`

const upsertDetailsQuery = `
	INSERT INTO car_details (
		listing_id, transmission, fuel_type, body_type, condition, color, interior_color,
		num_doors, num_seats, manufacture_year, mileage, make_id, model_id, variant, license_plate
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (listing_id) DO UPDATE
	SET transmission = EXCLUDED.transmission,
		fuel_type = EXCLUDED.fuel_type,
		body_type = EXCLUDED.body_type,
		condition = EXCLUDED.condition,
		color = EXCLUDED.color,
		interior_color = EXCLUDED.interior_color,
		num_doors = EXCLUDED.num_doors,
		num_seats = EXCLUDED.num_seats,
		manufacture_year = EXCLUDED.manufacture_year,
		mileage = EXCLUDED.mileage,
		make_id = EXCLUDED.make_id,
		model_id = EXCLUDED.model_id,
		variant = EXCLUDED.variant,
		license_plate = EXCLUDED.license_plate`

const updateStatusQuery = `
	UPDATE listings SET status = $3, modified_at = now()
	WHERE id = $1 AND status = $2`

// toggleFavouriteQuery deletes an existing favourite or inserts a new one in
// a single statement. A returned row means the favourite was added.
const toggleFavouriteQuery = `
	WITH removed AS (
		DELETE FROM listing_favourites WHERE listing_id = $1 AND user_id = $2
		RETURNING listing_id
	)
	INSERT INTO listing_favourites (listing_id, user_id)
	SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM removed)
	RETURNING true`

const imageColumns = `id, listing_id, file_name, content_type, size_bytes, original_key, thumbnail_key, preview_key, created_at`
