package sqlstore

// Schema is the SQLite rendition of the collaborator tables the feed reads.
// Postgres deployments own their schema through the listings service migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS listings (
	id                 TEXT PRIMARY KEY,
	owner_id           TEXT NOT NULL,
	name               TEXT NOT NULL,
	age_months         INTEGER NOT NULL DEFAULT 0,
	species            TEXT NOT NULL,
	breed              TEXT,
	size               TEXT,
	sex                TEXT,
	energy_level       TEXT,
	temperament        TEXT,
	good_with_children BOOLEAN NOT NULL DEFAULT 0,
	good_with_dogs     BOOLEAN NOT NULL DEFAULT 0,
	good_with_cats     BOOLEAN NOT NULL DEFAULT 0,
	has_special_needs  BOOLEAN NOT NULL DEFAULT 0,
	is_docile          BOOLEAN NOT NULL DEFAULT 0,
	is_trained         BOOLEAN NOT NULL DEFAULT 0,
	latitude           REAL,
	longitude          REAL,
	status             TEXT NOT NULL DEFAULT 'available',
	moderation_status  TEXT NOT NULL DEFAULT 'pending',
	created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_listings_feed ON listings (status, moderation_status, id DESC);

CREATE TABLE IF NOT EXISTS listing_photos (
	listing_id  TEXT NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
	storage_key TEXT NOT NULL,
	position    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (listing_id, storage_key)
);

CREATE TABLE IF NOT EXISTS favorites (
	user_id    TEXT NOT NULL,
	listing_id TEXT NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, listing_id)
);

CREATE TABLE IF NOT EXISTS adopter_preferences (
	user_id   TEXT PRIMARY KEY,
	species   TEXT,
	size      TEXT,
	radius_km REAL
);

CREATE TABLE IF NOT EXISTS swipes (
	user_id    TEXT NOT NULL,
	listing_id TEXT NOT NULL,
	direction  TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, listing_id)
);

CREATE TABLE IF NOT EXISTS listing_reports (
	id          TEXT PRIMARY KEY,
	listing_id  TEXT NOT NULL,
	reporter_id TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'open',
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_blocks (
	blocker_id TEXT NOT NULL,
	blocked_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (blocker_id, blocked_id)
);

CREATE TABLE IF NOT EXISTS listing_verifications (
	listing_id TEXT PRIMARY KEY REFERENCES listings (id) ON DELETE CASCADE,
	status     TEXT NOT NULL DEFAULT 'pending'
);
`
