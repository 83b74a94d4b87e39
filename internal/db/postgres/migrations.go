package postgres

import "github.com/kailas-cloud/placedex/internal/db"

// Migrations is the Postgres catalog schema history.
var Migrations = []db.Migration{
	{Version: 1, Up: migrationV1Up},
}

const migrationV1Up = `
CREATE TABLE IF NOT EXISTS categories (
    category_id   SERIAL PRIMARY KEY,
    category_name TEXT NOT NULL UNIQUE,
    icon          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS provinces (
    province_id   SERIAL PRIMARY KEY,
    province_name TEXT NOT NULL UNIQUE,
    region        TEXT NOT NULL DEFAULT '',
    image         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
    user_id      SERIAL PRIMARY KEY,
    username     TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS places (
    place_id    SERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    location    TEXT NOT NULL DEFAULT '',
    main_image  TEXT NOT NULL DEFAULT '',
    latitude    DOUBLE PRECISION,
    longitude   DOUBLE PRECISION,
    views       BIGINT NOT NULL DEFAULT 0,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    category_id INTEGER NOT NULL REFERENCES categories(category_id),
    province_id INTEGER NOT NULL REFERENCES provinces(province_id),
    user_id     INTEGER NOT NULL REFERENCES users(user_id),
    CHECK ((latitude IS NULL) = (longitude IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_places_active_created ON places(is_active, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_places_category ON places(category_id);
CREATE INDEX IF NOT EXISTS idx_places_province ON places(province_id);

CREATE TABLE IF NOT EXISTS tags (
    tag_id   SERIAL PRIMARY KEY,
    tag_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS place_tags (
    place_id INTEGER NOT NULL REFERENCES places(place_id) ON DELETE CASCADE,
    tag_id   INTEGER NOT NULL REFERENCES tags(tag_id) ON DELETE CASCADE,
    PRIMARY KEY (place_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_place_tags_tag ON place_tags(tag_id);

CREATE TABLE IF NOT EXISTS likes (
    like_id    SERIAL PRIMARY KEY,
    place_id   INTEGER NOT NULL REFERENCES places(place_id) ON DELETE CASCADE,
    user_id    INTEGER NOT NULL REFERENCES users(user_id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (place_id, user_id)
);

CREATE TABLE IF NOT EXISTS comments (
    comment_id SERIAL PRIMARY KEY,
    place_id   INTEGER NOT NULL REFERENCES places(place_id) ON DELETE CASCADE,
    user_id    INTEGER NOT NULL REFERENCES users(user_id),
    content    TEXT NOT NULL,
    is_active  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_likes_place ON likes(place_id);
CREATE INDEX IF NOT EXISTS idx_comments_place ON comments(place_id);
`
