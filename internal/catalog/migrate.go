package catalog

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	perrors "github.com/pkg/errors"
)

// Migrate creates the catalog tables if they do not exist.
func Migrate(ctx context.Context, db DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS catalog_details (
			kind        TEXT NOT NULL,
			id          TEXT NOT NULL,
			title       TEXT NOT NULL,
			subtitle    TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			creator     TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (kind, id)
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_listings (
			listing      TEXT PRIMARY KEY,
			tracks_title TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_tiles (
			listing          TEXT NOT NULL REFERENCES catalog_listings(listing) ON DELETE CASCADE,
			section          TEXT NOT NULL,
			section_position INT NOT NULL,
			play_action      INT NOT NULL DEFAULT 0,
			position         INT NOT NULL,
			id               TEXT NOT NULL,
			kind             TEXT NOT NULL,
			title            TEXT NOT NULL,
			subtitle         TEXT NOT NULL DEFAULT '',
			image_url        TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (listing, id)
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_tracks (
			listing          TEXT NOT NULL REFERENCES catalog_listings(listing) ON DELETE CASCADE,
			position         INT NOT NULL,
			id               TEXT NOT NULL,
			title            TEXT NOT NULL,
			artist           TEXT NOT NULL,
			album            TEXT NOT NULL DEFAULT '',
			duration         TEXT NOT NULL DEFAULT '',
			duration_seconds DOUBLE PRECISION,
			liked            BOOLEAN NOT NULL DEFAULT FALSE,
			art_url          TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (listing, id)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return perrors.Wrap(err, "migrate catalog")
		}
	}
	return nil
}

// Seed replaces the catalog tables' content with f in one transaction.
func Seed(ctx context.Context, db DB, f *Fixture) error {
	if err := f.Validate(); err != nil {
		return perrors.Wrap(err, "seed")
	}
	tx, err := db.Begin(ctx)
	if err != nil {
		return perrors.Wrap(err, "seed: begin")
	}

	if err := seed(ctx, tx, f); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return perrors.Wrap(tx.Commit(ctx), "seed: commit")
}

func seed(ctx context.Context, tx pgx.Tx, f *Fixture) error {
	if _, err := tx.Exec(ctx, `TRUNCATE catalog_tracks, catalog_tiles, catalog_listings, catalog_details`); err != nil {
		return perrors.Wrap(err, "seed: truncate")
	}

	for _, d := range f.Details {
		if _, err := tx.Exec(ctx, `
			INSERT INTO catalog_details (kind, id, title, subtitle, image_url, description, creator)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, string(d.Entity.Kind()), d.Entity.ID, d.Entity.Title, d.Entity.Subtitle, d.Entity.ImageURL, d.Description, d.Creator); err != nil {
			return perrors.Wrapf(err, "seed: detail %s", d.Entity.ID)
		}
	}

	keys := make([]string, 0, len(f.Listings))
	for k := range f.Listings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		l := f.Listings[key]
		if _, err := tx.Exec(ctx, `
			INSERT INTO catalog_listings (listing, tracks_title) VALUES ($1, $2)
		`, key, l.TracksTitle); err != nil {
			return perrors.Wrapf(err, "seed: listing %s", key)
		}
		for si, sec := range l.Sections {
			for pi, e := range sec.Entities {
				if _, err := tx.Exec(ctx, `
					INSERT INTO catalog_tiles (listing, section, section_position, play_action, position, id, kind, title, subtitle, image_url)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				`, key, sec.Title, si, int(sec.Play), pi, e.ID, string(e.Kind()), e.Title, e.Subtitle, e.ImageURL); err != nil {
					return perrors.Wrapf(err, "seed: tile %s/%s", key, e.ID)
				}
			}
		}
		for pi, t := range l.Tracks {
			if _, err := tx.Exec(ctx, `
				INSERT INTO catalog_tracks (listing, position, id, title, artist, album, duration, duration_seconds, liked, art_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, key, pi, t.ID, t.Title, t.Artist, t.Album, t.Duration, t.DurationSeconds, t.Liked, t.ArtURL); err != nil {
				return perrors.Wrapf(err, "seed: track %s/%s", key, t.ID)
			}
		}
	}
	return nil
}
