package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	perrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"musicroom-web/internal/media"
)

// DB is implemented by *pgxpool.Pool and by pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSource reads the catalog tables created by Migrate.
type PostgresSource struct {
	db  DB
	log *zap.Logger
}

func NewPostgresSource(db DB, log *zap.Logger) *PostgresSource {
	return &PostgresSource{db: db, log: log}
}

func (p *PostgresSource) Home(ctx context.Context) (*Dataset, error) {
	return p.listing(ctx, nil, ListingHome)
}

func (p *PostgresSource) Library(ctx context.Context) (*Dataset, error) {
	return p.listing(ctx, nil, ListingLibrary)
}

// Search loads the whole search listing and filters it in Go with the same
// fuzzy match as MockSource; SQL pattern matching would treat % and _ in
// the query as wildcards and answer differently.
func (p *PostgresSource) Search(ctx context.Context, query string) (*Dataset, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Dataset{}, nil
	}
	l, err := p.load(ctx, ListingSearch)
	if err != nil {
		return nil, err
	}
	return dataset(nil, searchListing(l, query)), nil
}

func (p *PostgresSource) Artist(ctx context.Context, id string) (*Dataset, error) {
	return p.detail(ctx, media.KindArtist, id)
}

func (p *PostgresSource) Collection(ctx context.Context, kind media.Kind, id string) (*Dataset, error) {
	if kind == media.KindArtist {
		return nil, ErrNotFound
	}
	return p.detail(ctx, kind, id)
}

func (p *PostgresSource) detail(ctx context.Context, kind media.Kind, id string) (*Dataset, error) {
	var title, subtitle, image, description, creator string
	err := p.db.QueryRow(ctx, `
		SELECT title, subtitle, image_url, description, creator
		FROM catalog_details
		WHERE kind = $1 AND id = $2
	`, string(kind), id).Scan(&title, &subtitle, &image, &description, &creator)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, perrors.Wrapf(err, "load %s %s", kind, id)
	}

	e, err := media.NewEntity(id, kind, title, subtitle, image)
	if err != nil {
		return nil, err
	}
	return p.listing(ctx, &Detail{Entity: e, Description: description, Creator: creator}, ListingKey(kind, id))
}

func (p *PostgresSource) listing(ctx context.Context, d *Detail, key string) (*Dataset, error) {
	l, err := p.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return dataset(d, l), nil
}

// load reads one listing; rows that repeat an id are rejected.
func (p *PostgresSource) load(ctx context.Context, key string) (Listing, error) {
	var l Listing

	err := p.db.QueryRow(ctx, `
		SELECT tracks_title FROM catalog_listings WHERE listing = $1
	`, key).Scan(&l.TracksTitle)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Listing{}, perrors.Wrapf(err, "load listing %s", key)
	}

	if l.Sections, err = p.tiles(ctx, key); err != nil {
		return Listing{}, err
	}
	if l.Tracks, err = p.tracks(ctx, key); err != nil {
		return Listing{}, err
	}
	if err := l.Validate(); err != nil {
		return Listing{}, perrors.Wrapf(err, "listing %s", key)
	}
	return l, nil
}

func (p *PostgresSource) tiles(ctx context.Context, key string) ([]Section, error) {
	rows, err := p.db.Query(ctx, `
		SELECT section, play_action, id, kind, title, subtitle, image_url
		FROM catalog_tiles
		WHERE listing = $1
		ORDER BY section_position ASC, position ASC
	`, key)
	if err != nil {
		return nil, perrors.Wrapf(err, "query tiles %s", key)
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		var section, id, kind, title, subtitle, image string
		var play int
		if err := rows.Scan(&section, &play, &id, &kind, &title, &subtitle, &image); err != nil {
			return nil, perrors.Wrap(err, "scan tile")
		}
		k, err := media.ParseKind(kind)
		if err != nil {
			p.log.Warn("skipping tile with invalid kind", zap.String("id", id), zap.String("kind", kind))
			continue
		}
		e, _ := media.NewEntity(id, k, title, subtitle, image)

		if n := len(out); n == 0 || out[n-1].Title != section {
			out = append(out, Section{Title: section, Play: PlayAction(play)})
		}
		last := &out[len(out)-1]
		last.Entities = append(last.Entities, e)
	}
	return out, rows.Err()
}

func (p *PostgresSource) tracks(ctx context.Context, key string) ([]media.Track, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, title, artist, album, duration, duration_seconds, liked, art_url
		FROM catalog_tracks
		WHERE listing = $1
		ORDER BY position ASC
	`, key)
	if err != nil {
		return nil, perrors.Wrapf(err, "query tracks %s", key)
	}
	defer rows.Close()

	var out []media.Track
	for rows.Next() {
		var t media.Track
		var secs pgtype.Float8
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Album, &t.Duration, &secs, &t.Liked, &t.ArtURL); err != nil {
			return nil, perrors.Wrap(err, "scan track")
		}
		if secs.Valid {
			t.DurationSeconds = media.Seconds(secs.Float64)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
