// Package catalog reads places, provinces and tags from a relational store.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// DefaultQueryTimeout bounds each statement when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// Repo implements the search, nearby and suggest repositories over SQL.
type Repo struct {
	store   db.SQLStore
	timeout time.Duration
}

// New creates a catalog repository.
func New(store db.SQLStore) *Repo {
	return &Repo{store: store, timeout: DefaultQueryTimeout}
}

// WithQueryTimeout overrides the per-statement timeout. Zero disables it.
func (r *Repo) WithQueryTimeout(d time.Duration) *Repo {
	r.timeout = d
	return r
}

// Ping checks store connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// FetchPlaces returns one page of places matching pred in sort order.
func (r *Repo) FetchPlaces(
	ctx context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int,
) ([]place.Place, error) {
	q, args, err := buildFetch(r.store, pred, sort, offset, limit)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetchPlaces, Err: err}
	}
	_, withDistance := pred.Radius()

	places := []place.Place{}
	err = r.query(ctx, db.OpFetchPlaces, q, args, func(rows *sql.Rows) error {
		p, err := scanPlace(rows, withDistance)
		if err != nil {
			return err
		}
		places = append(places, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return places, nil
}

// CountPlaces returns the number of places matching pred.
func (r *Repo) CountPlaces(ctx context.Context, pred filter.Predicate) (int, error) {
	q, args := buildCount(r.store, pred)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.store.DB().QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, db.Classify(db.OpCountPlaces, err, r.store.IsUnavailable)
	}
	return n, nil
}

// MatchPlaces returns active places whose title or location contains query.
func (r *Repo) MatchPlaces(ctx context.Context, query string, limit int) ([]domsuggest.PlaceCandidate, error) {
	q, args := buildMatchPlaces(r.store, query, limit)
	var out []domsuggest.PlaceCandidate
	err := r.query(ctx, db.OpMatchPlaces, q, args, func(rows *sql.Rows) error {
		c, err := scanPlaceCandidate(rows)
		if err != nil {
			return fmt.Errorf("scan place candidate: %w", err)
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// MatchProvinces returns provinces whose name contains query.
func (r *Repo) MatchProvinces(ctx context.Context, query string, limit int) ([]domsuggest.ProvinceCandidate, error) {
	q, args := buildMatchProvinces(r.store, query, limit)
	var out []domsuggest.ProvinceCandidate
	err := r.query(ctx, db.OpMatchProvinces, q, args, func(rows *sql.Rows) error {
		c, err := scanProvinceCandidate(rows)
		if err != nil {
			return fmt.Errorf("scan province candidate: %w", err)
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// MatchTags returns tags whose name contains query, with their place counts.
func (r *Repo) MatchTags(ctx context.Context, query string, limit int) ([]domsuggest.TagCandidate, error) {
	q, args := buildMatchTags(r.store, query, limit)
	var out []domsuggest.TagCandidate
	err := r.query(ctx, db.OpMatchTags, q, args, func(rows *sql.Rows) error {
		c, err := scanTagCandidate(rows)
		if err != nil {
			return fmt.Errorf("scan tag candidate: %w", err)
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func (r *Repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// query runs q and calls each for every row. Driver errors are classified.
func (r *Repo) query(ctx context.Context, op, q string, args []any, each func(*sql.Rows) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.store.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return db.Classify(op, err, r.store.IsUnavailable)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := each(rows); err != nil {
			return &db.Error{Op: op, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return db.Classify(op, err, r.store.IsUnavailable)
	}
	return nil
}
