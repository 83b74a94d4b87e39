// Package instrumented decorates a catalog store with metrics and logging.
package instrumented

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex/internal/db"
	"github.com/kailas-cloud/placedex/internal/domain"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
	"github.com/kailas-cloud/placedex/internal/metrics"
)

// Catalog is every read the engines make against the record store.
type Catalog interface {
	FetchPlaces(ctx context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int) ([]place.Place, error)
	CountPlaces(ctx context.Context, pred filter.Predicate) (int, error)
	MatchPlaces(ctx context.Context, query string, limit int) ([]domsuggest.PlaceCandidate, error)
	MatchProvinces(ctx context.Context, query string, limit int) ([]domsuggest.ProvinceCandidate, error)
	MatchTags(ctx context.Context, query string, limit int) ([]domsuggest.TagCandidate, error)
	Ping(ctx context.Context) error
}

// Repo wraps a Catalog. Store metrics are recorded per call; results pass
// through unchanged.
type Repo struct {
	inner  Catalog
	engine string
	logger *zap.Logger
}

// New wraps inner. engine labels metrics and logs (postgres, sqlite, memory).
func New(inner Catalog, engine string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{inner: inner, engine: engine, logger: logger}
}

// FetchPlaces delegates and records the call.
func (r *Repo) FetchPlaces(
	ctx context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int,
) ([]place.Place, error) {
	start := time.Now()
	places, err := r.inner.FetchPlaces(ctx, pred, sort, offset, limit)
	r.observe(db.OpFetchPlaces, start, err,
		zap.Stringer("predicate", pred),
		zap.String("sort", string(sort)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Int("rows", len(places)),
	)
	return places, err
}

// CountPlaces delegates and records the call.
func (r *Repo) CountPlaces(ctx context.Context, pred filter.Predicate) (int, error) {
	start := time.Now()
	n, err := r.inner.CountPlaces(ctx, pred)
	r.observe(db.OpCountPlaces, start, err, zap.Stringer("predicate", pred), zap.Int("total", n))
	return n, err
}

// MatchPlaces delegates and records the call.
func (r *Repo) MatchPlaces(ctx context.Context, query string, limit int) ([]domsuggest.PlaceCandidate, error) {
	start := time.Now()
	out, err := r.inner.MatchPlaces(ctx, query, limit)
	r.observe(db.OpMatchPlaces, start, err, zap.String("query", query), zap.Int("rows", len(out)))
	return out, err
}

// MatchProvinces delegates and records the call.
func (r *Repo) MatchProvinces(ctx context.Context, query string, limit int) ([]domsuggest.ProvinceCandidate, error) {
	start := time.Now()
	out, err := r.inner.MatchProvinces(ctx, query, limit)
	r.observe(db.OpMatchProvinces, start, err, zap.String("query", query), zap.Int("rows", len(out)))
	return out, err
}

// MatchTags delegates and records the call.
func (r *Repo) MatchTags(ctx context.Context, query string, limit int) ([]domsuggest.TagCandidate, error) {
	start := time.Now()
	out, err := r.inner.MatchTags(ctx, query, limit)
	r.observe(db.OpMatchTags, start, err, zap.String("query", query), zap.Int("rows", len(out)))
	return out, err
}

// Ping delegates and records the call.
func (r *Repo) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.inner.Ping(ctx)
	r.observe(db.OpPing, start, err)
	return err
}

func (r *Repo) observe(op string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	metrics.StoreQueryDuration.WithLabelValues(r.engine, op).Observe(duration.Seconds())

	fields = append(fields,
		zap.String("engine", r.engine),
		zap.String("op", op),
		zap.Duration("duration", duration),
	)

	if err != nil {
		kind := domain.KindOf(err)
		metrics.StoreQueriesTotal.WithLabelValues(r.engine, op, "error").Inc()
		metrics.StoreErrorsTotal.WithLabelValues(r.engine, op, string(kind)).Inc()
		r.logger.Error("Store call failed", append(fields, zap.String("kind", string(kind)), zap.Error(err))...)
		return
	}

	metrics.StoreQueriesTotal.WithLabelValues(r.engine, op, "ok").Inc()
	r.logger.Debug("Store call completed", fields...)
}
