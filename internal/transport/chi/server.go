package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex/internal/domain"
	"github.com/kailas-cloud/placedex/internal/domain/geo"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
	"github.com/kailas-cloud/placedex/internal/metrics"
	healthuc "github.com/kailas-cloud/placedex/internal/usecase/health"
	nearbyuc "github.com/kailas-cloud/placedex/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/placedex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/placedex/internal/usecase/suggest"
)

// Engine labels for result metrics.
const (
	engineSearch       = "search"
	engineListing      = "listing"
	enginePopular      = "popular"
	engineNearby       = "nearby"
	engineSearchNearby = "search_nearby"
	engineSuggest      = "suggest"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the place discovery API.
type Server struct {
	search        *searchuc.Service
	nearby        *nearbyuc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	pageSize      int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	nearby *nearbyuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		nearby:   nearby,
		suggest:  suggest,
		health:   health,
		logger:   logger,
		pageSize: page.DefaultSize,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingCoordinates, http.StatusBadRequest,
			"latitude and longitude are required"),
		sentinelHandler(domain.ErrInvalidCoordinate, http.StatusBadRequest,
			"latitude and longitude must be numbers within range"),
		sentinelHandler(domain.ErrStoreTimeout, http.StatusGatewayTimeout,
			"record store timed out"),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable,
			"record store unavailable"),
	}
	return s
}

// WithDefaultPageSize sets the page size used when a request has none.
func (s *Server) WithDefaultPageSize(n int) *Server {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r gochi.Router) {
		r.Get("/search", s.SearchPlaces)
		r.Get("/search/suggest", s.SuggestPlaces)
		r.Get("/search/nearby", s.SearchNearby)

		r.Get("/places", s.ListPlaces)
		r.Get("/places/nearby", s.NearbyPlaces)
		r.Get("/places/popular", s.PopularPlaces)
	})
}

// SearchPlaces handles GET /api/search.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.search.Search(r.Context(), searchuc.Query{
		Keyword:  q.Get("q"),
		Category: q.Get("category"),
		Province: q.Get("province"),
		Sort:     mode.Parse(q.Get("sort")),
		Page:     page.Parse(q.Get("page"), q.Get("limit"), s.pageSize),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	metrics.ObserveResults(engineSearch, res.Count())
	writeJSON(w, http.StatusOK, pagedEnvelope(res))
}

// ListPlaces handles GET /api/places.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.search.List(r.Context(), searchuc.Query{
		Category: q.Get("category"),
		Province: q.Get("province"),
		Sort:     mode.Parse(q.Get("sort")),
		Page:     page.Parse(q.Get("page"), q.Get("limit"), s.pageSize),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	metrics.ObserveResults(engineListing, res.Count())
	writeJSON(w, http.StatusOK, pagedEnvelope(res))
}

// PopularPlaces handles GET /api/places/popular.
func (s *Server) PopularPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.search.Popular(r.Context(), q.Get("category"), page.Atoi(q.Get("limit")))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	metrics.ObserveResults(enginePopular, len(items))
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// SuggestPlaces handles GET /api/search/suggest.
func (s *Server) SuggestPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	candidates, err := s.suggest.Suggest(r.Context(), q.Get("q"), page.Atoi(q.Get("limit")))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := make([]any, len(candidates))
	for i, c := range candidates {
		data[i] = suggestionToJSON(c)
	}
	metrics.ObserveResults(engineSuggest, len(data))
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: len(data), Data: data})
}

// SearchNearby handles GET /api/search/nearby.
func (s *Server) SearchNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := nearbyQuery(q.Get("lat"), q.Get("lng"), q.Get("distance"), q.Get("category"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.nearby.SearchNearby(r.Context(), query, page.Parse(q.Get("page"), q.Get("limit"), s.pageSize))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	metrics.ObserveResults(engineSearchNearby, res.Count())
	writeJSON(w, http.StatusOK, pagedEnvelope(res))
}

// NearbyPlaces handles GET /api/places/nearby.
func (s *Server) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := nearbyQuery(q.Get("lat"), q.Get("lng"), q.Get("distance"), q.Get("category"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	query.Limit = page.Atoi(q.Get("limit"))

	items, err := s.nearby.Nearby(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	metrics.ObserveResults(engineNearby, len(items))
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// nearbyQuery parses the proximity parameters. An unusable distance is left
// at zero so the engine applies its default radius.
func nearbyQuery(lat, lng, distance, category string) (nearbyuc.Query, error) {
	pt, err := geo.ParsePoint(lat, lng)
	if err != nil {
		return nearbyuc.Query{}, err
	}
	km, err := strconv.ParseFloat(strings.TrimSpace(distance), 64)
	if err != nil || km <= 0 {
		km = 0
	}
	return nearbyuc.Query{Point: &pt, RadiusKm: km, Category: category}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code domain.Kind, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Message: message,
		Code:    string(code),
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	code := domain.KindOf(sentinel)
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(
		zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		zap.String("kind", string(domain.KindOf(err))),
	)
	if domain.IsClientError(err) {
		log.Warn("domain error", zap.Error(err))
	} else {
		log.Error("request failed", zap.Error(err))
	}

	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, domain.KindInternal, "internal error")
}
