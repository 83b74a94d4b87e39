package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex"
	logpkg "github.com/kailas-cloud/placedex/internal/logger"
	"github.com/kailas-cloud/placedex/internal/metrics"
)

// envelope mirrors the HTTP response body.
type envelope struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Total      *int        `json:"total,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

type pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PerPage     int `json:"per_page"`
}

// Messages shown for each error kind. Store failures never expose driver text.
var kindMessages = map[string]string{
	"invalid_coordinate":  "lat and lng must be numbers within range",
	"missing_coordinates": "lat and lng are required",
	"store_unavailable":   "record store unavailable",
	"store_timeout":       "record store timed out",
	"internal":            "internal error",
}

func (s *Server) handleSearchPlaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	ctx = s.withTool(ctx, ToolSearchPlaces)

	res, err := s.places.Search(ctx, placedex.SearchRequest{
		Query:    getStringDefault(args, "q", ""),
		Category: getStringDefault(args, "category", ""),
		Province: getStringDefault(args, "province", ""),
		Sort:     placedex.SortMode(getStringDefault(args, "sort", "")),
		Page:     getIntDefault(args, "page", 0),
		Limit:    getIntDefault(args, "limit", 0),
	})
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	metrics.ObserveResults("search", len(res.Places))
	return s.toolResult(ctx, pagedEnvelope(res)), nil
}

func (s *Server) handleSearchNearby(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	ctx = s.withTool(ctx, ToolSearchNearby)

	req, err := nearbyRequest(args)
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	req.Page = getIntDefault(args, "page", 0)

	res, err := s.places.SearchNearby(ctx, req)
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	metrics.ObserveResults("search_nearby", len(res.Places))
	return s.toolResult(ctx, pagedEnvelope(res)), nil
}

func (s *Server) handleNearbyPlaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	ctx = s.withTool(ctx, ToolNearbyPlaces)

	req, err := nearbyRequest(args)
	if err != nil {
		return s.toolError(ctx, err), nil
	}

	places, err := s.places.Nearby(ctx, req)
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	metrics.ObserveResults("nearby", len(places))
	return s.toolResult(ctx, envelope{Success: true, Count: len(places), Data: places}), nil
}

func (s *Server) handleSuggestPlaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	ctx = s.withTool(ctx, ToolSuggestPlaces)

	suggestions, err := s.places.Suggest(ctx, getStringDefault(args, "q", ""), getIntDefault(args, "limit", 0))
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	metrics.ObserveResults("suggest", len(suggestions))
	return s.toolResult(ctx, envelope{Success: true, Count: len(suggestions), Data: suggestions}), nil
}

func (s *Server) toolResult(ctx context.Context, env envelope) *mcp.CallToolResult {
	data, err := json.Marshal(env)
	if err != nil {
		return s.toolError(ctx, fmt.Errorf("encode result: %w", err))
	}
	s.log(ctx).Info("tool call completed", zap.Int("count", env.Count))
	return mcp.NewToolResultText(string(data))
}

// toolError reports err as an IsError result with "code: message" text.
func (s *Server) toolError(ctx context.Context, err error) *mcp.CallToolResult {
	kind := placedex.ErrorKind(err)
	if placedex.IsClientError(err) {
		s.log(ctx).Warn("tool call rejected", zap.String("kind", kind), zap.Error(err))
	} else {
		s.log(ctx).Error("tool call failed", zap.String("kind", kind), zap.Error(err))
	}
	return mcp.NewToolResultError(kind + ": " + kindMessages[kind])
}

// withTool attaches the server logger, tagged with the tool name, to ctx.
func (s *Server) withTool(ctx context.Context, tool string) context.Context {
	return logpkg.WithFields(logpkg.ContextWithLogger(ctx, s.logger), zap.String("tool", tool))
}

func (s *Server) log(ctx context.Context) *zap.Logger {
	return logpkg.FromContext(ctx)
}

func pagedEnvelope(res *placedex.PlacePage) envelope {
	total := res.Total
	return envelope{
		Success: true,
		Count:   len(res.Places),
		Total:   &total,
		Pagination: &pagination{
			CurrentPage: res.Page,
			TotalPages:  res.TotalPages,
			PerPage:     res.PerPage,
		},
		Data: res.Places,
	}
}

// nearbyRequest reads lat, lng, distance, category and limit. Missing
// coordinates are left nil so the client reports them.
func nearbyRequest(args map[string]interface{}) (placedex.NearbyRequest, error) {
	req := placedex.NearbyRequest{
		Category: getStringDefault(args, "category", ""),
		Query:    getStringDefault(args, "q", ""),
		Limit:    getIntDefault(args, "limit", 0),
	}
	if km, ok := getFloat(args, "distance"); ok && km > 0 {
		req.RadiusKm = km
	}

	if !present(args, "lat") || !present(args, "lng") {
		return req, nil
	}
	lat, okLat := getFloat(args, "lat")
	lng, okLng := getFloat(args, "lng")
	if !okLat || !okLng {
		return req, fmt.Errorf("%w: lat and lng must be numbers", placedex.ErrInvalidCoordinate)
	}
	req.At = &placedex.Coordinates{Lat: lat, Lng: lng}
	return req, nil
}

// present reports a non-null, non-blank argument.
func present(args map[string]interface{}, key string) bool {
	switch val := args[key].(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return true
	}
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// getIntDefault extracts an integer parameter with a default value.
// Fractional, non-finite or out-of-range numbers yield the default.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	switch val := args[key].(type) {
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which is already out of range.
		if val != math.Trunc(val) || val < math.MinInt || val >= math.MaxInt {
			return defaultValue
		}
		return int(val)
	case int:
		return val
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getFloat accepts JSON numbers and numeric strings.
func getFloat(args map[string]interface{}, key string) (float64, bool) {
	switch val := args[key].(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}
