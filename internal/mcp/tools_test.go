package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/placedex"
)

// --- Helpers ---

type toolEnvelope struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Total      *int             `json:"total"`
	Pagination *pagination      `json:"pagination"`
	Data       []map[string]any `json:"data"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	client, err := placedex.New(placedex.WithMemory("../../config/seed/catalog.yaml"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewServer(client, nil)
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) toolEnvelope {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var env toolEnvelope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &env))
	return env
}

func ids(env toolEnvelope) []int64 {
	out := make([]int64, len(env.Data))
	for i, d := range env.Data {
		out[i] = int64(d["place_id"].(float64))
	}
	return out
}

// --- Tests ---

func TestSearchPlaces(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchPlaces(context.Background(), call(map[string]interface{}{
		"q":     "temple",
		"limit": float64(2),
	}))
	require.NoError(t, err)

	env := decode(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, []int64{3, 6}, ids(env))
	require.NotNil(t, env.Total)
	assert.Equal(t, 3, *env.Total)
	assert.Equal(t, pagination{CurrentPage: 1, TotalPages: 2, PerPage: 2}, *env.Pagination)
}

func TestSearchPlaces_NoArguments(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchPlaces(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	env := decode(t, res)
	assert.Equal(t, 10, env.Count)
	assert.Equal(t, 11, *env.Total)
}

func TestSearchNearby(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchNearby(context.Background(), call(map[string]interface{}{
		"lat":      18.7904,
		"lng":      "99.0",
		"distance": float64(10),
		"limit":    "2",
		"page":     float64(2),
	}))
	require.NoError(t, err)

	env := decode(t, res)
	assert.Equal(t, []int64{3}, ids(env))
	assert.Equal(t, 3, *env.Total)
	assert.Equal(t, 2, env.Pagination.CurrentPage)
	assert.Contains(t, env.Data[0], "distance")
}

func TestNearbyPlaces(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleNearbyPlaces(context.Background(), call(map[string]interface{}{
		"lat":      18.7904,
		"lng":      99.0,
		"distance": 10.0,
		"category": "Temple",
	}))
	require.NoError(t, err)

	env := decode(t, res)
	assert.Equal(t, []int64{3}, ids(env))
	assert.Nil(t, env.Total)
	assert.Nil(t, env.Pagination)
}

func TestNearbyTools_CoordinateErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing", map[string]interface{}{}, "missing_coordinates"},
		{"blank lat", map[string]interface{}{"lat": " ", "lng": 99.0}, "missing_coordinates"},
		{"not a number", map[string]interface{}{"lat": "north", "lng": 99.0}, "invalid_coordinate"},
		{"out of range", map[string]interface{}{"lat": 120.0, "lng": 99.0}, "invalid_coordinate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, handle := range []func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
				s.handleNearbyPlaces, s.handleSearchNearby,
			} {
				res, err := handle(context.Background(), call(tt.args))
				require.NoError(t, err)
				assert.True(t, res.IsError)
				assert.True(t, strings.HasPrefix(resultText(t, res), tt.want+": "), resultText(t, res))
			}
		})
	}
}

func TestGetIntDefault(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want int
	}{
		{"number", float64(3), 3},
		{"int", 4, 4},
		{"numeric string", " 5 ", 5},
		{"fraction", 2.5, 7},
		{"too large", 1e300, 7},
		{"two to the 63", math.Pow(2, 63), 7},
		{"too small", -1e300, 7},
		{"nan", math.NaN(), 7},
		{"infinity", math.Inf(1), 7},
		{"garbage", "many", 7},
		{"missing", nil, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{}
			if tt.val != nil {
				args["n"] = tt.val
			}
			assert.Equal(t, tt.want, getIntDefault(args, "n", 7))
		})
	}
}

func TestSearchPlaces_HugeLimit(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchPlaces(context.Background(), call(map[string]interface{}{
		"page":  float64(3),
		"limit": 1e300,
	}))
	require.NoError(t, err)

	env := decode(t, res)
	assert.Equal(t, 3, env.Pagination.CurrentPage)
	assert.Equal(t, 10, env.Pagination.PerPage)
	assert.Equal(t, 0, env.Count)
	assert.Equal(t, 11, *env.Total)
}

func TestSuggestPlaces(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSuggestPlaces(context.Background(), call(map[string]interface{}{
		"q":     "chiang",
		"limit": float64(5),
	}))
	require.NoError(t, err)

	env := decode(t, res)
	require.NotEmpty(t, env.Data)
	assert.LessOrEqual(t, env.Count, 5)
	var provinces []string
	for _, d := range env.Data {
		if d["type"] == "province" {
			provinces = append(provinces, d["province_name"].(string))
		}
	}
	assert.Equal(t, []string{"Chiang Mai", "Chiang Rai"}, provinces)
}

func TestSuggestPlaces_Blank(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSuggestPlaces(context.Background(), call(map[string]interface{}{"q": ""}))
	require.NoError(t, err)

	env := decode(t, res)
	assert.Equal(t, 0, env.Count)
	assert.Contains(t, resultText(t, res), `"data":[]`)
}

type failingPlaces struct {
	err error
}

func (f failingPlaces) Search(context.Context, placedex.SearchRequest) (*placedex.PlacePage, error) {
	return nil, f.err
}

func (f failingPlaces) SearchNearby(context.Context, placedex.NearbyRequest) (*placedex.PlacePage, error) {
	return nil, f.err
}

func (f failingPlaces) Nearby(context.Context, placedex.NearbyRequest) ([]placedex.Place, error) {
	return nil, f.err
}

func (f failingPlaces) Suggest(context.Context, string, int) ([]placedex.Suggestion, error) {
	return nil, f.err
}

func TestToolError_HidesStoreDetails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewServer(failingPlaces{
		err: fmt.Errorf("fetch: %w: dial tcp 10.0.0.7:5432", placedex.ErrStoreUnavailable),
	}, zap.New(core))

	res, err := s.handleSearchPlaces(context.Background(), call(map[string]interface{}{"q": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "store_unavailable: record store unavailable", resultText(t, res))

	entries := logs.FilterMessage("tool call failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, ToolSearchPlaces, entries[0].ContextMap()["tool"])
}

func TestToolError_Internal(t *testing.T) {
	s := NewServer(failingPlaces{err: errors.New("boom")}, nil)

	res, err := s.handleSuggestPlaces(context.Background(), call(map[string]interface{}{"q": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "internal: internal error", resultText(t, res))
}

func TestToolSchemas(t *testing.T) {
	tools := []mcp.Tool{searchPlacesTool(), searchNearbyTool(), nearbyPlacesTool(), suggestPlacesTool()}
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.Equal(t, "object", tool.InputSchema.Type)
	}
	assert.Equal(t, []string{ToolSearchPlaces, ToolSearchNearby, ToolNearbyPlaces, ToolSuggestPlaces}, names)
	assert.Equal(t, []string{"lat", "lng"}, searchNearbyTool().InputSchema.Required)
	assert.Equal(t, []string{"lat", "lng"}, nearbyPlacesTool().InputSchema.Required)
	assert.Empty(t, searchPlacesTool().InputSchema.Required)
}
