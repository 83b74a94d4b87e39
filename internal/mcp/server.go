// Package mcp exposes place search as Model Context Protocol tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kailas-cloud/placedex"
	"github.com/kailas-cloud/placedex/internal/version"
)

// ServerName is the MCP server name.
const ServerName = "placedex"

// Places is the search surface the tools call. *placedex.Client implements it.
type Places interface {
	Search(ctx context.Context, req placedex.SearchRequest) (*placedex.PlacePage, error)
	SearchNearby(ctx context.Context, req placedex.NearbyRequest) (*placedex.PlacePage, error)
	Nearby(ctx context.Context, req placedex.NearbyRequest) ([]placedex.Place, error)
	Suggest(ctx context.Context, query string, limit int) ([]placedex.Suggestion, error)
}

// Server wraps the MCP server with the place search client.
type Server struct {
	mcp    *server.MCPServer
	places Places
	logger *zap.Logger
}

// NewServer creates an MCP server with every tool registered.
func NewServer(places Places, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, version.Version),
		places: places,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio and blocks until stdin closes.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchPlacesTool(), s.handleSearchPlaces)
	s.mcp.AddTool(searchNearbyTool(), s.handleSearchNearby)
	s.mcp.AddTool(nearbyPlacesTool(), s.handleNearbyPlaces)
	s.mcp.AddTool(suggestPlacesTool(), s.handleSuggestPlaces)
}
