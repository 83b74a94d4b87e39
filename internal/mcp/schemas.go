package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names.
const (
	ToolSearchPlaces  = "search_places"
	ToolSearchNearby  = "search_nearby"
	ToolNearbyPlaces  = "nearby_places"
	ToolSuggestPlaces = "suggest_places"
)

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func intProp(description string, def int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description, "default": def, "minimum": 1}
}

func coordinateProps(defaultKm float64) map[string]interface{} {
	return map[string]interface{}{
		"lat": map[string]interface{}{
			"type":        "number",
			"description": "Latitude of the query point in degrees (-90..90)",
		},
		"lng": map[string]interface{}{
			"type":        "number",
			"description": "Longitude of the query point in degrees (-180..180)",
		},
		"distance": map[string]interface{}{
			"type":        "number",
			"description": "Search radius in kilometers",
			"default":     defaultKm,
		},
		"category": stringProp("Exact category name, e.g. Temple"),
	}
}

func searchPlacesTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolSearchPlaces,
		Description: "Keyword search over place titles, descriptions, locations, provinces and tags, with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"q":        stringProp("Keyword, matched case-insensitively. Empty lists every place"),
				"category": stringProp("Exact category name"),
				"province": stringProp("Exact province name"),
				"sort": map[string]interface{}{
					"type":        "string",
					"description": "Result order",
					"enum":        []string{"newest", "oldest", "likes", "comments", "views"},
					"default":     "newest",
				},
				"page":  intProp("1-based page number", 1),
				"limit": intProp("Page size", 10),
			},
		},
	}
}

func searchNearbyTool() mcp.Tool {
	props := coordinateProps(10)
	props["page"] = intProp("1-based page number", 1)
	props["limit"] = intProp("Page size", 10)
	return mcp.Tool{
		Name:        ToolSearchNearby,
		Description: "Paginated places within a radius of a point, closest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"lat", "lng"},
		},
	}
}

func nearbyPlacesTool() mcp.Tool {
	props := coordinateProps(50)
	props["limit"] = intProp("Maximum number of places", 6)
	return mcp.Tool{
		Name:        ToolNearbyPlaces,
		Description: "The closest places around a point, without pagination",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"lat", "lng"},
		},
	}
}

func suggestPlacesTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolSuggestPlaces,
		Description: "Autocomplete: matching places, then provinces, then tags",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"q":     stringProp("Partial text typed by the user"),
				"limit": intProp("Maximum number of suggestions", 5),
			},
			Required: []string{"q"},
		},
	}
}
