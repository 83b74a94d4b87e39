package placedex

import (
	"time"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/result"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// SortMode orders keyword search and listing results.
type SortMode string

// Sort modes. Unknown values fall back to SortNewest.
const (
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
	SortLikes    SortMode = "likes"
	SortComments SortMode = "comments"
	SortViews    SortMode = "views"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is an active catalog entry.
type Place struct {
	ID            int64     `json:"place_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	MainImage     string    `json:"main_image"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	CategoryName  string    `json:"category_name"`
	CategoryIcon  string    `json:"category_icon"`
	ProvinceName  string    `json:"province_name"`
	Region        string    `json:"region"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Views         int64     `json:"views"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	// Distance is set by proximity queries, in kilometers.
	Distance *float64 `json:"distance,omitempty"`
}

// PlacePage is one page of places and the total across all pages.
type PlacePage struct {
	Places     []Place
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// SuggestionType discriminates suggestions.
type SuggestionType string

// Suggestion types, in result order.
const (
	SuggestionPlace    SuggestionType = "place"
	SuggestionProvince SuggestionType = "province"
	SuggestionTag      SuggestionType = "tag"
)

// Suggestion is one autocomplete entry. Only the fields of its Type are set.
type Suggestion struct {
	Type SuggestionType `json:"type"`

	PlaceID      int64  `json:"place_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Location     string `json:"location,omitempty"`
	MainImage    string `json:"main_image,omitempty"`
	CategoryName string `json:"category_name,omitempty"`

	ProvinceID   int64  `json:"province_id,omitempty"`
	ProvinceName string `json:"province_name,omitempty"`
	Region       string `json:"region,omitempty"`
	Image        string `json:"image,omitempty"`

	TagID      int64  `json:"tag_id,omitempty"`
	TagName    string `json:"tag_name,omitempty"`
	PlaceCount int    `json:"place_count,omitempty"`
}

func placeFromDomain(p *place.Place) Place {
	out := Place{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		MainImage:     p.MainImage,
		CategoryName:  p.Category.Name,
		CategoryIcon:  p.Category.Icon,
		ProvinceName:  p.Province.Name,
		Region:        p.Province.Region,
		Username:      p.Owner.Username,
		DisplayName:   p.Owner.DisplayName,
		Views:         p.Views,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
		Distance:      p.Distance,
	}
	if p.Coordinates != nil {
		lat, lng := p.Coordinates.Lat(), p.Coordinates.Lng()
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}

func placesFromDomain(items []place.Place) []Place {
	out := make([]Place, len(items))
	for i := range items {
		out[i] = placeFromDomain(&items[i])
	}
	return out
}

func pageFromDomain(res result.Paged) *PlacePage {
	return &PlacePage{
		Places:     placesFromDomain(res.Items()),
		Total:      res.Total(),
		Page:       res.Page().Number(),
		PerPage:    res.Page().Size(),
		TotalPages: res.TotalPages(),
	}
}

func suggestionFromDomain(c domsuggest.Candidate) Suggestion {
	switch c.Kind() {
	case domsuggest.KindPlace:
		p, _ := c.Place()
		return Suggestion{
			Type:         SuggestionPlace,
			PlaceID:      p.ID,
			Title:        p.Title,
			Location:     p.Location,
			MainImage:    p.MainImage,
			ProvinceName: p.ProvinceName,
			CategoryName: p.CategoryName,
		}
	case domsuggest.KindProvince:
		p, _ := c.Province()
		return Suggestion{
			Type:         SuggestionProvince,
			ProvinceID:   p.ID,
			ProvinceName: p.Name,
			Region:       p.Region,
			Image:        p.Image,
		}
	default:
		t, _ := c.Tag()
		return Suggestion{
			Type:       SuggestionTag,
			TagID:      t.ID,
			TagName:    t.Name,
			PlaceCount: t.PlaceCount,
		}
	}
}
