package chi

import (
	"time"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/result"
	domsuggest "github.com/kailas-cloud/placedex/internal/domain/suggest"
)

// envelope is the success body shared by every list endpoint.
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

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type placeJSON struct {
	PlaceID       int64     `json:"place_id"`
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
	Distance      *float64  `json:"distance,omitempty"`
}

type placeSuggestionJSON struct {
	Type         domsuggest.Kind `json:"type"`
	PlaceID      int64           `json:"place_id"`
	Title        string          `json:"title"`
	Location     string          `json:"location"`
	MainImage    string          `json:"main_image"`
	ProvinceName string          `json:"province_name"`
	CategoryName string          `json:"category_name"`
}

type provinceSuggestionJSON struct {
	Type         domsuggest.Kind `json:"type"`
	ProvinceID   int64           `json:"province_id"`
	ProvinceName string          `json:"province_name"`
	Region       string          `json:"region"`
	Image        string          `json:"image"`
}

type tagSuggestionJSON struct {
	Type       domsuggest.Kind `json:"type"`
	TagID      int64           `json:"tag_id"`
	TagName    string          `json:"tag_name"`
	PlaceCount int             `json:"place_count"`
}

func pagedEnvelope(res result.Paged) envelope {
	total := res.Total()
	return envelope{
		Success: true,
		Count:   res.Count(),
		Total:   &total,
		Pagination: &pagination{
			CurrentPage: res.Page().Number(),
			TotalPages:  res.TotalPages(),
			PerPage:     res.Page().Size(),
		},
		Data: placesToJSON(res.Items()),
	}
}

func listEnvelope(items []place.Place) envelope {
	return envelope{Success: true, Count: len(items), Data: placesToJSON(items)}
}

func placesToJSON(items []place.Place) []placeJSON {
	out := make([]placeJSON, len(items))
	for i := range items {
		out[i] = placeToJSON(&items[i])
	}
	return out
}

func placeToJSON(p *place.Place) placeJSON {
	out := placeJSON{
		PlaceID:       p.ID,
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

func suggestionToJSON(c domsuggest.Candidate) any {
	if p, ok := c.Place(); ok {
		return placeSuggestionJSON{
			Type:         domsuggest.KindPlace,
			PlaceID:      p.ID,
			Title:        p.Title,
			Location:     p.Location,
			MainImage:    p.MainImage,
			ProvinceName: p.ProvinceName,
			CategoryName: p.CategoryName,
		}
	}
	if p, ok := c.Province(); ok {
		return provinceSuggestionJSON{
			Type:         domsuggest.KindProvince,
			ProvinceID:   p.ID,
			ProvinceName: p.Name,
			Region:       p.Region,
			Image:        p.Image,
		}
	}
	t, _ := c.Tag()
	return tagSuggestionJSON{
		Type:       domsuggest.KindTag,
		TagID:      t.ID,
		TagName:    t.Name,
		PlaceCount: t.PlaceCount,
	}
}
