// Package seedtest provides a small, fixed catalog for adapter and transport tests.
package seedtest

import (
	"time"

	"github.com/kailas-cloud/placedex/internal/seed"
)

// Reference query point used by proximity tests.
const (
	OriginLat = 18.79
	OriginLng = 98.98
)

// Place ids in the fixture.
const (
	DoiInthanon       int64 = 1 // 3 km north of the origin, 5 likes, created first
	InthanonWaterfall int64 = 2 // 8 km south of the origin, 1 like, 2 active comments
	NimmanCoffee      int64 = 3 // 20 km north of the origin, 5 likes, created third
	WatArun           int64 = 4 // Bangkok
	ArtCentre         int64 = 5 // no coordinates
	HiddenShrine      int64 = 6 // inactive, 1 km from the origin
)

func ptr[T any](v T) *T { return &v }

// Month returns the first day of the given 2024 month in UTC.
func Month(m time.Month) time.Time {
	return time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)
}

// Catalog returns a fresh copy of the fixture.
func Catalog() *seed.Catalog {
	return &seed.Catalog{
		Categories: []seed.Category{
			{ID: 1, Name: "Nature", Icon: "tree"},
			{ID: 2, Name: "Cafe", Icon: "cup"},
			{ID: 3, Name: "Temple", Icon: "temple"},
			{ID: 4, Name: "Museum", Icon: "museum"},
			{ID: 5, Name: "Art", Icon: "palette"},
		},
		Provinces: []seed.Province{
			{ID: 1, Name: "Chiang Mai", Region: "North", Image: "cm.jpg"},
			{ID: 2, Name: "Bangkok", Region: "Central", Image: "bkk.jpg"},
			{ID: 3, Name: "Chai Nat", Region: "Central"},
		},
		Users: []seed.User{
			{ID: 1, Username: "alice", DisplayName: "Alice"},
			{ID: 2, Username: "bob", DisplayName: "Bob"},
			{ID: 3, Username: "carol", DisplayName: "Carol"},
			{ID: 4, Username: "dave", DisplayName: "Dave"},
			{ID: 5, Username: "erin", DisplayName: "Erin"},
		},
		Places: []seed.Place{
			{
				ID: DoiInthanon, Title: "Doi Inthanon", Description: "Highest peak in Thailand",
				Location: "Chom Thong", Category: "Nature", Province: "Chiang Mai", Owner: "alice",
				Latitude: ptr(OriginLat + 3/111.19492664455873), Longitude: ptr(OriginLng),
				Views: 300, CreatedAt: Month(time.January),
				Tags:     []string{"mountain", "national-park", "inthanon-trail"},
				LikedBy:  []string{"alice", "bob", "carol", "dave", "erin", "alice"},
				Comments: []seed.Comment{{User: "bob", Text: "cold at the top"}},
			},
			{
				ID: InthanonWaterfall, Title: "Inthanon Waterfall", Description: "Wachirathan falls",
				Location: "Doi Inthanon road", Category: "Nature", Province: "Chiang Mai", Owner: "bob",
				Latitude: ptr(OriginLat - 8/111.19492664455873), Longitude: ptr(OriginLng),
				Views: 150, CreatedAt: Month(time.February),
				Tags:    []string{"waterfall", "national-park", "inthanon-trail"},
				LikedBy: []string{"carol"},
				Comments: []seed.Comment{
					{User: "alice", Text: "loud"},
					{User: "carol", Text: "wet"},
					{User: "dave", Text: "spam", Active: ptr(false)},
				},
			},
			{
				ID: NimmanCoffee, Title: "Nimman Coffee", Description: "Specialty roaster",
				Location: "Nimmanhaemin", Category: "Cafe", Province: "Chiang Mai", Owner: "carol",
				Latitude: ptr(OriginLat + 20/111.19492664455873), Longitude: ptr(OriginLng),
				Views: 50, CreatedAt: Month(time.March),
				Tags:    []string{"coffee"},
				LikedBy: []string{"alice", "bob", "carol", "dave", "erin"},
			},
			{
				ID: WatArun, Title: "Wat Arun", Description: "Temple of Dawn",
				Location: "Bangkok Yai", Category: "Temple", Province: "Bangkok", Owner: "alice",
				Latitude: ptr(13.7437), Longitude: ptr(100.4889),
				Views: 900, CreatedAt: Month(time.April),
				Tags:    []string{"temple", "riverside"},
				LikedBy: []string{"bob", "dave"},
			},
			{
				ID: ArtCentre, Title: "Bangkok Art Centre", Description: "Contemporary exhibitions",
				Location: "Pathum Wan", Category: "Art", Province: "Bangkok", Owner: "dave",
				Views: 20, CreatedAt: Month(time.May),
				Tags: []string{"art"},
			},
			{
				ID: HiddenShrine, Title: "Old Hidden Shrine", Description: "Closed to visitors",
				Location: "Chiang Mai old town", Category: "Temple", Province: "Chiang Mai", Owner: "erin",
				Latitude: ptr(OriginLat + 1/111.19492664455873), Longitude: ptr(OriginLng),
				Active: ptr(false), CreatedAt: Month(time.June),
				Tags:    []string{"temple", "inthanon-trail"},
				LikedBy: []string{"alice", "bob", "carol", "dave", "erin"},
			},
		},
	}
}
