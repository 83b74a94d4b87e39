package suggest

import (
	"sort"
	"strings"
)

// Less is the merge comparator: place < province < tag, and among places a
// title starting with the query comes first. All other pairs are equal, so a
// stable sort keeps each pool's own order.
func Less(a, b Candidate) bool {
	if a.kind != b.kind {
		return a.kind.rank() < b.kind.rank()
	}
	if a.kind == KindPlace {
		return a.place.StartsWithQuery && !b.place.StartsWithQuery
	}
	return false
}

// Merge concatenates the ranked pools, applies one stable pass of Less and
// keeps at most limit rows overall.
func Merge(places []PlaceCandidate, provinces []ProvinceCandidate, tags []TagCandidate, limit int) []Candidate {
	out := make([]Candidate, 0, len(places)+len(provinces)+len(tags))
	for _, p := range places {
		out = append(out, FromPlace(p))
	}
	for _, p := range provinces {
		out = append(out, FromProvince(p))
	}
	for _, t := range tags {
		out = append(out, FromTag(t))
	}

	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Contains reports whether s contains query, ignoring case.
func Contains(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// HasPrefix reports whether s starts with query, ignoring case.
func HasPrefix(s, query string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(query))
}

// MarkPlaces sets StartsWithQuery on every place.
func MarkPlaces(query string, places []PlaceCandidate) {
	for i := range places {
		places[i].StartsWithQuery = HasPrefix(places[i].Title, query)
	}
}

// placeBucket: 0 title starts with query, 1 title contains it, 2 location-only match.
func placeBucket(query string, p PlaceCandidate) int {
	switch {
	case HasPrefix(p.Title, query):
		return 0
	case Contains(p.Title, query):
		return 1
	default:
		return 2
	}
}

// RankPlaces orders a place pool: title prefix matches, then other title
// matches, then location-only matches; alphabetical by title within a bucket.
func RankPlaces(query string, places []PlaceCandidate) {
	sort.SliceStable(places, func(i, j int) bool {
		bi, bj := placeBucket(query, places[i]), placeBucket(query, places[j])
		if bi != bj {
			return bi < bj
		}
		return alphaLess(places[i].Title, places[j].Title, places[i].ID, places[j].ID)
	})
}

// RankProvinces orders a province pool: prefix matches first, then alphabetical.
func RankProvinces(query string, provinces []ProvinceCandidate) {
	sort.SliceStable(provinces, func(i, j int) bool {
		pi, pj := HasPrefix(provinces[i].Name, query), HasPrefix(provinces[j].Name, query)
		if pi != pj {
			return pi
		}
		return alphaLess(provinces[i].Name, provinces[j].Name, provinces[i].ID, provinces[j].ID)
	})
}

// RankTags orders a tag pool: prefix matches first, then by place count
// descending, then alphabetical.
func RankTags(query string, tags []TagCandidate) {
	sort.SliceStable(tags, func(i, j int) bool {
		pi, pj := HasPrefix(tags[i].Name, query), HasPrefix(tags[j].Name, query)
		if pi != pj {
			return pi
		}
		if tags[i].PlaceCount != tags[j].PlaceCount {
			return tags[i].PlaceCount > tags[j].PlaceCount
		}
		return alphaLess(tags[i].Name, tags[j].Name, tags[i].ID, tags[j].ID)
	})
}

func alphaLess(a, b string, idA, idB int64) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
