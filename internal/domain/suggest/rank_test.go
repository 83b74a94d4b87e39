package suggest

import (
	"testing"
)

func kinds(cs []Candidate) []Kind {
	out := make([]Kind, len(cs))
	for i, c := range cs {
		out[i] = c.Kind()
	}
	return out
}

func TestMerge_TypeOrderIsNonDecreasing(t *testing.T) {
	places := []PlaceCandidate{{ID: 1, Title: "Bangkok Art Centre"}}
	provinces := []ProvinceCandidate{{ID: 10, Name: "Bangkok"}}
	tags := []TagCandidate{{ID: 100, Name: "bangkok-food", PlaceCount: 3}}

	got := Merge(places, provinces, tags, 10)
	want := []Kind{KindPlace, KindProvince, KindTag}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Kind() != want[i] {
			t.Errorf("kinds = %v, want %v", kinds(got), want)
			break
		}
	}
}

func TestMerge_StartsWithPlaceFirst(t *testing.T) {
	places := []PlaceCandidate{
		{ID: 1, Title: "Doi Inthanon"},
		{ID: 2, Title: "Inthanon Waterfall", StartsWithQuery: true},
	}
	got := Merge(places, nil, nil, 5)

	p0, _ := got[0].Place()
	if p0.ID != 2 {
		t.Errorf("first place = %d, want 2 (title starts with query)", p0.ID)
	}
}

func TestMerge_StableWithinGroups(t *testing.T) {
	provinces := []ProvinceCandidate{
		{ID: 3, Name: "Zeta"},
		{ID: 1, Name: "Alpha"},
	}
	tags := []TagCandidate{
		{ID: 9, Name: "b", PlaceCount: 1},
		{ID: 8, Name: "a", PlaceCount: 7},
	}
	got := Merge(nil, provinces, tags, 10)

	var ids []int64
	for _, c := range got {
		if p, ok := c.Province(); ok {
			ids = append(ids, p.ID)
		}
		if tg, ok := c.Tag(); ok {
			ids = append(ids, tg.ID)
		}
	}
	want := []int64{3, 1, 9, 8}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want pool order kept %v", ids, want)
		}
	}
}

func TestMerge_TruncatesToTotalLimit(t *testing.T) {
	places := make([]PlaceCandidate, 5)
	for i := range places {
		places[i] = PlaceCandidate{ID: int64(i + 1), Title: "Temple"}
	}
	provinces := []ProvinceCandidate{{ID: 1, Name: "Temple Province"}}

	got := Merge(places, provinces, nil, 5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for _, c := range got {
		if c.Kind() != KindPlace {
			t.Errorf("province should be starved by places, got %s", c.Kind())
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil, nil, nil, 5); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestLess(t *testing.T) {
	start := FromPlace(PlaceCandidate{ID: 1, StartsWithQuery: true})
	other := FromPlace(PlaceCandidate{ID: 2})
	prov := FromProvince(ProvinceCandidate{ID: 3})
	tag := FromTag(TagCandidate{ID: 4})

	if !Less(start, other) || Less(other, start) {
		t.Error("prefix place must sort before non-prefix place")
	}
	if !Less(other, prov) || !Less(prov, tag) || Less(tag, prov) {
		t.Error("type order must be place < province < tag")
	}
	if Less(prov, FromProvince(ProvinceCandidate{ID: 5})) {
		t.Error("provinces must compare equal")
	}
}

func TestRankPlaces(t *testing.T) {
	places := []PlaceCandidate{
		{ID: 1, Title: "Old Town", Location: "Inthanon road"},
		{ID: 2, Title: "Doi Inthanon"},
		{ID: 3, Title: "inthanon Waterfall"},
		{ID: 4, Title: "Baan Inthanon"},
		{ID: 5, Title: "Inthanon Camp"},
	}
	RankPlaces("Inthanon", places)

	want := []int64{5, 3, 4, 2, 1}
	for i, id := range want {
		if places[i].ID != id {
			t.Fatalf("order = %v, want %v", placeIDs(places), want)
		}
	}
}

func TestRankProvinces(t *testing.T) {
	provinces := []ProvinceCandidate{
		{ID: 1, Name: "Nakhon Chai Si"},
		{ID: 2, Name: "Chai Nat"},
		{ID: 3, Name: "Chaiyaphum"},
	}
	RankProvinces("chai", provinces)
	if provinces[0].ID != 2 || provinces[1].ID != 3 || provinces[2].ID != 1 {
		t.Errorf("order = %+v", provinces)
	}
}

func TestRankTags(t *testing.T) {
	tags := []TagCandidate{
		{ID: 1, Name: "street-food", PlaceCount: 9},
		{ID: 2, Name: "food-market", PlaceCount: 2},
		{ID: 3, Name: "foodie", PlaceCount: 5},
		{ID: 4, Name: "food", PlaceCount: 5},
	}
	RankTags("food", tags)

	want := []int64{4, 3, 2, 1}
	for i, id := range want {
		if tags[i].ID != id {
			t.Fatalf("tag order = %+v, want ids %v", tags, want)
		}
	}
}

func TestMarkPlaces(t *testing.T) {
	places := []PlaceCandidate{{Title: "Inthanon Waterfall"}, {Title: "Doi Inthanon"}}
	MarkPlaces("INTHANON", places)
	if !places[0].StartsWithQuery || places[1].StartsWithQuery {
		t.Errorf("marks = %v, %v", places[0].StartsWithQuery, places[1].StartsWithQuery)
	}
}

func placeIDs(ps []PlaceCandidate) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
