// Package suggest models autocomplete candidates and their ordering rules.
package suggest

// Kind discriminates the candidate variants.
type Kind string

// Candidate kinds, in output order.
const (
	KindPlace    Kind = "place"
	KindProvince Kind = "province"
	KindTag      Kind = "tag"
)

func (k Kind) rank() int {
	switch k {
	case KindPlace:
		return 0
	case KindProvince:
		return 1
	case KindTag:
		return 2
	default:
		return 3
	}
}

// PlaceCandidate is a place whose title or location matched the query.
type PlaceCandidate struct {
	ID           int64
	Title        string
	Location     string
	MainImage    string
	ProvinceName string
	CategoryName string
	// StartsWithQuery is true when the title starts with the query.
	StartsWithQuery bool
}

// ProvinceCandidate is a province whose name matched the query.
type ProvinceCandidate struct {
	ID     int64
	Name   string
	Region string
	Image  string
}

// TagCandidate is a tag whose name matched the query.
type TagCandidate struct {
	ID         int64
	Name       string
	PlaceCount int
}

// Candidate is one autocomplete row. Exactly one variant is set.
type Candidate struct {
	kind     Kind
	place    *PlaceCandidate
	province *ProvinceCandidate
	tag      *TagCandidate
}

// FromPlace wraps a place candidate.
func FromPlace(p PlaceCandidate) Candidate {
	return Candidate{kind: KindPlace, place: &p}
}

// FromProvince wraps a province candidate.
func FromProvince(p ProvinceCandidate) Candidate {
	return Candidate{kind: KindProvince, province: &p}
}

// FromTag wraps a tag candidate.
func FromTag(t TagCandidate) Candidate {
	return Candidate{kind: KindTag, tag: &t}
}

// Kind returns the variant discriminator.
func (c Candidate) Kind() Kind { return c.kind }

// Place returns the place variant.
func (c Candidate) Place() (PlaceCandidate, bool) {
	if c.place == nil {
		return PlaceCandidate{}, false
	}
	return *c.place, true
}

// Province returns the province variant.
func (c Candidate) Province() (ProvinceCandidate, bool) {
	if c.province == nil {
		return ProvinceCandidate{}, false
	}
	return *c.province, true
}

// Tag returns the tag variant.
func (c Candidate) Tag() (TagCandidate, bool) {
	if c.tag == nil {
		return TagCandidate{}, false
	}
	return *c.tag, true
}

// Label returns the display text of the candidate.
func (c Candidate) Label() string {
	switch c.kind {
	case KindPlace:
		return c.place.Title
	case KindProvince:
		return c.province.Name
	case KindTag:
		return c.tag.Name
	default:
		return ""
	}
}
