// Package filter builds the predicate shared by the page fetch and the
// total count of every paginated place query.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/placedex/internal/domain/geo"
)

// Field is a text attribute searched by the keyword clause.
type Field string

// Keyword fields, in matching order.
const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldLocation     Field = "location"
	FieldProvinceName Field = "province_name"
	// FieldTagName matches when any tag of the place matches.
	FieldTagName Field = "tag_name"
)

// KeywordFields lists every field the keyword clause is matched against.
var KeywordFields = []Field{
	FieldTitle, FieldDescription, FieldLocation, FieldProvinceName, FieldTagName,
}

// Radius is a distance bound around a query point.
type Radius struct {
	center geo.Point
	km     float64
}

// NewRadius validates and creates a Radius.
func NewRadius(center geo.Point, km float64) (Radius, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return Radius{}, fmt.Errorf("radius must be a positive number of kilometers, got %v", km)
	}
	return Radius{center: center, km: km}, nil
}

// Center returns the query point.
func (r Radius) Center() geo.Point { return r.center }

// Km returns the radius in kilometers.
func (r Radius) Km() float64 { return r.km }

// SearchFilter is the caller-facing set of optional filters.
type SearchFilter struct {
	Keyword  string
	Category string
	Province string
	Radius   *Radius
}

// ClauseKind identifies a predicate clause.
type ClauseKind int

// Clause kinds.
const (
	// ClauseKeyword is a case-insensitive substring match over Fields (OR).
	ClauseKeyword ClauseKind = iota + 1
	// ClauseCategory is an exact category name match.
	ClauseCategory
	// ClauseProvince is an exact province name match.
	ClauseProvince
	// ClauseHasCoordinates restricts to places with both coordinates.
	ClauseHasCoordinates
	// ClauseWithinRadius bounds the computed distance. It applies after the
	// distance column exists.
	ClauseWithinRadius
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseKeyword:
		return "keyword"
	case ClauseCategory:
		return "category"
	case ClauseProvince:
		return "province"
	case ClauseHasCoordinates:
		return "has_coordinates"
	case ClauseWithinRadius:
		return "within_radius"
	default:
		return "unknown"
	}
}

// Clause is a single condition of a Predicate.
type Clause struct {
	kind   ClauseKind
	fields []Field
	value  string
	radius Radius
}

// Kind returns the clause kind.
func (c Clause) Kind() ClauseKind { return c.kind }

// Fields returns the fields matched by a keyword clause.
func (c Clause) Fields() []Field { return c.fields }

// Value returns the matched text: lower-cased for keywords, verbatim for names.
func (c Clause) Value() string { return c.value }

// Radius returns the bound of a within-radius clause.
func (c Clause) Radius() Radius { return c.radius }

// Predicate is the immutable conjunction of clauses built from a SearchFilter.
// Adapters render it once and reuse it for both the page and the count.
type Predicate struct {
	clauses []Clause
}

// Build turns a SearchFilter into a Predicate. Blank values add no clause.
func Build(f SearchFilter) Predicate {
	var clauses []Clause

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		clauses = append(clauses, Clause{
			kind:   ClauseKeyword,
			fields: KeywordFields,
			value:  strings.ToLower(kw),
		})
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		clauses = append(clauses, Clause{kind: ClauseCategory, value: c})
	}
	if p := strings.TrimSpace(f.Province); p != "" {
		clauses = append(clauses, Clause{kind: ClauseProvince, value: p})
	}
	if f.Radius != nil {
		clauses = append(clauses,
			Clause{kind: ClauseHasCoordinates},
			Clause{kind: ClauseWithinRadius, radius: *f.Radius},
		)
	}

	return Predicate{clauses: clauses}
}

// Clauses returns a copy of the clauses in build order.
func (p Predicate) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

// Row returns the clauses that can be evaluated on stored columns alone.
func (p Predicate) Row() []Clause {
	var out []Clause
	for _, c := range p.clauses {
		if c.kind != ClauseWithinRadius {
			out = append(out, c)
		}
	}
	return out
}

// Radius returns the radius bound, if any.
func (p Predicate) Radius() (Radius, bool) {
	for _, c := range p.clauses {
		if c.kind == ClauseWithinRadius {
			return c.radius, true
		}
	}
	return Radius{}, false
}

// IsEmpty reports whether the predicate matches every active place.
func (p Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

func (p Predicate) String() string {
	parts := make([]string, 0, len(p.clauses))
	for _, c := range p.clauses {
		switch c.kind {
		case ClauseWithinRadius:
			parts = append(parts, fmt.Sprintf("%s(%s, %gkm)", c.kind, c.radius.center, c.radius.km))
		case ClauseHasCoordinates:
			parts = append(parts, c.kind.String())
		default:
			parts = append(parts, fmt.Sprintf("%s(%q)", c.kind, c.value))
		}
	}
	return strings.Join(parts, " AND ")
}
