package db

import (
	"reflect"
	"testing"
	"time"
)

type testDialect struct {
	placeholder func(int) string
}

func (d testDialect) Name() string               { return "test" }
func (d testDialect) Placeholder(n int) string   { return d.placeholder(n) }
func (d testDialect) IsUnavailable(_ error) bool { return false }
func (d testDialect) BindTime(t time.Time) any   { return t }
func (d testDialect) DistanceKm(a, b, c, e string) string {
	return "dist(" + a + ", " + b + ", " + c + ", " + e + ")"
}

func TestSelectBuilder_Simple(t *testing.T) {
	b := Select(testDialect{DollarPlaceholder}, "p.place_id", "p.title").
		From("places p").
		Join("JOIN provinces pr ON pr.province_id = p.province_id")
	b.Where("pr.province_name = " + b.Arg("Chiang Mai"))
	b.OrderBy("p.created_at DESC").Limit(10).Offset(20)

	q, args := b.Build()
	want := "SELECT p.place_id, p.title FROM places p " +
		"JOIN provinces pr ON pr.province_id = p.province_id " +
		"WHERE pr.province_name = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3"
	if q != want {
		t.Errorf("query =\n%s\nwant\n%s", q, want)
	}
	if !reflect.DeepEqual(args, []any{"Chiang Mai", 10, 20}) {
		t.Errorf("args = %v", args)
	}
}

func TestSelectBuilder_WrapKeepsArgs(t *testing.T) {
	inner := Select(testDialect{QuestionPlaceholder}).From("places p")
	inner.Column("p.place_id")
	inner.Where("p.title LIKE " + inner.Arg("%x%"))

	outer := inner.Wrap("matched", "COUNT(*)")
	outer.Where("matched.distance <= " + outer.Arg(5.0))

	q, args := outer.Build()
	want := "SELECT COUNT(*) FROM (SELECT p.place_id FROM places p WHERE p.title LIKE ?) AS matched " +
		"WHERE matched.distance <= ?"
	if q != want {
		t.Errorf("query =\n%s\nwant\n%s", q, want)
	}
	if !reflect.DeepEqual(args, []any{"%x%", 5.0}) {
		t.Errorf("args = %v", args)
	}
}

func TestSelectBuilder_StarWhenNoColumns(t *testing.T) {
	q, _ := Select(testDialect{QuestionPlaceholder}).From("tags").Build()
	if q != "SELECT * FROM tags" {
		t.Errorf("query = %q", q)
	}
}

func TestSelectBuilder_BuildReturnsCopy(t *testing.T) {
	b := Select(testDialect{QuestionPlaceholder}).From("t")
	b.Where("a = " + b.Arg(1))
	_, args := b.Build()
	args[0] = 99
	_, again := b.Build()
	if again[0] != 1 {
		t.Error("Build must not expose the internal argument slice")
	}
}

func TestSelectBuilder_GroupBy(t *testing.T) {
	b := Select(testDialect{QuestionPlaceholder}, "t.tag_id", "COUNT(pt.place_id) AS place_count").
		From("tags t").
		Join("LEFT JOIN place_tags pt ON pt.tag_id = t.tag_id").
		GroupBy("t.tag_id").
		OrderBy("place_count DESC")

	q, _ := b.Build()
	want := "SELECT t.tag_id, COUNT(pt.place_id) AS place_count FROM tags t " +
		"LEFT JOIN place_tags pt ON pt.tag_id = t.tag_id GROUP BY t.tag_id ORDER BY place_count DESC"
	if q != want {
		t.Errorf("query =\n%s\nwant\n%s", q, want)
	}
}
