package mode

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", Newest},
		{"newest", Newest},
		{"oldest", Oldest},
		{"LIKES", Likes},
		{" comments ", Comments},
		{"views", Views},
		{"rating", Newest},
		{"distance", Newest},
		{"popular", Newest},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Newest, Oldest, Likes, Comments, Views, Popular, Distance, Nearest} {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}
	if Mode("HYBRID").IsValid() {
		t.Error("unknown mode reported valid")
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		mode Mode
		want []Key
	}{
		{Newest, []Key{{ColumnCreatedAt, true}, {ColumnID, false}}},
		{Likes, []Key{{ColumnLikes, true}, {ColumnCreatedAt, true}, {ColumnID, false}}},
		{Comments, []Key{{ColumnComments, true}, {ColumnCreatedAt, true}, {ColumnID, false}}},
		{Distance, []Key{{ColumnDistance, false}, {ColumnCreatedAt, true}, {ColumnID, false}}},
		{Nearest, []Key{{ColumnDistance, false}, {ColumnID, false}}},
		{Mode("bogus"), []Key{{ColumnCreatedAt, true}, {ColumnID, false}}},
	}
	for _, tt := range tests {
		if got := tt.mode.Keys(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q.Keys() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestNeedsDistance(t *testing.T) {
	if !Distance.NeedsDistance() || !Nearest.NeedsDistance() {
		t.Error("distance orderings must need distance")
	}
	if Newest.NeedsDistance() {
		t.Error("newest must not need distance")
	}
}
