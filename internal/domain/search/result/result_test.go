package result

import (
	"testing"

	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
)

func TestNew(t *testing.T) {
	items := []place.Place{{ID: 1}, {ID: 2}}
	r := New(items, 12, page.New(2, 5))

	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if r.Total() != 12 {
		t.Errorf("Total() = %d, want 12", r.Total())
	}
	if r.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", r.TotalPages())
	}
	if r.Page().Number() != 2 {
		t.Errorf("Page().Number() = %d, want 2", r.Page().Number())
	}
}

func TestNew_NilItemsBecomeEmpty(t *testing.T) {
	r := New(nil, 0, page.New(1, 10))
	if r.Items() == nil {
		t.Fatal("Items() = nil, want empty slice")
	}
	if r.TotalPages() != 0 {
		t.Errorf("TotalPages() = %d, want 0", r.TotalPages())
	}
}
