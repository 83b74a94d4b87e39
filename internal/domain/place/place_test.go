package place

import (
	"testing"

	"github.com/kailas-cloud/placedex/internal/domain/geo"
)

func TestPlace_SetDistance(t *testing.T) {
	from, _ := geo.NewPoint(18.79, 98.98)
	at, _ := geo.NewPoint(18.815, 98.98)

	p := Place{ID: 1, Coordinates: &at}
	p.SetDistance(from)
	if p.Distance == nil {
		t.Fatal("distance not set")
	}
	if *p.Distance < 2.7 || *p.Distance > 2.9 {
		t.Errorf("distance = %v, want ~2.78km", *p.Distance)
	}
}

func TestPlace_SetDistanceWithoutCoordinates(t *testing.T) {
	from, _ := geo.NewPoint(18.79, 98.98)
	p := Place{ID: 2}
	p.SetDistance(from)
	if p.Distance != nil {
		t.Errorf("distance = %v, want nil", *p.Distance)
	}
	if p.HasCoordinates() {
		t.Error("HasCoordinates() = true, want false")
	}
}
