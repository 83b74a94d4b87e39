package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid coordinate", ErrInvalidCoordinate, KindInvalidCoordinate},
		{"wrapped missing", fmt.Errorf("nearby: %w", ErrMissingCoordinates), KindMissingCoordinates},
		{"store timeout", fmt.Errorf("count: %w", ErrStoreTimeout), KindStoreTimeout},
		{"store unavailable", ErrStoreUnavailable, KindStoreUnavailable},
		{"unknown", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	if !IsClientError(fmt.Errorf("parse: %w", ErrInvalidCoordinate)) {
		t.Error("invalid coordinate should be a client error")
	}
	if IsClientError(ErrStoreTimeout) {
		t.Error("store timeout should not be a client error")
	}
}
