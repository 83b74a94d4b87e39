package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/kailas-cloud/placedex/internal/domain"
)

func TestClassify(t *testing.T) {
	errEngineDown := errors.New("engine down")
	unavailable := func(err error) bool { return errors.Is(err, errEngineDown) }

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), domain.ErrStoreTimeout},
		{"bad conn", driver.ErrBadConn, domain.ErrStoreUnavailable},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, domain.ErrStoreUnavailable},
		{"engine specific", errEngineDown, domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(OpFetchPlaces, tt.err, unavailable)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Classify() = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("original error must stay in the chain")
			}
			var dbErr *Error
			if !errors.As(err, &dbErr) || dbErr.Op != OpFetchPlaces {
				t.Errorf("op = %v, want %s", dbErr, OpFetchPlaces)
			}
		})
	}
}

func TestClassify_Other(t *testing.T) {
	err := Classify(OpCountPlaces, errors.New("syntax error"), nil)
	if domain.KindOf(err) != domain.KindInternal {
		t.Errorf("kind = %s, want internal", domain.KindOf(err))
	}
	if Classify(OpCountPlaces, nil, nil) != nil {
		t.Error("nil error must stay nil")
	}
}

type flakyPinger struct {
	failures int
}

func (p *flakyPinger) Ping(_ context.Context) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("not yet")
	}
	return nil
}

func TestWaitForReady(t *testing.T) {
	p := &flakyPinger{failures: 2}
	if err := WaitForReady(context.Background(), p, 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	p := &flakyPinger{failures: 1 << 20}
	err := WaitForReady(context.Background(), p, 150*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
