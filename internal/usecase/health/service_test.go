package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockDBPinger struct {
	err         error
	hadDeadline bool
}

func (m *mockDBPinger) Ping(ctx context.Context) error {
	_, m.hadDeadline = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	db := &mockDBPinger{}
	r := New(db).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if !db.hadDeadline {
		t.Error("ping should run under a deadline")
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	r := New(&mockDBPinger{err: errors.New("connection refused")}).
		WithTimeout(time.Second).
		Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}
