package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kailas-cloud/placedex/internal/domain"
	"github.com/kailas-cloud/placedex/internal/domain/place"
	"github.com/kailas-cloud/placedex/internal/domain/search/filter"
	"github.com/kailas-cloud/placedex/internal/domain/search/mode"
	"github.com/kailas-cloud/placedex/internal/domain/search/page"
)

// --- Mocks ---

type fetchCall struct {
	pred          filter.Predicate
	sort          mode.Mode
	offset, limit int
}

type mockRepo struct {
	mu        sync.Mutex
	items     []place.Place
	total     int
	fetchErr  error
	countErr  error
	fetches   []fetchCall
	countPred []filter.Predicate
}

func (m *mockRepo) FetchPlaces(
	_ context.Context, pred filter.Predicate, sort mode.Mode, offset, limit int,
) ([]place.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, fetchCall{pred: pred, sort: sort, offset: offset, limit: limit})
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.items, nil
}

func (m *mockRepo) CountPlaces(_ context.Context, pred filter.Predicate) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countPred = append(m.countPred, pred)
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.total, nil
}

// --- Tests ---

func TestSearch_FetchAndCountShareThePredicate(t *testing.T) {
	repo := &mockRepo{items: []place.Place{{ID: 1}, {ID: 2}}, total: 12}
	svc := New(repo)

	res, err := svc.Search(context.Background(), Query{
		Keyword:  "Inthanon",
		Province: "Chiang Mai",
		Sort:     mode.Likes,
		Page:     page.New(2, 5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total() != 12 || res.Count() != 2 || res.TotalPages() != 3 {
		t.Errorf("result = total %d count %d pages %d", res.Total(), res.Count(), res.TotalPages())
	}

	if len(repo.fetches) != 1 || len(repo.countPred) != 1 {
		t.Fatalf("fetches = %d, counts = %d; want 1 each", len(repo.fetches), len(repo.countPred))
	}
	f := repo.fetches[0]
	if f.pred.String() != repo.countPred[0].String() {
		t.Errorf("fetch predicate %s != count predicate %s", f.pred, repo.countPred[0])
	}
	if f.sort != mode.Likes {
		t.Errorf("sort = %q, want likes", f.sort)
	}
	if f.offset != 5 || f.limit != 5 {
		t.Errorf("offset/limit = %d/%d, want 5/5", f.offset, f.limit)
	}
}

func TestSearch_Defaults(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	res, err := svc.Search(context.Background(), Query{Sort: mode.Mode("bogus")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := repo.fetches[0]
	if f.sort != mode.Newest {
		t.Errorf("sort = %q, want newest fallback", f.sort)
	}
	if f.offset != 0 || f.limit != page.DefaultSize {
		t.Errorf("offset/limit = %d/%d, want 0/%d", f.offset, f.limit, page.DefaultSize)
	}
	if !f.pred.IsEmpty() {
		t.Errorf("predicate = %s, want empty", f.pred)
	}
	if res.Items() == nil || res.Total() != 0 {
		t.Errorf("empty result should have non-nil items and zero total")
	}
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	repo := &mockRepo{countErr: domain.ErrStoreTimeout}
	svc := New(repo)

	_, err := svc.Search(context.Background(), Query{Keyword: "x"})
	if !errors.Is(err, domain.ErrStoreTimeout) {
		t.Fatalf("err = %v, want ErrStoreTimeout", err)
	}
}

func TestList_IgnoresKeyword(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if _, err := svc.List(context.Background(), Query{Keyword: "ignored", Category: "Nature"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clauses := repo.fetches[0].pred.Clauses()
	if len(clauses) != 1 || clauses[0].Kind() != filter.ClauseCategory {
		t.Errorf("predicate = %s, want only category", repo.fetches[0].pred)
	}
}

func TestPopular(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithPopularLimit(4)

	items, err := svc.Popular(context.Background(), "Cafe", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Error("items = nil, want empty slice")
	}
	f := repo.fetches[0]
	if f.sort != mode.Popular || f.limit != 4 || f.offset != 0 {
		t.Errorf("fetch = %+v, want popular/limit 4", f)
	}
	if len(repo.countPred) != 0 {
		t.Error("popular listing must not count")
	}
}

func TestPopular_Error(t *testing.T) {
	repo := &mockRepo{fetchErr: domain.ErrStoreUnavailable}
	if _, err := New(repo).Popular(context.Background(), "", 3); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
