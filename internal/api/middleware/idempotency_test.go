package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// fakeIdempotencyStore is an in-memory IdempotencyStore for tests. It
// keeps the TTL passed to Set and evicts records whose TTL has elapsed
// against the fake clock, mirroring Redis key expiry.
type fakeIdempotencyStore struct {
	records  map[string]*domain.IdempotencyRecord
	expiries map[string]time.Time
	lastTTL  time.Duration
	now      func() time.Time
	getErr   error
	setErr   error
}

func newFakeStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{
		records:  make(map[string]*domain.IdempotencyRecord),
		expiries: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *fakeIdempotencyStore) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(s.expiries[key]) {
		delete(s.records, key)
		delete(s.expiries, key)
		return nil, nil
	}
	return record, nil
}

func (s *fakeIdempotencyStore) Set(ctx context.Context, record *domain.IdempotencyRecord, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.lastTTL = ttl
	s.records[record.Key] = record
	s.expiries[record.Key] = s.now().Add(ttl)
	return nil
}

func requestWithUser(t *testing.T, userID uuid.UUID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/abc/work-items", bytes.NewBufferString(body))
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)
	userID := uuid.New()

	calls := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"one"}`))
	}))

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, requestWithUser(t, userID, `{"title":"a","entity_id":"x"}`))

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, requestWithUser(t, userID, `{"title":"a","entity_id":"x"}`))

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
	if rec2.Code != http.StatusCreated {
		t.Errorf("expected replayed status %d, got %d", http.StatusCreated, rec2.Code)
	}
	if rec2.Body.String() != `{"id":"one"}` {
		t.Errorf("expected replayed body, got %s", rec2.Body.String())
	}
}

func TestIdempotencyMiddleware_CanonicalBody(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)
	userID := uuid.New()

	calls := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	// Same payload, different key order
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, requestWithUser(t, userID, `{"a":1,"b":2}`))

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, requestWithUser(t, userID, `{"b":2,"a":1}`))

	if calls != 1 {
		t.Errorf("expected reordered JSON keys to hit the same record, handler ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_StoresWithTTL(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)

	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser(t, uuid.New(), `{"a":1}`))

	if store.lastTTL != domain.IdempotencyTTL {
		t.Errorf("expected record stored with TTL %s, got %s", domain.IdempotencyTTL, store.lastTTL)
	}
}

func TestIdempotencyMiddleware_ExpiredRecordReexecutes(t *testing.T) {
	store := newFakeStore()
	clock := time.Now()
	store.now = func() time.Time { return clock }
	m := NewIdempotencyMiddleware(store)
	userID := uuid.New()

	calls := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, requestWithUser(t, userID, `{"a":1}`))

	clock = clock.Add(domain.IdempotencyTTL + time.Minute)

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, requestWithUser(t, userID, `{"a":1}`))

	if calls != 2 {
		t.Errorf("expected retry after expiry to reach the handler, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_DistinctCallers(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)

	calls := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, requestWithUser(t, uuid.New(), `{"a":1}`))

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, requestWithUser(t, uuid.New(), `{"a":1}`))

	if calls != 2 {
		t.Errorf("expected distinct callers to miss each other's records, handler ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheErrors(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)
	userID := uuid.New()

	calls := 0
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"one"}`))
	}))

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, requestWithUser(t, userID, `{"a":1}`))

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, requestWithUser(t, userID, `{"a":1}`))

	if calls != 2 {
		t.Errorf("expected failed response not to be cached, handler ran %d times", calls)
	}
	if rec2.Code != http.StatusCreated {
		t.Errorf("expected retry to reach the handler, got status %d", rec2.Code)
	}
}

func TestIdempotencyMiddleware_FailsOpen(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	m := NewIdempotencyMiddleware(store)
	userID := uuid.New()

	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser(t, userID, `{"a":1}`))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected request to proceed on store failure, got status %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_SkipsAnonymous(t *testing.T) {
	store := newFakeStore()
	m := NewIdempotencyMiddleware(store)

	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/things", bytes.NewBufferString(`{"a":1}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected anonymous request to pass through, got status %d", rec.Code)
	}
	if len(store.records) != 0 {
		t.Errorf("expected nothing stored for anonymous request, got %d records", len(store.records))
	}
}

func TestFingerprint(t *testing.T) {
	a := fingerprint("user", "POST", "/x", []byte(`{"a":1,"b":2}`))
	b := fingerprint("user", "POST", "/x", []byte(`{"b":2,"a":1}`))
	if a != b {
		t.Error("expected reordered JSON keys to produce the same fingerprint")
	}

	c := fingerprint("user", "POST", "/y", []byte(`{"a":1,"b":2}`))
	if a == c {
		t.Error("expected different paths to produce different fingerprints")
	}

	d := fingerprint("other", "POST", "/x", []byte(`{"a":1,"b":2}`))
	if a == d {
		t.Error("expected different users to produce different fingerprints")
	}
}
