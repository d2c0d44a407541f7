package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// IdempotencyMiddleware replays cached responses for duplicate mutating
// requests. A request is identified by the caller, method, path and the
// canonical form of its JSON body, so a retried request with reordered
// JSON keys still hits the same record.
type IdempotencyMiddleware struct {
	store domain.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new idempotency middleware
func NewIdempotencyMiddleware(store domain.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Handle caches the first successful response per request fingerprint and
// replays it for duplicates. Store failures never block the request.
func (m *IdempotencyMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		key := fingerprint(userID.String(), r.Method, r.URL.Path, body)

		record, err := m.store.Get(r.Context(), key)
		if err != nil {
			// Treat a broken store as a miss rather than failing the request.
			log.Warn().Err(err).Msg("idempotency lookup failed")
		} else if record != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(record.StatusCode)
			w.Write(record.ResponseBody)
			return
		}

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= 200 && rec.status < 300 {
			err := m.store.Set(r.Context(), &domain.IdempotencyRecord{
				Key:          key,
				StatusCode:   rec.status,
				ResponseBody: rec.body.Bytes(),
				CreatedAt:    time.Now(),
			}, domain.IdempotencyTTL)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency store failed")
			}
		}
	})
}

// fingerprint hashes the request identity. The body is round-tripped
// through encoding/json so that key order does not matter.
func fingerprint(userID, method, path string, body []byte) string {
	canonical := body
	if len(body) > 0 {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			if b, err := json.Marshal(v); err == nil {
				canonical = b
			}
		}
	}

	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte{'\n'})
	h.Write([]byte(method))
	h.Write([]byte{'\n'})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}

type responseRecorder struct {
	http.ResponseWriter
	status      int
	body        bytes.Buffer
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
