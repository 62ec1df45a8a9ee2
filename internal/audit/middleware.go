package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/repo"
)

// HTTPRecorder records successful mutating requests after they have been handled.
type HTTPRecorder struct {
	Service Recorder
}

// HTTPConfig customises how the audit entry is produced for a route.
type HTTPConfig struct {
	Action        string
	Entity        string
	EntityIDParam string
	MetadataFunc  func(*http.Request) map[string]any
}

// Middleware returns a chi-compatible middleware that records audit entries for 2xx responses.
func (r HTTPRecorder) Middleware(cfg HTTPConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if r.Service == nil {
				next.ServeHTTP(w, req)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, req)
			if recorder.Status() >= http.StatusMultipleChoices {
				return
			}

			storeID, err := repo.StoreID(req.Context())
			if err != nil {
				return
			}
			entry := Entry{
				StoreID:  storeID,
				Action:   cfg.Action,
				Entity:   cfg.Entity,
				Metadata: map[string]any{},
			}
			if userID, ok := common.UserID(req.Context()); ok {
				entry.ActorUserID = userID
			}
			if cfg.EntityIDParam != "" {
				entry.EntityID = chi.URLParam(req, cfg.EntityIDParam)
			}
			if cfg.MetadataFunc != nil {
				for k, v := range cfg.MetadataFunc(req) {
					entry.Metadata[k] = v
				}
			}
			if reqID := middleware.GetReqID(req.Context()); reqID != "" {
				entry.Metadata["requestId"] = reqID
			}
			r.Service.Record(req.Context(), entry)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}
