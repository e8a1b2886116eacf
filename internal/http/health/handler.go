package health

import (
	"context"
	"net/http"
	"time"

	"github.com/janisto/huma-users/internal/platform/respond"
)

const pingTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler returns a plain HTTP handler for the health check endpoint. It
// answers 503 when p cannot reach its backend.
func Handler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			respond.WriteError(w, r, http.StatusServiceUnavailable, "store unavailable", err)
			return
		}
		_ = respond.Write(w, r, http.StatusOK, Response{Status: "healthy"})
	}
}
