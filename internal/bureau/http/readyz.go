package http

import (
	"context"
	"net/http"
	"time"

	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the token signer and, when configured, the shared rate limit cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	bureausdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	bureausdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer jwtx.Signer,
	cachePing func(context.Context) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())
		checks := &bureausdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		// Details stay in the logs; the probe body only says which check failed.
		if err := st.Ping(ctx); err != nil {
			log.Warn("readiness: database unavailable", "err", err)
			checks.Database = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if err := signer.Validate(); err != nil {
			log.Warn("readiness: signer unavailable", "err", err)
			checks.Signer = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if cachePing != nil {
			checks.Cache = "ok"
			if err := cachePing(ctx); err != nil {
				// The limiter fails open, so the service still serves.
				log.Warn("readiness: cache unavailable", "err", err)
				checks.Cache = "error"
			}
		}

		httpx.WriteJSON(w, code, bureausdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
