// middleware/maintenance.go
package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
)

var maintenanceMode atomic.Bool

// SetMaintenanceMode toggles system availability.
func SetMaintenanceMode(on bool) {
	maintenanceMode.Store(on)
}

// MaintenanceMode reports whether the portal is in maintenance.
func MaintenanceMode() bool {
	return maintenanceMode.Load()
}

// MaintenanceGate rejects mutating requests from non-admin actors while
// maintenance mode is on. Reads stay available so the banner state and
// existing data remain visible.
func MaintenanceGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !maintenanceMode.Load() || r.Method == http.MethodGet || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if actor, ok := ActorFromContext(r.Context()); ok && actor.Role == models.RoleAdmin {
			next.ServeHTTP(w, r)
			return
		}

		utils.RespondWithError(w, http.StatusServiceUnavailable, "Portal is under maintenance, try again later")
	})
}
