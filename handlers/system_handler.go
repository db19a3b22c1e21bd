// handlers/system_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/middleware"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
)

// GetSystemStatus exposes the maintenance flag the frontend banner reads.
func GetSystemStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"maintenance": middleware.MaintenanceMode(),
	})
}

// SetMaintenanceMode toggles portal availability. Admin only.
func SetMaintenanceMode(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if actor.Role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only administrators manage system availability")
		return
	}

	var req struct {
		Maintenance bool `json:"maintenance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	middleware.SetMaintenanceMode(req.Maintenance)
	log.Printf("Maintenance mode set to %v by %s", req.Maintenance, actor.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"maintenance": req.Maintenance,
	})
}
