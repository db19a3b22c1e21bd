// handlers/audit_handler.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/middleware"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/store"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
)

// ListAuditRecords returns the audit trail, newest first. Quality and
// admin staff see every organization; clients see their own org's DATA
// trail only. Records are never mutated or deleted through any endpoint.
func ListAuditRecords(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := store.AuditFilter{}
	query := r.URL.Query()

	if actor.Role == models.RoleClient {
		filter.OrgID = actor.OrganizationID
	} else if orgStr := query.Get("orgId"); orgStr != "" {
		if orgID, err := primitive.ObjectIDFromHex(orgStr); err == nil {
			filter.OrgID = orgID
		}
	}

	if entityType := query.Get("entityType"); entityType != "" && entityType != "all" {
		filter.EntityType = entityType
	}
	if entityStr := query.Get("entityId"); entityStr != "" {
		if entityID, err := primitive.ObjectIDFromHex(entityStr); err == nil {
			filter.EntityID = entityID
		}
	}
	if outcome := query.Get("outcome"); outcome != "" && outcome != "all" {
		filter.Outcome = models.AuditOutcome(outcome)
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if skipStr := query.Get("skip"); skipStr != "" {
		if skip, err := strconv.ParseInt(skipStr, 10, 64); err == nil && skip >= 0 {
			filter.Skip = skip
		}
	}

	records, err := auditStore.List(r.Context(), filter)
	if err != nil {
		log.Printf("ListAuditRecords: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch audit records")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
