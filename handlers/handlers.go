// handlers/handlers.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/store"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/workflow"
)

var (
	orchestrator *workflow.Orchestrator
	auditStore   *store.AuditStore
	userStore    *store.UserStore
	docStore     *store.DocumentStore
	ticketStore  *store.TicketStore
)

// Init wires the handlers to the workflow orchestrator and stores.
// Called once from main after the database connection is up.
func Init(o *workflow.Orchestrator, audits *store.AuditStore, users *store.UserStore, docs *store.DocumentStore, tickets *store.TicketStore) {
	orchestrator = o
	auditStore = audits
	userStore = users
	docStore = docs
	ticketStore = tickets
}

// respondWorkflowError maps the workflow error taxonomy onto HTTP codes.
// Business failures carry their human-readable reason; infrastructure
// failures render generically without leaking internals.
func respondWorkflowError(w http.ResponseWriter, err error) {
	var forbidden *workflow.ForbiddenError
	var validation *workflow.ValidationError
	var transition *workflow.InvalidTransitionError
	var infra *workflow.InfrastructureError

	switch {
	case errors.Is(err, workflow.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.As(err, &forbidden):
		utils.RespondWithError(w, http.StatusForbidden, forbidden.Error())
	case errors.As(err, &validation):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, validation.Error())
	case errors.As(err, &transition):
		utils.RespondWithError(w, http.StatusConflict, transition.Error())
	case errors.As(err, &infra):
		utils.RespondWithError(w, http.StatusBadGateway, infra.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
