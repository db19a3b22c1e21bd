// handlers/ticket_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/middleware"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/utils"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/workflow"
)

func ticketIDFromRequest(r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idStr)
	return id, err == nil
}

// ListTickets returns tickets visible to the caller. Staff can narrow by
// status and flow through query parameters.
func ListTickets(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := workflow.TicketFilter{}
	query := r.URL.Query()
	if status := query.Get("status"); status != "" && status != "all" {
		filter.Status = models.TicketStatus(status)
	}
	if flow := query.Get("flow"); flow != "" && flow != "all" {
		filter.Flow = models.TicketFlow(flow)
	}
	if orgStr := query.Get("orgId"); orgStr != "" {
		if orgID, err := primitive.ObjectIDFromHex(orgStr); err == nil {
			filter.OrgID = orgID
		}
	}

	tickets, err := orchestrator.Tickets(r.Context(), actor, filter)
	if err != nil {
		log.Printf("ListTickets: %v", err)
		respondWorkflowError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// CreateTicket opens a new support ticket on behalf of the caller.
func CreateTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Subject     string                `json:"subject"`
		Description string                `json:"description"`
		Priority    models.TicketPriority `json:"priority,omitempty"`
		Flow        models.TicketFlow     `json:"flow,omitempty"`
		DocumentID  string                `json:"documentId,omitempty"`
		ClientName  string                `json:"clientName,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	input := workflow.TicketInput{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
		Flow:        req.Flow,
		ClientName:  req.ClientName,
	}
	if req.DocumentID != "" {
		docID, err := primitive.ObjectIDFromHex(req.DocumentID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
			return
		}
		input.DocumentID = &docID
	}

	ticket, err := orchestrator.CreateTicket(r.Context(), actor, input)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	log.Printf("Ticket %s created by %s (%s)", ticket.ID.Hex(), actor.Name, actor.Role)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ticket":  ticket,
		"message": "Ticket created",
	})
}

// GetTicket returns one ticket. Clients only see their own org's tickets.
func GetTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticketID, ok := ticketIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	ticket, err := ticketStore.Get(r.Context(), ticketID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	if actor.Role == models.RoleClient && actor.OrganizationID != ticket.OrgID {
		utils.RespondWithError(w, http.StatusForbidden, "Ticket belongs to another organization")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// UpdateTicketStatus moves a ticket along its lifecycle. Resolving
// requires a non-empty resolution note.
func UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticketID, ok := ticketIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var req struct {
		Status         models.TicketStatus `json:"status"`
		ResolutionNote string              `json:"resolutionNote,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	ticket, err := orchestrator.UpdateTicketStatus(r.Context(), actor, ticketID, req.Status, req.ResolutionNote)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	log.Printf("Ticket %s moved to %s by %s", ticketID.Hex(), req.Status, actor.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ticket":  ticket,
		"message": "Ticket updated",
	})
}

// EscalateTicket raises a client-quality ticket to administration.
func EscalateTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticketID, ok := ticketIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	ticket, err := orchestrator.EscalateTicket(r.Context(), actor, ticketID, req.Reason)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	log.Printf("Ticket %s escalated to administration by %s", ticketID.Hex(), actor.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ticket":  ticket,
		"message": "Ticket escalated",
	})
}
