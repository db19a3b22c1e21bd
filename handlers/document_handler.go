// handlers/document_handler.go
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

func documentIDFromRequest(r *http.Request) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idStr)
	return id, err == nil
}

// ListPendingDocuments returns documents awaiting review in the caller's scope.
func ListPendingDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docs, err := orchestrator.PendingDocuments(r.Context(), actor)
	if err != nil {
		log.Printf("ListPendingDocuments: %v", err)
		respondWorkflowError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

// ListRejectedDocuments returns contested documents in the caller's scope.
func ListRejectedDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docs, err := orchestrator.RejectedDocuments(r.Context(), actor)
	if err != nil {
		log.Printf("ListRejectedDocuments: %v", err)
		respondWorkflowError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

// GetDocument returns one document. Clients only see their own org's.
func GetDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docID, ok := documentIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, err := docStore.Get(r.Context(), docID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	if actor.Role == models.RoleClient && actor.OrganizationID != doc.OwnerOrgID {
		utils.RespondWithError(w, http.StatusForbidden, "Document belongs to another organization")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// SubmitClientFeedback runs the client review transition.
func SubmitClientFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docID, ok := documentIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	var req struct {
		Decision     models.DocumentStatus `json:"decision"`
		Observations string                `json:"observations,omitempty"`
		Flags        []string              `json:"flags,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	doc, err := orchestrator.SubmitClientFeedback(r.Context(), actor, docID, req.Decision, req.Observations, req.Flags)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	log.Printf("Client feedback %s on document %s by %s", req.Decision, docID.Hex(), actor.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"document": doc,
		"message":  "Review recorded",
	})
}

// SubmitTechnicalVerdict runs the quality inspection transition.
func SubmitTechnicalVerdict(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docID, ok := documentIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	var req struct {
		Decision        models.DocumentStatus `json:"decision"`
		RejectionReason string                `json:"rejectionReason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	doc, err := orchestrator.SubmitTechnicalVerdict(r.Context(), actor, docID, req.Decision, req.RejectionReason)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	log.Printf("Technical verdict %s on document %s by %s", req.Decision, docID.Hex(), actor.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"document": doc,
		"message":  "Verdict recorded",
	})
}

// RecordFirstView marks the first client view of an approved document.
// Repeated calls are a plain success.
func RecordFirstView(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docID, ok := documentIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, err := orchestrator.RecordFirstView(r.Context(), actor, docID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"document": doc,
	})
}

// CheckDeletePermission probes whether the caller may destroy the document
// or folder. Root folders always answer false.
func CheckDeletePermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	docID, ok := documentIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, err := docStore.Get(r.Context(), docID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"documentId": doc.ID.Hex(),
		"canDelete":  workflow.CanDelete(actor, doc),
	})
}
