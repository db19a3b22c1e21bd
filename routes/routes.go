// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/handlers"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/middleware"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/store"
	ws "github.com/NathanLuccaAcosvital/qualidade-sub001/websocket"
)

var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router, users *store.UserStore, hub *ws.Hub) {
	// Public
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/validate", handlers.ValidateToken).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/system/status", handlers.GetSystemStatus).Methods(MethodsGetOnly...)

	// Realtime refresh channel (token authenticated in the handler)
	r.HandleFunc("/ws", hub.ServeWS)

	// Protected API
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.Auth(users))
	apiRouter.Use(middleware.MaintenanceGate)

	// Documents
	apiRouter.HandleFunc("/documents/pending", handlers.ListPendingDocuments).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/documents/rejected", handlers.ListRejectedDocuments).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/documents/{id}", handlers.GetDocument).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/documents/{id}/feedback", handlers.SubmitClientFeedback).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/{id}/verdict", handlers.SubmitTechnicalVerdict).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/{id}/view", handlers.RecordFirstView).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/{id}/can-delete", handlers.CheckDeletePermission).Methods(MethodsGetOnly...)

	// Tickets
	apiRouter.HandleFunc("/tickets", handlers.ListTickets).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/tickets", handlers.CreateTicket).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/tickets/{id}", handlers.GetTicket).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/tickets/{id}/status", handlers.UpdateTicketStatus).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/tickets/{id}/escalate", handlers.EscalateTicket).Methods(MethodsPostOnly...)

	// Audit trail
	apiRouter.HandleFunc("/audit", handlers.ListAuditRecords).Methods(MethodsGetOnly...)

	// System availability (admin)
	apiRouter.HandleFunc("/system/maintenance", handlers.SetMaintenanceMode).Methods(MethodsPutOnly...)
}
