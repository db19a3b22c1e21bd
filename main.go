package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/config"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/database"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/handlers"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/middleware"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/routes"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/store"
	ws "github.com/NathanLuccaAcosvital/qualidade-sub001/websocket"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := database.DB()
	documentStore := store.NewDocumentStore(db)
	ticketStore := store.NewTicketStore(db)
	auditStore := store.NewAuditStore(db)
	userStore := store.NewUserStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := auditStore.EnsureIndexes(ctx); err != nil {
		log.Printf("Audit index creation warning: %v", err)
	}
	cancel()

	hub := ws.NewHub()
	go hub.Run()

	recorder := workflow.NewRecorder(auditStore)
	notifier := ws.NewRefreshNotifier(hub)
	orchestrator := workflow.NewOrchestrator(documentStore, ticketStore, recorder, notifier)

	handlers.Init(orchestrator, auditStore, userStore, documentStore, ticketStore)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, userStore, hub)

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CorsMiddleware)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Quality compliance portal backend running on http://localhost:%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect()
	log.Println("Server stopped gracefully")
}
