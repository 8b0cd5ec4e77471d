package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uripeled2/classroom-participation-app/internal/config"
	"github.com/uripeled2/classroom-participation-app/internal/room"
	"github.com/uripeled2/classroom-participation-app/internal/service"
	"github.com/uripeled2/classroom-participation-app/internal/transport/rest"
	"github.com/uripeled2/classroom-participation-app/internal/transport/ws"
)

// @title Classroom Participation API
// @version 1.0
// @description Live raise-hand / question-answer rooms over WebSocket
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	registry := room.NewRegistry()
	tokens := service.NewTokenService(cfg.Session.TokenSecret)

	hub := ws.NewHub()
	svc := service.NewClassroomService(registry, tokens, cfg.Session.DefaultTimerSeconds)
	svc.SetSender(hub)

	wsHandler := ws.NewHandler(hub, svc)

	router := rest.NewRouter(&rest.Container{
		Registry:       registry,
		WSHandler:      wsHandler,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		log.Println("Endpoints:")
		log.Println("  GET  /health")
		log.Println("  POST /v1/rooms/code")
		log.Println("  GET  /v1/rooms/{code}")
		log.Println("  WS   /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
