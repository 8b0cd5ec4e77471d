package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/uripeled2/classroom-participation-app/internal/room"
	"github.com/uripeled2/classroom-participation-app/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Registry       *room.Registry
	WSHandler      *ws.Handler
	AllowedOrigins string
}

// NewRouter creates the HTTP router. The protocol itself is carried over
// the WebSocket endpoint; the REST surface is limited to a health check
// and room helpers for the join/create pages.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	r.Use(corsMiddleware(c.AllowedOrigins))

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/ws", c.WSHandler.Serve).Methods("GET")
	v1.HandleFunc("/rooms/code", newRoomCode(c.Registry)).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}", probeRoom(c.Registry)).Methods("GET", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

// probeRoom lets the join page verify a code before opening the socket.
func probeRoom(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		rm, err := registry.Get(code)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"roomCode": rm.Code(),
			"students": rm.StudentCount(),
		})
	}
}

// newRoomCode hands the create page a code that is not currently live.
func newRoomCode(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := registry.GenerateCode()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not generate code"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"roomCode": code})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
