package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uripeled2/classroom-participation-app/internal/room"
	"github.com/uripeled2/classroom-participation-app/internal/service"
	"github.com/uripeled2/classroom-participation-app/internal/transport/ws"
)

func newTestRouter(t *testing.T) (http.Handler, *room.Registry) {
	t.Helper()
	registry := room.NewRegistry()
	hub := ws.NewHub()
	svc := service.NewClassroomService(registry, service.NewTokenService("test-secret"), 10)
	svc.SetSender(hub)

	router := NewRouter(&Container{
		Registry:       registry,
		WSHandler:      ws.NewHandler(hub, svc),
		AllowedOrigins: "*",
	})
	return router, registry
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProbeRoom(t *testing.T) {
	router, registry := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/rooms/AB12", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("probe of unknown room = %d, want 404", rec.Code)
	}

	rm, err := registry.Create("AB12", "conn-t", "Ms. X")
	if err != nil {
		t.Fatal(err)
	}
	rm.Join("s1", "c1", "Sam")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/rooms/AB12", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("probe = %d, want 200", rec.Code)
	}

	var body struct {
		RoomCode string `json:"roomCode"`
		Students int    `json:"students"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RoomCode != "AB12" || body.Students != 1 {
		t.Errorf("body = %+v", body)
	}
}

func TestNewRoomCode(t *testing.T) {
	router, registry := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/rooms/code", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.RoomCode) != 6 {
		t.Errorf("roomCode = %q, want 6 chars", body.RoomCode)
	}
	if _, err := registry.Get(body.RoomCode); err != room.ErrRoomNotFound {
		t.Error("generated code must not be live yet")
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/v1/rooms/AB12", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
