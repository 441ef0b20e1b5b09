// Package server provides HTTP server initialization and lifecycle
// management for the Hoofprint dashboard API.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/mariselli/hoofprint/internal/brain"
	"github.com/mariselli/hoofprint/internal/config"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/mailer"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Deps carries the assembled application components the server exposes.
type Deps struct {
	Repo   *crm.Repository
	Memory *memory.Store
	Brain  *brain.Brain
	Mailer *mailer.Mailer
	Hub    *handlers.WebSocketHub
}

// Start initializes and starts the HTTP server. Returns the actual address
// being listened on (useful for testing with port 0). Shutdown is driven by
// ctx cancellation.
func Start(ctx context.Context, cfg *config.Config, deps Deps) (string, error) {
	mux := http.NewServeMux()

	wsHub := deps.Hub
	if wsHub == nil {
		wsHub = handlers.NewWebSocketHub(cfg.Server.Port)
	}
	go wsHub.Run()

	// 10 req/sec sustained, burst of 20
	rateLimiter := handlers.NewRateLimiter(10.0, 20)

	leadHandlers := handlers.NewLeadHandlers(deps.Repo)
	contactHandlers := handlers.NewContactHandlers(deps.Repo, deps.Memory)
	eventHandlers := handlers.NewEventHandlers(deps.Repo)
	missionHandlers := handlers.NewMissionHandlers(deps.Brain, deps.Repo, deps.Memory, deps.Mailer, cfg.Pipeline.MissionReminders)
	chatHandlers := handlers.NewChatHandlers(deps.Brain)
	memoryHandlers := handlers.NewMemoryHandlers(deps.Memory)

	apiMux := http.NewServeMux()

	// Discovery log
	apiMux.HandleFunc("/api/leads", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			leadHandlers.ListLeads(w, r)
		case http.MethodPost:
			leadHandlers.CreateLead(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/leads/inbox", leadHandlers.GetInbox)
	apiMux.HandleFunc("POST /api/leads/status", leadHandlers.BulkStatus)
	apiMux.HandleFunc("GET /api/leads/{id}", leadHandlers.GetLead)
	apiMux.HandleFunc("POST /api/leads/{id}/promote", leadHandlers.PromoteLead)
	apiMux.HandleFunc("POST /api/leads/{id}/reminders", leadHandlers.AddReminder)
	apiMux.HandleFunc("POST /api/leads/{id}/reminders/{rid}/toggle", leadHandlers.ToggleReminder)
	apiMux.HandleFunc("DELETE /api/leads/{id}/reminders/{rid}", leadHandlers.DeleteReminder)

	// CRM contacts
	apiMux.HandleFunc("/api/contacts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			contactHandlers.ListContacts(w, r)
		case http.MethodPost:
			contactHandlers.CreateContact(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("GET /api/contacts/export", contactHandlers.ExportCSV)
	apiMux.HandleFunc("GET /api/contacts/{id}", contactHandlers.GetContact)
	apiMux.HandleFunc("PUT /api/contacts/{id}", contactHandlers.UpdateContact)
	apiMux.HandleFunc("GET /api/contacts/{id}/safety", contactHandlers.GetSafety)
	apiMux.HandleFunc("GET /api/contacts/{id}/memory", contactHandlers.GetTimeline)
	apiMux.HandleFunc("GET /api/contacts/{id}/context", contactHandlers.GetContext)
	apiMux.HandleFunc("POST /api/contacts/{id}/reminders", contactHandlers.AddReminder)
	apiMux.HandleFunc("PUT /api/contacts/{id}/reminders/{rid}", contactHandlers.UpdateReminder)
	apiMux.HandleFunc("POST /api/contacts/{id}/reminders/{rid}/toggle", contactHandlers.ToggleReminder)
	apiMux.HandleFunc("DELETE /api/contacts/{id}/reminders/{rid}", contactHandlers.DeleteReminder)

	// Market events
	apiMux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			eventHandlers.ListEvents(w, r)
		case http.MethodPost:
			eventHandlers.CreateEvent(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("GET /api/events/{id}", eventHandlers.GetEvent)
	apiMux.HandleFunc("PUT /api/events/{id}", eventHandlers.UpdateEvent)
	apiMux.HandleFunc("POST /api/events/{id}/promote", eventHandlers.PromoteOrganizer)
	apiMux.HandleFunc("POST /api/events/{id}/reminders", eventHandlers.AddReminder)
	apiMux.HandleFunc("POST /api/events/{id}/reminders/{rid}/toggle", eventHandlers.ToggleReminder)
	apiMux.HandleFunc("DELETE /api/events/{id}/reminders/{rid}", eventHandlers.DeleteReminder)

	// Daily missions and outreach
	apiMux.HandleFunc("GET /api/missions", missionHandlers.GetDaily)
	apiMux.HandleFunc("POST /api/missions/recalibrate", missionHandlers.Recalibrate)
	apiMux.HandleFunc("POST /api/missions/promote", missionHandlers.Promote)
	apiMux.HandleFunc("POST /api/missions/outreach", missionHandlers.Draft)
	apiMux.HandleFunc("POST /api/missions/outreach/send", missionHandlers.Send)

	// Assistant
	apiMux.HandleFunc("POST /api/chat", chatHandlers.Chat)

	// Memory feed
	apiMux.HandleFunc("/api/memory", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			memoryHandlers.ListRecent(w, r)
		case http.MethodPost:
			memoryHandlers.Append(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("GET /api/memory/{entity}", memoryHandlers.ListForEntity)
	apiMux.HandleFunc("GET /api/memory/{entity}/context", memoryHandlers.GetContext)

	// Health endpoint - no auth required, used by monitoring
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
	})

	// Wrap API routes with auth middleware
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoint (no auth required - origin validation handles security)
	mux.Handle("/ws", wsHub)

	// Wrap entire server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		wsHub.Stop()
	}()

	return actualAddr, nil
}
