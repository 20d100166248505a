package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"yandexsmarthome/internal/protocol"
)

// Devices builds the protocol objects served by the API
type Devices interface {
	Describe(entityIDs []string) []protocol.DeviceDescription
	Query(entityIDs []string) protocol.DeviceStates
	Execute(ctx context.Context, devices []protocol.ActionRequestDevice) protocol.ActionResultDevices
}

// EntityLister lists the entity ids currently known
type EntityLister interface {
	EntityIDs() []string
}

// Server provides the local diagnostics HTTP API
type Server struct {
	devices  Devices
	entities EntityLister
	logger   *zap.Logger
	router   chi.Router
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(devices Devices, entities EntityLister, logger *zap.Logger, port int) *Server {
	s := &Server{
		devices:  devices,
		entities: entities,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleSitemap)
	r.Get("/health", s.handleHealth)
	s.RegisterRoutes(r)
	s.router = r

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// RegisterRoutes mounts the device endpoints on r
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/devices", s.handleListDevices)
	r.Get("/api/devices/{entity_id}", s.handleGetDevice)
	r.Post("/api/devices/{entity_id}/action", s.handleAction)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// DeviceResponse is the body of the single device endpoint
type DeviceResponse struct {
	Description *protocol.DeviceDescription `json:"description,omitempty"`
	State       protocol.DeviceState        `json:"state"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleListDevices returns the description of every supported entity
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.devices.Describe(s.entities.EntityIDs())
	writeJSON(w, http.StatusOK, protocol.DeviceList{Devices: devices})

	s.logger.Debug("Device list served",
		zap.Int("devices", len(devices)),
		zap.String("remote_addr", r.RemoteAddr))
}

// handleGetDevice returns the description and current state of one entity
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entity_id")
	ids := []string{id}

	resp := DeviceResponse{State: s.devices.Query(ids).Devices[0]}
	if resp.State.ErrorCode == protocol.ResponseCodeDeviceNotFound {
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	if desc := s.devices.Describe(ids); len(desc) > 0 {
		resp.Description = &desc[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAction executes the capability actions in the request body
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req protocol.ActionRequestDevice
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.ID = chi.URLParam(r, "entity_id")

	result := s.devices.Execute(r.Context(), []protocol.ActionRequestDevice{req}).Devices[0]
	status := http.StatusOK
	if result.ActionResult != nil && result.ActionResult.ErrorCode == protocol.ResponseCodeDeviceNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, result)

	s.logger.Info("Action request served",
		zap.String("entity_id", req.ID),
		zap.Int("actions", len(req.Capabilities)),
		zap.String("remote_addr", r.RemoteAddr))
}

// handleHealth returns a simple health check response
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Endpoint represents an API endpoint with its documentation
type Endpoint struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

var endpoints = []Endpoint{
	{Path: "/", Method: http.MethodGet, Description: "This sitemap"},
	{Path: "/health", Method: http.MethodGet, Description: "Health check, returns {\"status\": \"ok\"}"},
	{Path: "/api/devices", Method: http.MethodGet, Description: "Descriptions of every supported entity"},
	{Path: "/api/devices/{entity_id}", Method: http.MethodGet, Description: "Description and current state of one entity"},
	{Path: "/api/devices/{entity_id}/action", Method: http.MethodPost, Description: "Run capability actions, body is an action request device"},
}

// handleSitemap lists the available endpoints with a 404 status
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Accept") == "application/json" {
		writeJSON(w, http.StatusNotFound, endpoints)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "Smart Home Adapter API\n")
	fmt.Fprintf(w, "======================\n\n")
	for _, ep := range endpoints {
		fmt.Fprintf(w, "  %-6s %-34s %s\n", ep.Method, ep.Path, ep.Description)
	}
	fmt.Fprintf(w, "\nExample:\n\n")
	fmt.Fprintf(w, "  curl -X POST http://localhost:8081/api/devices/light.kitchen/action \\\n")
	fmt.Fprintf(w, "    -d '{\"capabilities\":[{\"type\":\"devices.capabilities.on_off\",\"state\":{\"instance\":\"on\",\"value\":true}}]}'\n")
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP API server", zap.String("addr", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping HTTP API server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
