package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	DB        string `json:"db"`
}

type HealthHandler struct {
	db      Pinger
	service string
	version string
}

func NewHealthHandler(db Pinger, service, version string) *HealthHandler {
	return &HealthHandler{db: db, service: service, version: version}
}

// Health handles GET /health. It answers 200 while the process is up and
// reports database reachability in the body.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   h.service,
		Version:   h.version,
		DB:        "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.db == nil || h.db.Ping(ctx) != nil {
		status.DB = "disconnected"
	}

	response.Success(w, status)
}
