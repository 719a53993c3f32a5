package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/dashboard"
	"staffhub/internal/transport/http/api"
	"staffhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.handleStats)
		r.Get("/activity", h.handleActivity)
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Stats(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Activity(r.Context()), middleware.GetRequestID(r.Context()))
}
