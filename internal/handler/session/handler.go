package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	convoservice "github.com/servicezone/concierge/internal/service/convo"
	"github.com/servicezone/concierge/pkg/utils"
)

// Handler exposes session inspection and reset endpoints for operators.
type Handler struct {
	store *convoservice.Store
}

// New creates the session admin handler.
func New(store *convoservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleList)
	r.Get("/sessions/{userKey}", h.handleGet)
	r.Delete("/sessions/{userKey}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	userKey := chi.URLParam(r, "userKey")
	sess, ok := h.store.Get(userKey)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userKey := chi.URLParam(r, "userKey")
	if !h.store.Delete(userKey) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
