package webhook

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	convoservice "github.com/servicezone/concierge/internal/service/convo"
	"github.com/servicezone/concierge/pkg/twiml"
)

// Handler receives Twilio's inbound WhatsApp webhook and renders the
// controller's reply segments as TwiML.
type Handler struct {
	controller *convoservice.Controller
}

// New creates the webhook handler.
func New(controller *convoservice.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes mounts the webhook endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/whatsapp", h.handleInbound)
}

// handleInbound always answers 200 with a TwiML document: Twilio retries
// error responses, and a retry would replay the message into the session.
func (h *Handler) handleInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("[webhook] malformed form payload: %v", err)
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	deliveryID := uuid.NewString()

	segments := h.controller.Handle(r.Context(), from, body)

	doc, err := twiml.Render(segments)
	if err != nil {
		log.Printf("[webhook] delivery=%s twiml render failed: %v", deliveryID, err)
		doc, _ = twiml.Render([]string{"I didn't get that, type MENU to restart"})
	}

	log.Printf("[webhook] delivery=%s from=%s segments=%d", deliveryID, convoservice.NormalizeUserKey(from), len(segments))

	w.Header().Set("Content-Type", twiml.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("[webhook] delivery=%s write failed: %v", deliveryID, err)
	}
}
