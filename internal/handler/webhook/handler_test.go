package webhook

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/servicezone/concierge/internal/config"
	"github.com/servicezone/concierge/internal/model/catalog"
	convoservice "github.com/servicezone/concierge/internal/service/convo"
)

func setupRouter(t *testing.T) (*chi.Mux, *convoservice.Store) {
	t.Helper()

	services, err := catalog.New("services", catalog.SeedServices())
	if err != nil {
		t.Fatalf("service catalog err: %v", err)
	}
	slots, err := catalog.New("slots", catalog.SeedSlots())
	if err != nil {
		t.Fatalf("slot catalog err: %v", err)
	}

	store := convoservice.NewStore()
	flow := config.FlowConfig{HandoffCooldown: 30 * time.Second, FallbackTimeout: time.Second}
	expert := config.ExpertConfig{Name: "Mohammad", Phone: "+971505481357", WALink: "https://wa.me/971505481357"}
	controller := convoservice.NewController(store, services, slots, flow, expert, convoservice.Deps{})

	r := chi.NewRouter()
	New(controller).RegisterRoutes(r)
	return r, store
}

func postInbound(t *testing.T, r http.Handler, from, body string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", body)

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestInboundGreetingReturnsTwiML(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postInbound(t, r, "whatsapp:+971501234567", "hi")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	body := resp.Body.String()
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing XML declaration: %s", body)
	}
	if !strings.Contains(body, "<Response><Message>") {
		t.Fatalf("expected TwiML message element: %s", body)
	}
	if !strings.Contains(body, "Welcome to ServiceZone") {
		t.Fatalf("expected service menu: %s", body)
	}
}

func TestInboundPricingReturnsMultipleMessages(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postInbound(t, r, "whatsapp:+971501234567", "how much for villa painting?")
	body := resp.Body.String()
	if got := strings.Count(body, "<Message>"); got != 3 {
		t.Fatalf("expected 3 message elements, got %d: %s", got, body)
	}
}

func TestInboundWithoutSenderStillAnswers(t *testing.T) {
	r, store := setupRouter(t)

	resp := postInbound(t, r, "", "hello")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "<Message>") {
		t.Fatal("expected at least one message segment")
	}

	if _, ok := store.Get(convoservice.UnknownUserKey); !ok {
		t.Fatal("expected sentinel session for missing sender")
	}
}

func TestInboundAdvancesSession(t *testing.T) {
	r, store := setupRouter(t)

	postInbound(t, r, "whatsapp:+971501234567", "hi")
	postInbound(t, r, "whatsapp:+971501234567", "3")

	sess, ok := store.Get("+971501234567")
	if !ok {
		t.Fatal("expected session")
	}
	if sess.Service != "Villa painting service" {
		t.Fatalf("unexpected service: %s", sess.Service)
	}
}
