package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/servicezone/concierge/internal/config"
)

func testConfig() config.NotifyConfig {
	return config.NotifyConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		From:       "+14155238886",
		To:         "whatsapp:+971505481357",
	}
}

func TestNotifySendsTwilioForm(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody, gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.baseURL = server.URL

	if err := svc.Notify(context.Background(), "+97150", "handoff requested"); err != nil {
		t.Fatalf("Notify err: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotUser != "AC123" {
		t.Fatalf("unexpected basic auth user: %s", gotUser)
	}
	if gotFrom != "whatsapp:+14155238886" {
		t.Fatalf("unexpected From: %s", gotFrom)
	}
	if gotTo != "whatsapp:+971505481357" {
		t.Fatalf("prefix must not be doubled: %s", gotTo)
	}
	if gotBody != "handoff requested" {
		t.Fatalf("unexpected Body: %s", gotBody)
	}
}

func TestNotifyReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid number"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.baseURL = server.URL

	if err := svc.Notify(context.Background(), "+97150", "x"); err == nil {
		t.Fatal("expected error for rejected notification")
	}
}
