package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/servicezone/concierge/internal/config"
)

// Service delivers best-effort WhatsApp notifications to the administrator
// through the Twilio Messages API. Failures are logged and swallowed; the
// user-facing reply path never waits on or learns about them.
type Service struct {
	cfg     config.NotifyConfig
	client  *http.Client
	baseURL string
}

// NewService builds the notifier. Callers should skip construction when
// cfg.Enabled() is false.
func NewService(cfg config.NotifyConfig) *Service {
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.twilio.com",
	}
}

// Notify sends one message about userKey to the configured admin number.
func (s *Service) Notify(ctx context.Context, userKey, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.cfg.AccountSID)

	form := url.Values{}
	form.Set("From", whatsappAddr(s.cfg.From))
	form.Set("To", whatsappAddr(s.cfg.To))
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio rejected notification: status=%d body=%s", resp.StatusCode, detail)
	}

	log.Printf("[notify] admin notified about %s", userKey)
	return nil
}

// whatsappAddr ensures the Twilio channel prefix is present exactly once.
func whatsappAddr(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
