package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server ServerConfig
	Flow   FlowConfig
	Expert ExpertConfig
	AI     AIConfig
	Notify NotifyConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	flow, err := loadFlowConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Flow:   flow,
		Expert: loadExpertConfig(),
		AI:     ai,
		Notify: loadNotifyConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// FlowConfig tunes the conversation controller.
type FlowConfig struct {
	HandoffCooldown   time.Duration
	FallbackTimeout   time.Duration
	RescheduleEnabled bool
}

func loadFlowConfig() (FlowConfig, error) {
	cooldown := 30 * time.Second
	if override, err := parseOptionalIntEnv("HANDOFF_COOLDOWN_SECONDS"); err != nil {
		return FlowConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return FlowConfig{}, fmt.Errorf("HANDOFF_COOLDOWN_SECONDS must not be negative, got %d", *override)
		}
		cooldown = time.Duration(*override) * time.Second
	}

	timeout := 8 * time.Second
	if override, err := parseOptionalIntEnv("FALLBACK_TIMEOUT_SECONDS"); err != nil {
		return FlowConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return FlowConfig{}, fmt.Errorf("FALLBACK_TIMEOUT_SECONDS must be at least 1, got %d", *override)
		}
		timeout = time.Duration(*override) * time.Second
	}

	reschedule, err := parseBoolEnv("FLOW_RESCHEDULE_ENABLED", false)
	if err != nil {
		return FlowConfig{}, err
	}

	return FlowConfig{
		HandoffCooldown:   cooldown,
		FallbackTimeout:   timeout,
		RescheduleEnabled: reschedule,
	}, nil
}

// ExpertConfig identifies the human expert users are handed off to.
type ExpertConfig struct {
	Name   string
	Phone  string
	WALink string
}

func loadExpertConfig() ExpertConfig {
	return ExpertConfig{
		Name:   getEnvOrDefault("EXPERT_NAME", "Mohammad"),
		Phone:  getEnvOrDefault("EXPERT_PHONE", "+971505481357"),
		WALink: getEnvOrDefault("EXPERT_WA_LINK", "https://wa.me/971505481357"),
	}
}

// AIConfig configures the Ark model behind the fallback answerer.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: set ARK_API_KEY (or AK/SK) and ARK_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// NotifyConfig configures the Twilio REST call that pings the admin when a
// user is handed off to the expert.
type NotifyConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// Enabled reports whether all Twilio credentials are present.
func (c NotifyConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != "" && c.To != ""
}

func loadNotifyConfig() NotifyConfig {
	return NotifyConfig{
		AccountSID: strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")),
		AuthToken:  strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
		From:       strings.TrimSpace(os.Getenv("TWILIO_WHATSAPP_FROM")),
		To:         strings.TrimSpace(os.Getenv("ADMIN_WHATSAPP_TO")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
