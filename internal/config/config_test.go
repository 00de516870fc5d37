package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		ConfigFile, UserServiceURL, NewsAPIURL, EngagementURL, Timeout, FallbackDelay,
		EngagementTransportEnv, RabbitURIEnv, RabbitExchangeEnv, RabbitRoutingKeyEnv,
		HTTPAddr, SessionTTL, LogFile, ListLimit,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsreader.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Second, cfg.FallbackDelay)
	assert.Equal(t, "http://localhost:8081/engagement", cfg.Engagement())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(UserServiceURL, "https://users.example.com/")
	t.Setenv(NewsAPIURL, "https://news.example.com/news")
	t.Setenv(Timeout, "2s")
	t.Setenv(FallbackDelay, "500ms")
	t.Setenv(EngagementTransportEnv, "AMQP")
	t.Setenv(ListLimit, "5")
	t.Setenv(SessionTTL, "10m")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com/news", cfg.NewsAPIURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.FallbackDelay)
	assert.Equal(t, TransportAMQP, cfg.EngagementTransport)
	assert.Equal(t, 5, cfg.ListLimit)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "https://users.example.com/engagement", cfg.Engagement())
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		Timeout:                "ten seconds",
		FallbackDelay:          "soon",
		ListLimit:              "many",
		SessionTTL:             "forever",
		EngagementTransportEnv: "carrier-pigeon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
user_service_url: https://users.internal
engagement_url: https://events.internal/engagement
http_timeout: 4s
recommendation_fallback_delay: 1s
rabbit_exchange: reader.events
http_addr: ":9090"
`)
	t.Setenv(ConfigFile, path)
	t.Setenv(HTTPAddr, ":7070")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://users.internal", cfg.UserServiceURL)
	assert.Equal(t, "https://events.internal/engagement", cfg.Engagement())
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.FallbackDelay)
	assert.Equal(t, "reader.events", cfg.RabbitExchange)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8082/news", cfg.NewsAPIURL)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = Load(writeFile(t, "http_timeout: [1, 2"))
	assert.ErrorContains(t, err, "parse config file")

	_, err = Load(writeFile(t, "engagement_transport: smtp\n"))
	assert.ErrorIs(t, err, ErrUnknownTransport)
}
