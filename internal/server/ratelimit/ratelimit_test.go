package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit, burst int, window time.Duration) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: window,
		EndpointConfigs: []EndpointConfig{
			{Path: "/score", Method: "POST", Limit: limit, Window: window, Burst: burst},
		},
	}
}

func TestAllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(testConfig(10, 3, time.Hour))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/score", "POST")
		assert.True(t, allowed, "request %d should be allowed", i)
	}
	allowed, info := limiter.Allow("1.2.3.4", "/score", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Positive(t, info.RetryAfter)
}

func TestClientsIsolated(t *testing.T) {
	limiter := NewLimiter(testConfig(10, 1, time.Hour))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/score", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/score", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2", "/score", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestTokensRefill(t *testing.T) {
	// 50 tokens/sec so the bucket refills within the test
	limiter := NewLimiter(testConfig(50, 1, time.Second))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/score", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/score", "POST")
	require.False(t, allowed)

	time.Sleep(50 * time.Millisecond)
	allowed, _ = limiter.Allow("1.2.3.4", "/score", "POST")
	assert.True(t, allowed)
}

func TestHealthUnlimited(t *testing.T) {
	limiter := NewLimiter(testConfig(1, 1, time.Hour))
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestDisabledAllowsEverything(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/score", "POST")
		require.True(t, allowed)
	}
}

func TestTrustedClientBypasses(t *testing.T) {
	cfg := testConfig(1, 1, time.Hour)
	cfg.Trusted = map[string]bool{"10.0.0.1": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/score", "POST")
		require.True(t, allowed)
	}
}

func TestDefaultLimitForUnmatchedEndpoint(t *testing.T) {
	cfg := testConfig(100, 100, time.Hour)
	cfg.DefaultLimit = 2
	cfg.DefaultWindow = time.Hour
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/models", "GET")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.2.3.4", "/models", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/score", Method: "POST", Limit: 30},
		{Path: "/score/", Method: "POST", Limit: 30},
		{Path: "/settings/", Method: "PUT", Limit: 60},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{"/score", "POST", 30, false},
		{"/score/text", "POST", 30, false},
		{"/settings/credential", "PUT", 60, false},
		{"/settings/credential", "GET", 0, true},
		{"/health", "GET", 0, false},
		{"/models", "GET", 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}
