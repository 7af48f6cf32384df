package analyzer

import (
	"context"
	"sync"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
)

// ClientCache holds one provider client per credential so repeated analysis
// calls reuse the underlying connection. Invalidation is an explicit call
// made when the stored credential changes, not an ambient event subscription.
type ClientCache struct {
	mu         sync.Mutex
	credential string
	client     llm.Client

	// newClient is swappable for tests.
	newClient func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)
}

// NewClientCache creates an empty cache.
func NewClientCache() *ClientCache {
	return &ClientCache{newClient: llm.NewClient}
}

// Get returns the cached client for the credential, creating one on first
// use or when the credential differs from the cached one.
func (c *ClientCache) Get(ctx context.Context, config *llm.Config, credential string) (llm.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.credential == credential {
		return c.client, nil
	}

	if c.client != nil {
		_ = c.client.Close()
		c.client = nil
	}

	client, err := c.newClient(ctx, config, credential)
	if err != nil {
		return nil, err
	}
	c.client = client
	c.credential = credential
	return client, nil
}

// Invalidate drops the cached client. Call after the stored credential is
// changed or removed.
func (c *ClientCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		_ = c.client.Close()
		c.client = nil
	}
	c.credential = ""
}
