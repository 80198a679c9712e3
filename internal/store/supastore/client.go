// Package supastore implements the store contract against a Supabase
// project through the PostgREST API.
package supastore

import (
	"context"
	"fmt"

	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

// Client wraps the Supabase SDK behind the store.Store interface.
type Client struct {
	client *supabase.Client
}

var _ store.Store = (*Client)(nil)

// New instantiates the PostgREST-backed store.
func New(url, serviceKey string) (*Client, error) {
	if url == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase credentials missing: url or service key not set")
	}

	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{client: client}, nil
}

// Ping verifies the PostgREST connection with a lightweight one-row fetch.
func (c *Client) Ping(ctx context.Context) error {
	_ = ctx
	if c == nil || c.client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, err := c.client.From("categories").Select("id", "", false).Limit(1, "").ExecuteTo(&[]domain.Category{})
	return err
}

// Close is a no-op; PostgREST is stateless HTTP.
func (c *Client) Close() error { return nil }

// Categories returns the typed repository for category rows.
func (c *Client) Categories() store.CategoryRepository {
	return &categoryRepository{client: c.client}
}

// Prompts returns the typed repository for prompt rows.
func (c *Client) Prompts() store.PromptRepository {
	return &promptRepository{client: c.client}
}

// Skills returns the typed repository for skill rows.
func (c *Client) Skills() store.SkillRepository {
	return &skillRepository{client: c.client}
}

// Tags returns the typed repository for managed tag rows.
func (c *Client) Tags() store.TagRepository {
	return &tagRepository{client: c.client}
}

// Versions returns the typed repository for prompt version rows.
func (c *Client) Versions() store.VersionRepository {
	return &versionRepository{client: c.client}
}
