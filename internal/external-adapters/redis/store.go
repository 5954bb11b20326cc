// Package redis keeps baselines in a Redis hash, one field per business operation.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ochairo/regguard/internal/domain/interfaces/gateways"
)

// DefaultKey is the hash holding every baseline
const DefaultKey = "regguard:baselines"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Provider opens a Redis connection per logical operation
type Provider struct {
	opts Options
}

// NewProvider validates options and creates a provider
func NewProvider(opts Options) (*Provider, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if opts.DB < 0 {
		return nil, fmt.Errorf("redis db must not be negative, got %d", opts.DB)
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	return &Provider{opts: opts}, nil
}

// Open connects and pings the server
func (p *Provider) Open(ctx context.Context) (gateways.BaselineStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     p.opts.Addr,
		Password: p.opts.Password,
		DB:       p.opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", p.opts.Addr, err)
	}
	return &store{client: client, key: p.opts.Key}, nil
}

type store struct {
	client *redis.Client
	key    string
}

func (s *store) Get(ctx context.Context, field string) (string, bool, error) {
	blob, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from %s: %w", field, s.key, err)
	}
	return blob, true, nil
}

func (s *store) Put(ctx context.Context, field, blob string) error {
	if err := s.client.HSet(ctx, s.key, field, blob).Err(); err != nil {
		return fmt.Errorf("failed to write %s to %s: %w", field, s.key, err)
	}
	return nil
}

func (s *store) Close() error {
	return s.client.Close()
}
