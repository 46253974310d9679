package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/rewind/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the library.
const DefaultPrefix = "rewind:"

// Library implements ports.WritableLibrary using a Redis hash
// (<prefix>library) whose fields are source descriptors.
type Library struct {
	client *backend.Client
	prefix string
}

type Option func(*Library)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(l *Library) {
		l.prefix = prefix
	}
}

// New creates a new Redis library with options.
func New(address, password string, db int, opts ...Option) *Library {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis library from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Library {
	l := &Library{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) key() string {
	return l.prefix + "library"
}

// Lookup retrieves the text stored under source.
func (l *Library) Lookup(ctx context.Context, source string) (string, error) {
	text, err := l.client.HGet(ctx, l.key(), source).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrSourceNotFound
		}
		return "", fmt.Errorf("failed to get from redis: %w", err)
	}
	return text, nil
}

// Put stores text under source.
func (l *Library) Put(ctx context.Context, source, text string) error {
	if err := l.client.HSet(ctx, l.key(), source, text).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Sources returns every source, sorted.
func (l *Library) Sources(ctx context.Context) ([]string, error) {
	sources, err := l.client.HKeys(ctx, l.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	sort.Strings(sources)
	return sources, nil
}

// Ping checks connectivity.
func (l *Library) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (l *Library) Close() error {
	return l.client.Close()
}
