package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const quotePrefix = "quote:"

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	client.client = redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if _, err := client.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteQuote сохраняет снапшот котировки с TTL: по истечении срока
// котировка недействительна и молча исчезает
func (c *Client) WriteQuote(ctx context.Context, quoteID string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, quotePrefix+quoteID, payload, ttl).Err()
}

// ReadQuote возвращает снапшот котировки; redis.Nil если истекла или не было
func (c *Client) ReadQuote(ctx context.Context, quoteID string) ([]byte, error) {
	return c.client.Get(ctx, quotePrefix+quoteID).Bytes()
}
