package download

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrGrantNotFound = errors.New("download grant not found")

// Grant maps an issued token to the purchase behind it.
type Grant struct {
	Token   string `json:"-"`
	OrderID string `json:"orderId"`
	BookID  string `json:"bookId"`
}

// Store keeps grants for the lifetime of the link; expiry is enforced by the
// store's TTL, not by application code.
type Store interface {
	Save(ctx context.Context, g Grant, ttl time.Duration) error
	Find(ctx context.Context, token string) (Grant, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func grantKey(token string) string {
	return "download:" + token
}

func (s *RedisStore) Save(ctx context.Context, g Grant, ttl time.Duration) error {
	b, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, grantKey(g.Token), b, ttl).Err()
}

func (s *RedisStore) Find(ctx context.Context, token string) (Grant, error) {
	raw, err := s.client.Get(ctx, grantKey(token)).Result()
	if err == redis.Nil {
		return Grant{}, ErrGrantNotFound
	}
	if err != nil {
		return Grant{}, err
	}

	var g Grant
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return Grant{}, err
	}
	g.Token = token
	return g, nil
}
