package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"alznews/internal/news"
)

// KV is the durable tier behind the in-memory store. Articles live in a
// single hash keyed by normalized URL so a full reload is one round trip and
// replayed writes for the same article land on the same field.
type KV interface {
	GetAll(ctx context.Context) ([]news.Article, error)
	SetMany(ctx context.Context, articles []news.Article) error
	Clear(ctx context.Context) error
}

const articlesHashKey = "articles"

type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStore connects to Redis. A failed ping is logged but not fatal;
// the process can serve from memory and snapshots until Redis returns.
func NewRedisStore(addr, password string, db int, log *slog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, durable tier degraded", "addr", addr, "error", err)
	}

	return &RedisStore{client: client, log: log}
}

func (r *RedisStore) GetAll(ctx context.Context) ([]news.Article, error) {
	fields, err := r.client.HGetAll(ctx, articlesHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	articles := make([]news.Article, 0, len(fields))
	for key, raw := range fields {
		var a news.Article
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			r.log.Warn("skipping corrupt article record", "key", key, "error", err)
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (r *RedisStore) SetMany(ctx context.Context, articles []news.Article) error {
	if len(articles) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(articles))
	for _, a := range articles {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal article %s: %w", a.ID, err)
		}
		fields[news.NormalizeURL(a.URL)] = raw
	}

	if err := r.client.HSet(ctx, articlesHashKey, fields).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, articlesHashKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
