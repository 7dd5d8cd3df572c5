// Package notify keeps short-lived user notifications ("toasts") between a
// request that produces them and the page render that shows them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Error(msg string) Notification   { return Notification{Level: LevelError, Message: msg} }

// Store holds pending notifications per browser session id.
type Store interface {
	Push(ctx context.Context, sid string, n ...Notification) error
	Pop(ctx context.Context, sid string) ([]Notification, error)
}

const (
	maxPerSession = 20
	defaultTTL    = 10 * time.Minute
)

type memoryEntry struct {
	items   []Notification
	expires time.Time
}

// MemoryStore is the single-instance Store. Entries expire TTL after their
// last push; expired entries are swept on Push.
type MemoryStore struct {
	TTL time.Duration

	mu      sync.Mutex
	pending map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{TTL: defaultTTL, pending: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return defaultTTL
}

func (s *MemoryStore) Push(_ context.Context, sid string, n ...Notification) error {
	if sid == "" || len(n) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	list := append(s.pending[sid].items, n...)
	if len(list) > maxPerSession {
		list = list[len(list)-maxPerSession:]
	}
	s.pending[sid] = memoryEntry{items: list, expires: now.Add(s.ttl())}
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sid string) ([]Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[sid]
	delete(s.pending, sid)
	if !ok || !s.now().Before(e.expires) {
		return nil, nil
	}
	return e.items, nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for sid, e := range s.pending {
		if !now.Before(e.expires) {
			delete(s.pending, sid)
		}
	}
}

// RedisStore shares notifications between console instances.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, TTL: defaultTTL, Prefix: "admin:notify:"}
}

func (s *RedisStore) key(sid string) string { return s.Prefix + sid }

func (s *RedisStore) Push(ctx context.Context, sid string, n ...Notification) error {
	if sid == "" || len(n) == 0 {
		return nil
	}
	vals := make([]any, 0, len(n))
	for _, item := range n {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		vals = append(vals, b)
	}
	key := s.key(sid)
	_, err := s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, vals...)
		p.LTrim(ctx, key, -maxPerSession, -1)
		p.Expire(ctx, key, s.TTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push notification: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(ctx context.Context, sid string) ([]Notification, error) {
	if sid == "" {
		return nil, nil
	}
	key := s.key(sid)
	var lr *redis.StringSliceCmd
	_, err := s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lr = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis pop notification: %w", err)
	}
	out := make([]Notification, 0, len(lr.Val()))
	for _, raw := range lr.Val() {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
