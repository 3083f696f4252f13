// Package preferences persists the user's UI choices: list/card display
// mode and interface language.
package preferences

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

// DisplayMode selects how transaction lists are rendered
type DisplayMode string

const (
	DisplayList  DisplayMode = "list"
	DisplayCards DisplayMode = "cards"
)

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = "en"

// Valid reports whether m is a known mode.
func (m DisplayMode) Valid() bool {
	return m == DisplayList || m == DisplayCards
}

// Toggle returns the other mode.
func (m DisplayMode) Toggle() DisplayMode {
	if m == DisplayCards {
		return DisplayList
	}
	return DisplayCards
}

// Store reads and writes preferences.
type Store interface {
	DisplayMode(ctx context.Context) (DisplayMode, error)
	SetDisplayMode(ctx context.Context, mode DisplayMode) error
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, code string) error
}

var validate = validator.New()

func checkMode(mode DisplayMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown display mode %q", mode)
	}
	return nil
}

func checkLanguage(code string) error {
	if err := validate.Var(code, "required,bcp47_language_tag"); err != nil {
		return fmt.Errorf("invalid language code %q", code)
	}
	return nil
}

// Open returns a Redis-backed store, or an in-memory one when client is nil.
func Open(client *redis.Client, prefix string) Store {
	if client == nil {
		return NewMemoryStore(prefix)
	}
	return NewRedisStore(client, prefix)
}

// RedisStore keeps preferences in Redis under "<prefix>:display-mode" and
// "<prefix>:language".
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStore) DisplayMode(ctx context.Context) (DisplayMode, error) {
	val, err := s.redis.Get(ctx, s.key("display-mode")).Result()
	if err == redis.Nil {
		return DisplayList, nil
	}
	if err != nil {
		return DisplayList, fmt.Errorf("read display mode: %w", err)
	}
	mode := DisplayMode(val)
	if !mode.Valid() {
		return DisplayList, nil
	}
	return mode, nil
}

func (s *RedisStore) SetDisplayMode(ctx context.Context, mode DisplayMode) error {
	if err := checkMode(mode); err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key("display-mode"), string(mode), 0).Err(); err != nil {
		return fmt.Errorf("write display mode: %w", err)
	}
	return nil
}

func (s *RedisStore) Language(ctx context.Context) (string, error) {
	val, err := s.redis.Get(ctx, s.key("language")).Result()
	if err == redis.Nil {
		return DefaultLanguage, nil
	}
	if err != nil {
		return DefaultLanguage, fmt.Errorf("read language: %w", err)
	}
	return val, nil
}

func (s *RedisStore) SetLanguage(ctx context.Context, code string) error {
	if err := checkLanguage(code); err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key("language"), code, 0).Err(); err != nil {
		return fmt.Errorf("write language: %w", err)
	}
	return nil
}

// MemoryStore keeps preferences for the lifetime of the process, under the
// same keys the Redis store uses.
type MemoryStore struct {
	cache  *cache.Cache
	prefix string
}

func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0), prefix: prefix}
}

func (s *MemoryStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *MemoryStore) DisplayMode(context.Context) (DisplayMode, error) {
	if v, ok := s.cache.Get(s.key("display-mode")); ok {
		return v.(DisplayMode), nil
	}
	return DisplayList, nil
}

func (s *MemoryStore) SetDisplayMode(_ context.Context, mode DisplayMode) error {
	if err := checkMode(mode); err != nil {
		return err
	}
	s.cache.Set(s.key("display-mode"), mode, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Language(context.Context) (string, error) {
	if v, ok := s.cache.Get(s.key("language")); ok {
		return v.(string), nil
	}
	return DefaultLanguage, nil
}

func (s *MemoryStore) SetLanguage(_ context.Context, code string) error {
	if err := checkLanguage(code); err != nil {
		return err
	}
	s.cache.Set(s.key("language"), code, cache.NoExpiration)
	return nil
}
