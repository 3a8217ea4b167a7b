package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Ключи отозванных токенов: revokedPrefix + jti, значение не важно, важен TTL.
const revokedPrefix = "boldserve:revoked-jwt:"

type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// TokenStore хранит jti отозванных access-токенов до их естественного истечения.
type TokenStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewTokenStore(opts Options, log *zap.Logger) (*TokenStore, error) {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	log.Info("Redis подключён", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &TokenStore{rdb: rdb, log: log}, nil
}

func (s *TokenStore) Close() error {
	return s.rdb.Close()
}

// BlacklistToken — токен с истёкшим ttl уже невалиден, писать его незачем.
func (s *TokenStore) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	s.log.Debug("token revoked", zap.String("jti", jti), zap.Duration("ttl", ttl))
	return nil
}

func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, revokedPrefix+jti).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	}
	return false, err
}
