package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/model"
)

// Options selects the redis server and key namespace.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string // ledger list; preferences live in Key+":prefs"
}

// Store keeps the ledger in a redis list (LPUSH + LTRIM) and preferences in a hash.
type Store struct {
	client  *redis.Client
	listKey string
	prefKey string
	logger  *zap.Logger
}

// Open connects to redis and verifies the server answers.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	if opts.Key == "" {
		opts.Key = "s2x:history"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewWithClient(client, opts.Key, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, key string, logger *zap.Logger) *Store {
	return &Store{
		client:  client,
		listKey: key,
		prefKey: key + ":prefs",
		logger:  logging.OrNop(logger),
	}
}

func (s *Store) Insert(ctx context.Context, entry model.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.listKey, data)
		pipe.LTrim(ctx, s.listKey, 0, model.HistoryCapacity-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.HistoryEntry, error) {
	raw, err := s.client.LRange(ctx, s.listKey, 0, model.HistoryCapacity-1).Result()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	entries := make([]model.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil || e.ID == "" {
			if err == nil {
				err = fmt.Errorf("entry has no job id")
			}
			s.logger.Warn("skipping unreadable history entry",
				zap.Error(apperrors.Wrap(apperrors.ErrPersistenceCorrupt, err.Error())))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.listKey).Err(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

func (s *Store) LoadValues(ctx context.Context) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.prefKey).Result()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return values, nil
}

func (s *Store) SaveValues(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, s.prefKey, values).Err(); err != nil {
		return fmt.Errorf("save preferences failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
