package store

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records as plain redis keys: table:partitionKey:rowKey.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}
}

func recordKey(table, partitionKey, rowKey string) string {
	return table + ":" + partitionKey + ":" + rowKey
}

func (s *RedisStore) Get(ctx context.Context, table, partitionKey, rowKey string) ([]byte, error) {
	record, err := s.client.Get(ctx, recordKey(table, partitionKey, rowKey)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RedisStore) Upsert(ctx context.Context, table, partitionKey, rowKey string, record []byte) error {
	return s.client.Set(ctx, recordKey(table, partitionKey, rowKey), record, 0).Err()
}

func (s *RedisStore) List(ctx context.Context, table, partitionKey, rowPrefix string) (map[string][]byte, error) {
	prefix := recordKey(table, partitionKey, rowPrefix)
	result := make(map[string][]byte)

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		record, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, err
		}
		result[strings.TrimPrefix(key, recordKey(table, partitionKey, ""))] = record
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
