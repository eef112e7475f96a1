package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"groomhub/internal/app/grooming/entity"
	"groomhub/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	serviceName      = "grooming-service"
	groomerKeyPrefix = "groomer:"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает готовое соединение (для тестов с miniredis)
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func groomerKey(id uuid.UUID) string {
	return groomerKeyPrefix + id.String()
}

// SetGroomer кеширует профиль грумера с TTL
func (r *RedisClient) SetGroomer(ctx context.Context, groomer *entity.Groomer, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(groomer)
	if err != nil {
		return fmt.Errorf("failed to marshal groomer: %w", err)
	}

	if err := r.client.Set(ctx, groomerKey(groomer.GroomerID), data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set groomer in cache: %w", err)
	}

	return nil
}

// GetGroomer получает профиль грумера из кеша, nil при промахе
func (r *RedisClient) GetGroomer(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, groomerKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get groomer from cache: %w", err)
	}

	var groomer entity.Groomer
	if err := json.Unmarshal(data, &groomer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal groomer: %w", err)
	}

	return &groomer, nil
}

// DeleteGroomer инвалидирует кеш профиля
// Вызывается при обновлении, мягком удалении и создании отзыва
func (r *RedisClient) DeleteGroomer(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, groomerKey(id)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete groomer from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
