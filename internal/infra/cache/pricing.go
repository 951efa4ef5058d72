// Package cache короткоживущий кэш календаря цен поверх Redis.
//
// Кэш строго advisory: он ускоряет отрисовку календаря, но никогда не
// является источником истины: фаза Reserving всегда перепроверяет занятость
// дат в БД. Поэтому все ошибки кэша логируются и глотаются.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// PricingCache кэш ответов прайсинга c секундным TTL
type PricingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewPricingCache создает кэш прайсинга
func NewPricingCache(client *redis.Client, ttl time.Duration, log Logger) *PricingCache {
	return &PricingCache{client: client, ttl: ttl, log: log}
}

// Key строит ключ кэша: слот + scope + день запроса (окно зависит от "сегодня")
func Key(slotKey string, scopeID int64, today time.Time) string {
	return fmt.Sprintf("pricing:%s:%d:%s", slotKey, scopeID, today.Format("2006-01-02"))
}

// Get читает закэшированный ответ. Возвращает false при промахе или любой ошибке.
func (c *PricingCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("pricing cache: get %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("pricing cache: unmarshal %s failed: %v", key, err)
		return false
	}
	return true
}

// Set кладет ответ в кэш. Ошибки не фатальны.
func (c *PricingCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("pricing cache: marshal %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("pricing cache: set %s failed: %v", key, err)
	}
}

// InvalidateSlot удаляет все закэшированные календари слота.
// Вызывается после commit бронирования, чтобы следующий просмотр
// не показал только что занятые даты свободными дольше, чем на TTL.
func (c *PricingCache) InvalidateSlot(ctx context.Context, slotKey string) {
	pattern := fmt.Sprintf("pricing:%s:*", slotKey)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("pricing cache: del %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("pricing cache: scan %s failed: %v", pattern, err)
	}
}
