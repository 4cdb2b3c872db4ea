package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/telemedika/appointment-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache короткоживущий redis-кэш сгенерированных слотов по врачу.
// Ошибки redis никогда не роняют запрос: промах кэша - штатный путь
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log Logger
}

// New создает кэш слотов поверх redis-клиента
func New(rdb *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func key(doctorID int64) string {
	return fmt.Sprintf("slots:doctor:%d", doctorID)
}

// Get возвращает закэшированные дни со слотами; ok=false при промахе
func (c *Cache) Get(ctx context.Context, doctorID int64) ([]domain.DaySlots, bool) {
	data, err := c.rdb.Get(ctx, key(doctorID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slotcache: get failed for doctor_id=%d: %v", doctorID, err)
		}
		return nil, false
	}

	var days []domain.DaySlots
	if err := json.Unmarshal(data, &days); err != nil {
		c.log.Warn("slotcache: unmarshal failed for doctor_id=%d: %v", doctorID, err)
		return nil, false
	}

	return days, true
}

// Set кэширует дни со слотами на настроенный TTL
func (c *Cache) Set(ctx context.Context, doctorID int64, days []domain.DaySlots) {
	data, err := json.Marshal(days)
	if err != nil {
		c.log.Warn("slotcache: marshal failed for doctor_id=%d: %v", doctorID, err)
		return
	}

	if err := c.rdb.Set(ctx, key(doctorID), data, c.ttl).Err(); err != nil {
		c.log.Warn("slotcache: set failed for doctor_id=%d: %v", doctorID, err)
	}
}

// Invalidate сбрасывает кэш слотов врача после брони или отмены
func (c *Cache) Invalidate(ctx context.Context, doctorID int64) {
	if err := c.rdb.Del(ctx, key(doctorID)).Err(); err != nil {
		c.log.Warn("slotcache: invalidate failed for doctor_id=%d: %v", doctorID, err)
	}
}
