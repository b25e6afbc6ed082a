package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/domain/schedule"
)

const availabilityTTL = 5 * time.Minute

// NewRedis conecta no Redis. Endereço vazio ou falha de ping devolvem
// nil e o cache vira no-op (a API nunca depende do Redis para responder).
func NewRedis(addr string, log *logrus.Logger) *redis.Client {
	if addr == "" {
		log.Warn("REDIS_ADDR not set, availability cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Error("redis unreachable, availability cache disabled")
		return nil
	}

	return rdb
}

// AvailabilityCache guarda as grades de horários livres por
// colaborador/dia/serviço. Invalidado a cada mutação de agenda.
type AvailabilityCache struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewAvailabilityCache(rdb *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, log: log}
}

func slotKey(collaboratorID uint, date string, serviceID uint) string {
	return fmt.Sprintf("availability:%d:%s:%d", collaboratorID, date, serviceID)
}

// Get devolve (slots, true) em cache hit. Qualquer erro conta como miss.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	collaboratorID uint,
	date string,
	serviceID uint,
) ([]schedule.TimeSlot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotKey(collaboratorID, date, serviceID)).Result()
	if err != nil {
		return nil, false
	}

	var slots []schedule.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	collaboratorID uint,
	date string,
	serviceID uint,
	slots []schedule.TimeSlot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(collaboratorID, date, serviceID), raw, availabilityTTL).Err(); err != nil {
		c.log.WithError(err).Warn("availability cache set failed")
	}
}

// Invalidate apaga todas as grades do colaborador no dia, para qualquer
// serviço. Chamado após criar/cancelar/concluir agendamento e ao trocar
// o expediente.
func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	collaboratorID uint,
	date string,
) {

	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:%s:*", collaboratorID, date)

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.WithError(err).Warn("availability cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.WithError(err).Warn("availability cache scan failed")
	}
}

// InvalidateAllDates apaga as grades do colaborador em todos os dias.
// Usado quando o expediente semanal muda.
func (c *AvailabilityCache) InvalidateAllDates(
	ctx context.Context,
	collaboratorID uint,
) {

	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*", collaboratorID)

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
