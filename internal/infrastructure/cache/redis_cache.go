package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

const (
	// StockOutListKey clave del historial de salidas.
	StockOutListKey = "tienda:stock_out:list"
	// StockOutGenerationKey contador que Invalidate incrementa.
	StockOutGenerationKey = "tienda:stock_out:gen"
)

var _ inventory.StockOutListCache = (*RedisStockOutCache)(nil)

// RedisStockOutCache guarda el historial de salidas serializado en JSON con TTL.
type RedisStockOutCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStockOutCache construye el cache con su propio cliente.
func NewRedisStockOutCache(addr, password string, db int, ttl time.Duration) *RedisStockOutCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStockOutCacheWithClient(client, ttl)
}

// NewRedisStockOutCacheWithClient reutiliza un cliente existente.
func NewRedisStockOutCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStockOutCache {
	return &RedisStockOutCache{client: client, ttl: ttl}
}

func (c *RedisStockOutCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisStockOutCache) Close() error {
	return c.client.Close()
}

func (c *RedisStockOutCache) Get(ctx context.Context) ([]*entity.StockOutMovement, bool, error) {
	val, err := c.client.Get(ctx, StockOutListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows []*entity.StockOutMovement
	if err := json.Unmarshal(val, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *RedisStockOutCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, StockOutGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set escribe la lista bajo WATCH de la generación. Si otra conexión invalida entre
// la lectura y el EXEC, o la generación ya no es gen, no se escribe nada.
func (c *RedisStockOutCache) Set(ctx context.Context, gen int64, rows []*entity.StockOutMovement) error {
	if rows == nil {
		rows = []*entity.StockOutMovement{}
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, StockOutGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, StockOutListKey, payload, c.ttl)
			return nil
		})
		return err
	}, StockOutGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisStockOutCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, StockOutGenerationKey)
		pipe.Del(ctx, StockOutListKey)
		return nil
	})
	return err
}
