// Package cache guarda en Redis las respuestas de la API de recetas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/pkg/logger"
)

var _ ports.RecipeSearcher = (*RecipeCache)(nil)

const recipeKeyPrefix = "recipes:v1:"

// RecipeCache decorador de RecipeSearcher. Los fallos de Redis se registran y se
// consulta directamente al servicio; los errores del servicio nunca se guardan.
type RecipeCache struct {
	next   ports.RecipeSearcher
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRecipeCache construye el decorador. log nil = sin logs.
func NewRecipeCache(next ports.RecipeSearcher, client *redis.Client, ttl time.Duration, log *logger.Logger) *RecipeCache {
	if log == nil {
		log = logger.Nop()
	}
	return &RecipeCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *RecipeCache) SearchRecipes(ctx context.Context, q ports.RecipeQuery) ([]dto.RecipeSummary, error) {
	key := Key(q)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []dto.RecipeSummary
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta, se ignora")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("leer caché de recetas")
	}

	recs, err := c.next.SearchRecipes(ctx, q)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(recs); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("escribir caché de recetas")
		}
	}
	return recs, nil
}

// Key clave de caché para q. Solo cuentan los primeros 10 ingredientes, igual que en la API.
func Key(q ports.RecipeQuery) string {
	ings := q.Ingredients
	if len(ings) > 10 {
		ings = ings[:10]
	}
	return fmt.Sprintf("%sveg=%t:k=%d:%s", recipeKeyPrefix, q.VegetarianOnly, q.TopK, strings.Join(ings, ","))
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("conectar redis %s: %w", addr, err)
	}
	return client, nil
}
