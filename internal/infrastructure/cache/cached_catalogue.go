package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"go.uber.org/zap"
)

// Source is the catalogue behind the cache
type Source interface {
	outbound.RecipeCatalogue
	outbound.IngredientSource
}

// Recorder counts cache lookups by kind ("candidates", "facts", "ingredients")
type Recorder interface {
	CacheHit(kind string)
	CacheMiss(kind string)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(string)  {}
func (nopRecorder) CacheMiss(string) {}

// CachedCatalogue is a cache-first decorator over a recipe catalogue. Cache
// failures fall through to the source and never fail a lookup.
type CachedCatalogue struct {
	source   Source
	cache    outbound.CacheRepository
	keys     *KeyBuilder
	ttl      time.Duration
	recorder Recorder
	logger   *zap.Logger
}

var (
	_ outbound.RecipeCatalogue  = (*CachedCatalogue)(nil)
	_ outbound.IngredientSource = (*CachedCatalogue)(nil)
)

// NewCachedCatalogue wraps source. A nil recorder counts nothing.
func NewCachedCatalogue(source Source, cache outbound.CacheRepository, ttl time.Duration, recorder Recorder, logger *zap.Logger) *CachedCatalogue {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CachedCatalogue{
		source:   source,
		cache:    cache,
		keys:     NewKeyBuilder(),
		ttl:      ttl,
		recorder: recorder,
		logger:   logger.Named("cached-catalogue"),
	}
}

func (c *CachedCatalogue) FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error) {
	key := c.keys.BuildCandidatesKey(mealType, diets)

	var ids []meal.RecipeID
	if c.lookup(ctx, "candidates", key, &ids) {
		return ids, nil
	}

	ids, err := c.source.FindCandidateRecipes(ctx, mealType, diets)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, ids)
	return ids, nil
}

func (c *CachedCatalogue) GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error) {
	key := c.keys.BuildFactsKey(id)

	var facts meal.Facts
	if c.lookup(ctx, "facts", key, &facts) {
		return facts, nil
	}

	facts, err := c.source.GetNutritionFacts(ctx, id)
	if err != nil {
		return meal.Facts{}, err
	}
	c.store(ctx, key, facts)
	return facts, nil
}

func (c *CachedCatalogue) GetIngredients(ctx context.Context, id meal.RecipeID) ([]meal.Ingredient, error) {
	key := c.keys.BuildIngredientsKey(id)

	var ingredients []meal.Ingredient
	if c.lookup(ctx, "ingredients", key, &ingredients) {
		return ingredients, nil
	}

	ingredients, err := c.source.GetIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, ingredients)
	return ingredients, nil
}

// Invalidate drops every cached entry derived from a recipe. Candidate lists
// expire on their own TTL.
func (c *CachedCatalogue) Invalidate(ctx context.Context, id meal.RecipeID) error {
	if err := c.cache.Delete(ctx, c.keys.BuildFactsKey(id)); err != nil {
		return err
	}
	return c.cache.Delete(ctx, c.keys.BuildIngredientsKey(id))
}

func (c *CachedCatalogue) lookup(ctx context.Context, kind, key string, dest interface{}) bool {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, outbound.ErrCacheMiss) {
			c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		c.recorder.CacheMiss(kind)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.cache.Delete(ctx, key)
		c.recorder.CacheMiss(kind)
		return false
	}

	c.recorder.CacheHit(kind)
	return true
}

func (c *CachedCatalogue) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}
