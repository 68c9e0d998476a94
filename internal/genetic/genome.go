package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
)

// Catalogue is the read-only recipe source the engine draws candidates from
type Catalogue interface {
	FindCandidateRecipes(ctx context.Context, mealType meal.MealType, diets []meal.DietType) ([]meal.RecipeID, error)
	GetNutritionFacts(ctx context.Context, id meal.RecipeID) (meal.Facts, error)
}

// Gene is one slot assignment with the recipe's nutrition snapshot
type Gene struct {
	Slot     meal.MealSlot
	RecipeID meal.RecipeID
	Facts    meal.Facts
}

// Genome is a complete candidate day: exactly one gene per slot, indexed by
// slot position. Genes are never shared between genomes.
type Genome struct {
	genes  []Gene
	totals meal.Facts
	score  float64
	born   int
}

// Genes returns a copy of the genome's genes in slot order
func (g *Genome) Genes() []Gene {
	out := make([]Gene, len(g.genes))
	copy(out, g.genes)
	return out
}

// Totals returns the cached nutrition aggregate
func (g *Genome) Totals() meal.Facts { return g.totals }

// Score returns the last fitness evaluation, lower is better
func (g *Genome) Score() float64 { return g.score }

// Born returns the generation the genome was constructed in
func (g *Genome) Born() int { return g.born }

// Len returns the number of slots covered
func (g *Genome) Len() int { return len(g.genes) }

// Recompute refreshes the cached totals from the gene snapshots
func (g *Genome) Recompute() {
	facts := make([]meal.Facts, len(g.genes))
	for i, gene := range g.genes {
		facts[i] = gene.Facts
	}
	g.totals = meal.Sum(facts...)
}

// Clone returns a deep copy
func (g *Genome) Clone() *Genome {
	return &Genome{
		genes:  g.Genes(),
		totals: g.totals,
		score:  g.score,
		born:   g.born,
	}
}

// better orders genomes by score, then by earlier construction
func better(a, b *Genome) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.born < b.born
}

// Pools holds the candidate recipes of every slot for one run. Nutrition
// facts are memoised since the catalogue does not change during a run.
type Pools struct {
	slots      []meal.MealSlot
	candidates [][]meal.RecipeID
	facts      map[meal.RecipeID]meal.Facts
	catalogue  Catalogue
}

// NewPools queries the catalogue once per slot. An empty pool is fatal.
func NewPools(ctx context.Context, catalogue Catalogue, slots []meal.MealSlot, diets []meal.DietType) (*Pools, error) {
	if err := meal.ValidateSlots(slots); err != nil {
		return nil, err
	}

	ordered := make([]meal.MealSlot, len(slots))
	for _, slot := range slots {
		ordered[slot.Position] = slot
	}

	p := &Pools{
		slots:      ordered,
		candidates: make([][]meal.RecipeID, len(slots)),
		facts:      make(map[meal.RecipeID]meal.Facts),
		catalogue:  catalogue,
	}

	// Slots of the same meal type share one query
	byType := make(map[meal.MealType][]meal.RecipeID)
	for _, slot := range ordered {
		ids, ok := byType[slot.MealType]
		if !ok {
			var err error
			ids, err = catalogue.FindCandidateRecipes(ctx, slot.MealType, diets)
			if err != nil {
				return nil, fmt.Errorf("find candidates for %s: %w", slot, err)
			}
			byType[slot.MealType] = ids
		}
		if len(ids) == 0 {
			return nil, &meal.NoCandidateRecipesError{Slot: slot, DietTypes: diets}
		}
		p.candidates[slot.Position] = ids
	}

	return p, nil
}

// Draw picks a uniformly random candidate for the slot and snapshots its facts
func (p *Pools) Draw(ctx context.Context, position int, rng *rand.Rand) (Gene, error) {
	ids := p.candidates[position]
	id := ids[rng.IntN(len(ids))]

	facts, ok := p.facts[id]
	if !ok {
		var err error
		facts, err = p.catalogue.GetNutritionFacts(ctx, id)
		if err != nil {
			return Gene{}, fmt.Errorf("nutrition facts for recipe %s: %w", id, err)
		}
		p.facts[id] = facts
	}

	return Gene{Slot: p.slots[position], RecipeID: id, Facts: facts}, nil
}

// NewRandomGenome builds a complete genome with one random draw per slot
func (p *Pools) NewRandomGenome(ctx context.Context, rng *rand.Rand, born int) (*Genome, error) {
	genes := make([]Gene, len(p.slots))
	for i := range p.slots {
		gene, err := p.Draw(ctx, i, rng)
		if err != nil {
			return nil, err
		}
		genes[i] = gene
	}

	g := &Genome{genes: genes, born: born}
	g.Recompute()
	return g, nil
}

// RandomInit builds a single random genome straight from the catalogue
func RandomInit(ctx context.Context, slots []meal.MealSlot, diets []meal.DietType, catalogue Catalogue, rng *rand.Rand) (*Genome, error) {
	pools, err := NewPools(ctx, catalogue, slots, diets)
	if err != nil {
		return nil, err
	}
	return pools.NewRandomGenome(ctx, rng, 0)
}
