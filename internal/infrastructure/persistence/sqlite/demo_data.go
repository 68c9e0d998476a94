package sqlite

import (
	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/google/uuid"
)

// DemoUserID owns the seeded nutrition profile
var DemoUserID = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f")

// DemoTarget is the seeded user's daily target
func DemoTarget() meal.Target {
	return meal.Target{
		DailyCalories:     2000,
		DailyCarbsGrams:   250,
		DailyProteinGrams: 100,
		DailyFatGrams:     65,
		DietType:          meal.DietTypeVegetarian,
	}
}

type demoRecipe struct {
	id       string
	title    string
	mealType meal.MealType
	diet     meal.DietType
	facts    meal.Facts
	lines    []meal.Ingredient
}

var demoCatalogue = []demoRecipe{
	// Breakfasts
	{"bf-oat-porridge", "Oat Porridge with Berries", meal.MealTypeBreakfast, meal.DietTypeVegan,
		meal.Facts{Calories: 380, Carbs: 62, Protein: 12, Fat: 9},
		[]meal.Ingredient{{Name: "Rolled oats", Amount: 80, Unit: "g"}, {Name: "Oat milk", Amount: 250, Unit: "ml"}, {Name: "Blueberries", Amount: 100, Unit: "g"}}},
	{"bf-tofu-scramble", "Tofu Scramble on Toast", meal.MealTypeBreakfast, meal.DietTypeVegan,
		meal.Facts{Calories: 420, Carbs: 38, Protein: 26, Fat: 18},
		[]meal.Ingredient{{Name: "Firm tofu", Amount: 150, Unit: "g"}, {Name: "Sourdough bread", Amount: 2, Unit: "slice"}, {Name: "Spinach", Amount: 40, Unit: "g"}}},
	{"bf-greek-yogurt", "Greek Yogurt with Honey and Walnuts", meal.MealTypeBreakfast, meal.DietTypeVegetarian,
		meal.Facts{Calories: 350, Carbs: 30, Protein: 20, Fat: 16},
		[]meal.Ingredient{{Name: "Greek yogurt", Amount: 200, Unit: "g"}, {Name: "Honey", Amount: 15, Unit: "g"}, {Name: "Walnuts", Amount: 20, Unit: "g"}}},
	{"bf-veggie-omelette", "Vegetable Omelette", meal.MealTypeBreakfast, meal.DietTypeVegetarian,
		meal.Facts{Calories: 310, Carbs: 8, Protein: 21, Fat: 22},
		[]meal.Ingredient{{Name: "Eggs", Amount: 3, Unit: "piece"}, {Name: "Bell pepper", Amount: 60, Unit: "g"}, {Name: "Spinach", Amount: 30, Unit: "g"}}},
	{"bf-smoked-salmon-bagel", "Smoked Salmon Bagel", meal.MealTypeBreakfast, meal.DietTypePescatarian,
		meal.Facts{Calories: 450, Carbs: 48, Protein: 28, Fat: 15},
		[]meal.Ingredient{{Name: "Bagel", Amount: 1, Unit: "piece"}, {Name: "Smoked salmon", Amount: 60, Unit: "g"}, {Name: "Cream cheese", Amount: 30, Unit: "g"}}},
	{"bf-bacon-eggs", "Bacon and Eggs", meal.MealTypeBreakfast, meal.DietTypeOmnivore,
		meal.Facts{Calories: 520, Carbs: 2, Protein: 30, Fat: 42},
		[]meal.Ingredient{{Name: "Eggs", Amount: 2, Unit: "piece"}, {Name: "Bacon", Amount: 80, Unit: "g"}}},

	// Lunches
	{"ln-lentil-soup", "Red Lentil Soup", meal.MealTypeLunch, meal.DietTypeVegan,
		meal.Facts{Calories: 480, Carbs: 70, Protein: 26, Fat: 10},
		[]meal.Ingredient{{Name: "Red lentils", Amount: 100, Unit: "g"}, {Name: "Carrot", Amount: 1, Unit: "piece"}, {Name: "Vegetable stock", Amount: 500, Unit: "ml"}}},
	{"ln-falafel-wrap", "Falafel Wrap", meal.MealTypeLunch, meal.DietTypeVegan,
		meal.Facts{Calories: 610, Carbs: 72, Protein: 20, Fat: 26},
		[]meal.Ingredient{{Name: "Falafel", Amount: 5, Unit: "piece"}, {Name: "Tortilla", Amount: 1, Unit: "piece"}, {Name: "Hummus", Amount: 40, Unit: "g"}}},
	{"ln-caprese-sandwich", "Caprese Sandwich", meal.MealTypeLunch, meal.DietTypeVegetarian,
		meal.Facts{Calories: 560, Carbs: 55, Protein: 24, Fat: 26},
		[]meal.Ingredient{{Name: "Ciabatta", Amount: 1, Unit: "piece"}, {Name: "Mozzarella", Amount: 100, Unit: "g"}, {Name: "Tomato", Amount: 1, Unit: "piece"}}},
	{"ln-halloumi-salad", "Halloumi Grain Salad", meal.MealTypeLunch, meal.DietTypeVegetarian,
		meal.Facts{Calories: 640, Carbs: 50, Protein: 30, Fat: 34},
		[]meal.Ingredient{{Name: "Halloumi", Amount: 100, Unit: "g"}, {Name: "Quinoa", Amount: 70, Unit: "g"}, {Name: "Cucumber", Amount: 0.5, Unit: "piece"}}},
	{"ln-tuna-nicoise", "Tuna Nicoise Salad", meal.MealTypeLunch, meal.DietTypePescatarian,
		meal.Facts{Calories: 530, Carbs: 30, Protein: 38, Fat: 28},
		[]meal.Ingredient{{Name: "Tuna", Amount: 120, Unit: "g"}, {Name: "Eggs", Amount: 1, Unit: "piece"}, {Name: "Green beans", Amount: 80, Unit: "g"}}},
	{"ln-chicken-caesar", "Chicken Caesar Salad", meal.MealTypeLunch, meal.DietTypeOmnivore,
		meal.Facts{Calories: 590, Carbs: 20, Protein: 45, Fat: 36},
		[]meal.Ingredient{{Name: "Chicken breast", Amount: 150, Unit: "g"}, {Name: "Romaine lettuce", Amount: 1, Unit: "piece"}, {Name: "Parmesan", Amount: 20, Unit: "g"}}},

	// Dinners
	{"dn-chickpea-curry", "Chickpea and Spinach Curry", meal.MealTypeDinner, meal.DietTypeVegan,
		meal.Facts{Calories: 690, Carbs: 95, Protein: 24, Fat: 22},
		[]meal.Ingredient{{Name: "Chickpeas", Amount: 240, Unit: "g"}, {Name: "Spinach", Amount: 100, Unit: "g"}, {Name: "Basmati rice", Amount: 75, Unit: "g"}}},
	{"dn-veg-stirfry", "Vegetable Stir-fry with Tofu", meal.MealTypeDinner, meal.DietTypeVegan,
		meal.Facts{Calories: 580, Carbs: 65, Protein: 28, Fat: 22},
		[]meal.Ingredient{{Name: "Firm tofu", Amount: 150, Unit: "g"}, {Name: "Broccoli", Amount: 120, Unit: "g"}, {Name: "Egg noodles", Amount: 80, Unit: "g"}}},
	{"dn-mushroom-risotto", "Mushroom Risotto", meal.MealTypeDinner, meal.DietTypeVegetarian,
		meal.Facts{Calories: 720, Carbs: 98, Protein: 20, Fat: 26},
		[]meal.Ingredient{{Name: "Arborio rice", Amount: 90, Unit: "g"}, {Name: "Mushrooms", Amount: 200, Unit: "g"}, {Name: "Parmesan", Amount: 30, Unit: "g"}}},
	{"dn-spinach-lasagne", "Spinach and Ricotta Lasagne", meal.MealTypeDinner, meal.DietTypeVegetarian,
		meal.Facts{Calories: 810, Carbs: 80, Protein: 36, Fat: 38},
		[]meal.Ingredient{{Name: "Lasagne sheets", Amount: 120, Unit: "g"}, {Name: "Ricotta", Amount: 150, Unit: "g"}, {Name: "Spinach", Amount: 150, Unit: "g"}}},
	{"dn-baked-salmon", "Baked Salmon with Potatoes", meal.MealTypeDinner, meal.DietTypePescatarian,
		meal.Facts{Calories: 740, Carbs: 55, Protein: 44, Fat: 36},
		[]meal.Ingredient{{Name: "Salmon fillet", Amount: 180, Unit: "g"}, {Name: "Potatoes", Amount: 250, Unit: "g"}, {Name: "Lemon", Amount: 0.5, Unit: "piece"}}},
	{"dn-beef-chili", "Beef Chili", meal.MealTypeDinner, meal.DietTypeOmnivore,
		meal.Facts{Calories: 780, Carbs: 60, Protein: 48, Fat: 36},
		[]meal.Ingredient{{Name: "Minced beef", Amount: 180, Unit: "g"}, {Name: "Kidney beans", Amount: 120, Unit: "g"}, {Name: "Tomato", Amount: 2, Unit: "piece"}}},

	// Snacks
	{"sn-apple-pb", "Apple with Peanut Butter", meal.MealTypeSnack, meal.DietTypeVegan,
		meal.Facts{Calories: 250, Carbs: 28, Protein: 7, Fat: 14},
		[]meal.Ingredient{{Name: "Apple", Amount: 1, Unit: "piece"}, {Name: "Peanut butter", Amount: 25, Unit: "g"}}},
	{"sn-cheese-crackers", "Cheese and Crackers", meal.MealTypeSnack, meal.DietTypeVegetarian,
		meal.Facts{Calories: 280, Carbs: 22, Protein: 12, Fat: 16},
		[]meal.Ingredient{{Name: "Cheddar", Amount: 40, Unit: "g"}, {Name: "Crackers", Amount: 30, Unit: "g"}}},
}

// DemoRecipes returns the seeded catalogue
func DemoRecipes() []meal.Recipe {
	recipes := make([]meal.Recipe, len(demoCatalogue))
	for i, d := range demoCatalogue {
		lines := make([]meal.Ingredient, len(d.lines))
		copy(lines, d.lines)
		recipes[i] = meal.Recipe{
			ID:          meal.RecipeID(d.id),
			Title:       d.title,
			MealType:    d.mealType,
			DietType:    d.diet,
			Facts:       d.facts,
			Ingredients: lines,
		}
	}
	return recipes
}
