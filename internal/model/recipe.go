package model

import "strings"

// Category is the meal slot a recipe belongs to.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategoryAppetizer Category = "appetizer"
	CategorySnack     Category = "snack"
	CategoryOther     Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
	CategoryAppetizer,
	CategorySnack,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is how hard a recipe is to make.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every valid difficulty from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Recipe is a single catalog entry as persisted in the recipe collection.
// Ingredients and Instructions are newline-delimited lists stored as one string.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	PrepTime     int        `json:"prep_time"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Category     Category   `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	CreatedAt    Timestamp  `json:"created_at"`
	UpdatedAt    Timestamp  `json:"updated_at"`
}

// RecipeInput holds the caller-supplied fields of a new recipe.
// The store stamps ID, CreatedAt and UpdatedAt itself.
type RecipeInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	PrepTime     int        `json:"prep_time"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Category     Category   `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
}

// Normalize clamps numeric fields, replaces invalid UTF-8 in text fields
// and maps enum values onto the known set, falling back to the defaults.
// It never rejects input.
func (in RecipeInput) Normalize() RecipeInput {
	in.Title = validUTF8(in.Title)
	in.Description = validUTF8(in.Description)
	in.Ingredients = validUTF8(in.Ingredients)
	in.Instructions = validUTF8(in.Instructions)

	if in.PrepTime < 0 {
		in.PrepTime = 0
	}
	if in.CookTime < 0 {
		in.CookTime = 0
	}
	if in.Servings < 1 {
		in.Servings = 1
	}
	in.Category = Category(strings.ToLower(strings.TrimSpace(string(in.Category))))
	if !in.Category.Valid() {
		in.Category = CategoryOther
	}
	in.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(in.Difficulty))))
	if !in.Difficulty.Valid() {
		in.Difficulty = DifficultyMedium
	}
	return in
}

// Input returns the caller-supplied portion of r.
func (r Recipe) Input() RecipeInput {
	return RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
	}
}

// IngredientList splits Ingredients into its non-blank lines.
func (r Recipe) IngredientList() []string {
	return splitLines(r.Ingredients)
}

// InstructionList splits Instructions into its non-blank lines.
func (r Recipe) InstructionList() []string {
	return splitLines(r.Instructions)
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// validUTF8 replaces invalid byte sequences the way encoding/json does, so
// a stored record reads back exactly as it was returned.
func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return lines
}
