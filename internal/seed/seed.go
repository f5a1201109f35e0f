// Package seed loads the bundled sample recipes into a recipe store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

//go:embed recipes.json
var sampleRecipes []byte

// Samples returns the bundled sample recipes as submit forms.
func Samples() ([]types.RecipeForm, error) {
	var forms []types.RecipeForm
	if err := json.Unmarshal(sampleRecipes, &forms); err != nil {
		return nil, fmt.Errorf("failed to parse sample recipes: %w", err)
	}
	return forms, nil
}

// Seed creates every form whose title is not already in the store and
// returns how many recipes were added.
func Seed(ctx context.Context, store service.IRecipeStore, forms []types.RecipeForm, log *logger.Logger) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	titles := make(map[string]bool, len(existing))
	for _, r := range existing {
		titles[r.Title] = true
	}

	created := 0
	for _, form := range forms {
		if err := form.Validate(); err != nil {
			log.Warn("Skipping sample recipe", "error", err)
			continue
		}
		if titles[form.Title] {
			log.Debug("Sample recipe already present", "title", form.Title)
			continue
		}

		recipe, err := store.Create(ctx, form.Input())
		if err != nil {
			return created, fmt.Errorf("failed to save recipe %q: %w", form.Title, err)
		}
		titles[recipe.Title] = true
		created++
		log.Info("Successfully created recipe", "id", recipe.ID, "title", recipe.Title)
	}
	return created, nil
}
