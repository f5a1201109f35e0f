package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/model"
)

// IRecipeStore defines the operations the view layer may call on the
// recipe collection.
type IRecipeStore interface {
	List(ctx context.Context) ([]model.Recipe, error)
	GetByID(ctx context.Context, id string) (*model.Recipe, error)
	Create(ctx context.Context, in model.RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var _ IRecipeStore = (*RecipeStore)(nil)
