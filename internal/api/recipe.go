package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	store service.IRecipeStore
	log   *logger.Logger
}

func NewRecipeHandler(store service.IRecipeStore, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		store: store,
		log:   log.With("handler", "recipes"),
	}
}

// RecipeDetail is a recipe with the derived fields the detail page shows.
type RecipeDetail struct {
	model.Recipe
	IngredientList  []string `json:"ingredient_list"`
	InstructionList []string `json:"instruction_list"`
	TotalTime       int      `json:"total_time"`
}

func NewRecipeDetail(r model.Recipe) RecipeDetail {
	return RecipeDetail{
		Recipe:          r,
		IngredientList:  r.IngredientList(),
		InstructionList: r.InstructionList(),
		TotalTime:       r.TotalTime(),
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, createLimiter *middleware.RateLimiter) {
	create := []gin.HandlerFunc{h.CreateRecipe}
	if createLimiter != nil {
		create = append([]gin.HandlerFunc{createLimiter.Middleware()}, create...)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", create...)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes returns the collection filtered by ?category= and ?search=,
// newest first.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var query service.RecipeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	recipes, err := h.store.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": query.Apply(recipes),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, NewRecipeDetail(*recipe))
}

// CreateRecipe accepts the submit form as JSON or as a form post.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form types.RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	if err := form.Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	recipe, err := h.store.Create(c.Request.Context(), form.Input())
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.log.Info("Recipe created", "id", recipe.ID, "title", recipe.Title)
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !deleted {
		_ = c.Error(service.ErrRecipeNotFound)
		return
	}

	h.log.Info("Recipe deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
