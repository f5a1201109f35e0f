package service

import (
	"sort"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// RecipeQuery is the browse page's filter state.
type RecipeQuery struct {
	Category string `form:"category" json:"category"`
	Search   string `form:"search" json:"search"`
}

// Apply returns the recipes matching q, newest first. The input slice is
// left untouched.
func (q RecipeQuery) Apply(recipes []model.Recipe) []model.Recipe {
	search := strings.ToLower(q.Search)

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q.Category != "" && q.Category != CategoryAll && string(r.Category) != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Title), search) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}
