package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

// ErrTitleRequired is returned by RecipeForm.Validate for a blank title.
var ErrTitleRequired = errors.New("title is required")

// FormValue is a raw form field. In JSON it accepts a string, a number or null.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = FormValue(n.String())
		return nil
	}
}

// RecipeForm is the submit form exactly as the user typed it.
type RecipeForm struct {
	Title        string    `json:"title" form:"title"`
	Description  string    `json:"description" form:"description"`
	Ingredients  string    `json:"ingredients" form:"ingredients"`
	Instructions string    `json:"instructions" form:"instructions"`
	PrepTime     FormValue `json:"prep_time" form:"prep_time"`
	CookTime     FormValue `json:"cook_time" form:"cook_time"`
	Servings     FormValue `json:"servings" form:"servings"`
	Category     string    `json:"category" form:"category"`
	Difficulty   string    `json:"difficulty" form:"difficulty"`
}

// Validate performs the form's own required-field check.
func (f RecipeForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Input converts the form into store input. Unparsable or missing numbers
// fall back to 0 minutes and 1 serving; a zero serving count also becomes 1.
func (f RecipeForm) Input() model.RecipeInput {
	category := model.Category(strings.TrimSpace(f.Category))
	if category == "" {
		category = model.CategoryOther
	}
	difficulty := model.Difficulty(strings.TrimSpace(f.Difficulty))
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	return model.RecipeInput{
		Title:        f.Title,
		Description:  f.Description,
		Ingredients:  f.Ingredients,
		Instructions: f.Instructions,
		PrepTime:     intOr(string(f.PrepTime), 0),
		CookTime:     intOr(string(f.CookTime), 0),
		Servings:     intOr(string(f.Servings), 1),
		Category:     category,
		Difficulty:   difficulty,
	}.Normalize()
}

// intOr parses the leading integer of s ("12 min" is 12) and returns def
// when there is none or it is zero.
func intOr(s string, def int) int {
	n, ok := ParseLeadingInt(s)
	if !ok || n == 0 {
		return def
	}
	return n
}

// ParseLeadingInt parses an optionally signed run of decimal digits at the
// start of s, after leading whitespace. Trailing characters are ignored.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	const maxInt = int(^uint(0) >> 1)
	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		d := int(s[digits] - '0')
		if n > (maxInt-d)/10 {
			n = maxInt
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
