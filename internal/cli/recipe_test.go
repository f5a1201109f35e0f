package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/logger"
)

func init() {
	color.NoColor = true
}

func testOpener(t *testing.T) Opener {
	t.Helper()
	cfg := &config.Config{
		Env:            config.Test,
		StorageBackend: config.BackendFile,
		StorageKey:     "recipes",
		DataDir:        t.TempDir(),
	}
	return func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg, logger.NewNop())
	}
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var createdID = regexp.MustCompile(`Created recipe ([0-9a-f-]{36}):`)

func addRecipe(t *testing.T, open Opener, args ...string) string {
	t.Helper()
	out, err := run(t, open, append([]string{"add"}, args...)...)
	require.NoError(t, err)
	m := createdID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, testOpener(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recipes found.")
}

func TestAddShowDelete(t *testing.T) {
	open := testOpener(t)

	id := addRecipe(t, open,
		"--title", "Pancakes",
		"--ingredients", `flour\nmilk\neggs`,
		"--instructions", `mix\ncook`,
		"--prep-time", "10 min",
		"--cook-time", "15",
		"--servings", "4",
		"--category", "breakfast",
		"--difficulty", "easy",
	)

	out, err := run(t, open, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Pancakes")
	assert.Contains(t, out, "10 min prep, 15 min cook (25 min total)")
	assert.Contains(t, out, "Servings:   4")
	assert.Contains(t, out, "  - milk\n")
	assert.Contains(t, out, "  2. cook\n")

	out, err = run(t, open, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted recipe "+id)

	_, err = run(t, open, "delete", id)
	assert.EqualError(t, err, "recipe "+id+" not found")

	_, err = run(t, open, "show", id)
	assert.EqualError(t, err, "recipe "+id+" not found")
}

func TestAddDefaults(t *testing.T) {
	open := testOpener(t)
	id := addRecipe(t, open, "--title", "Toast", "--prep-time", "abc")

	out, err := run(t, open, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "0 min prep, 0 min cook (0 min total)")
	assert.Contains(t, out, "Servings:   1")
	assert.Contains(t, out, "Category:   other")
	assert.Contains(t, out, "Difficulty: medium")
}

func TestAddRequiresTitle(t *testing.T) {
	_, err := run(t, testOpener(t), "add", "--description", "no title")
	assert.EqualError(t, err, "title is required")
}

func TestListFilters(t *testing.T) {
	open := testOpener(t)
	addRecipe(t, open, "--title", "Pancakes", "--category", "breakfast")
	addRecipe(t, open, "--title", "Tomato Soup", "--category", "lunch")

	out, err := run(t, open, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pancakes")
	assert.Contains(t, out, "Tomato Soup")

	out, err = run(t, open, "list", "--category", "lunch")
	require.NoError(t, err)
	assert.NotContains(t, out, "Pancakes")
	assert.Contains(t, out, "Tomato Soup")

	out, err = run(t, open, "list", "--search", "PAN")
	require.NoError(t, err)
	assert.Contains(t, out, "Pancakes")
	assert.NotContains(t, out, "Tomato Soup")
}
