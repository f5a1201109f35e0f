package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func listCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			search, _ := cmd.Flags().GetString("search")

			return withApp(cmd, open, func(a *app.App) error {
				recipes, err := a.Store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list recipes: %w", err)
				}
				recipes = service.RecipeQuery{Category: category, Search: search}.Apply(recipes)

				out := cmd.OutOrStdout()
				if len(recipes) == 0 {
					fmt.Fprintln(out, "No recipes found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tTIME")
				for _, r := range recipes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d min\n",
						idColor.Sprint(r.ID), r.Title, r.Category, r.Difficulty, r.TotalTime())
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().String("category", service.CategoryAll, "Only show recipes in this category")
	cmd.Flags().String("search", "", "Only show recipes whose title contains this text")
	return cmd
}

func showCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				r, err := a.Store.GetByID(cmd.Context(), args[0])
				if errors.Is(err, service.ErrRecipeNotFound) {
					return fmt.Errorf("recipe %s not found", args[0])
				}
				if err != nil {
					return err
				}
				printRecipe(cmd, *r)
				return nil
			})
		},
	}
}

func printRecipe(cmd *cobra.Command, r model.Recipe) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleColor.Sprint(r.Title))
	fmt.Fprintf(out, "  ID:         %s\n", idColor.Sprint(r.ID))
	if r.Description != "" {
		fmt.Fprintf(out, "  %s\n", r.Description)
	}
	fmt.Fprintf(out, "  Category:   %s\n", r.Category)
	fmt.Fprintf(out, "  Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(out, "  Time:       %d min prep, %d min cook (%d min total)\n", r.PrepTime, r.CookTime, r.TotalTime())
	fmt.Fprintf(out, "  Servings:   %d\n", r.Servings)
	fmt.Fprintf(out, "  Added:      %s\n", mutedColor.Sprint(r.CreatedAt.Format("2006-01-02 15:04")))

	if ingredients := r.IngredientList(); len(ingredients) > 0 {
		fmt.Fprintln(out, "\nIngredients:")
		for _, line := range ingredients {
			fmt.Fprintf(out, "  - %s\n", line)
		}
	}
	if steps := r.InstructionList(); len(steps) > 0 {
		fmt.Fprintln(out, "\nInstructions:")
		for i, line := range steps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, line)
		}
	}
}

func addCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add a recipe. Numeric flags are read like the web form: "12 min" is 12,
anything unparsable falls back to 0 minutes or 1 serving.
Use \n inside --ingredients and --instructions to separate lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			title, _ := flags.GetString("title")
			description, _ := flags.GetString("description")
			ingredients, _ := flags.GetString("ingredients")
			instructions, _ := flags.GetString("instructions")
			prepTime, _ := flags.GetString("prep-time")
			cookTime, _ := flags.GetString("cook-time")
			servings, _ := flags.GetString("servings")
			category, _ := flags.GetString("category")
			difficulty, _ := flags.GetString("difficulty")

			form := types.RecipeForm{
				Title:        title,
				Description:  description,
				Ingredients:  unescapeLines(ingredients),
				Instructions: unescapeLines(instructions),
				PrepTime:     types.FormValue(prepTime),
				CookTime:     types.FormValue(cookTime),
				Servings:     types.FormValue(servings),
				Category:     category,
				Difficulty:   difficulty,
			}
			if err := form.Validate(); err != nil {
				return err
			}

			return withApp(cmd, open, func(a *app.App) error {
				r, err := a.Store.Create(cmd.Context(), form.Input())
				if err != nil {
					return fmt.Errorf("failed to create recipe: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Created recipe %s: %s\n", successColor.Sprint("✓"), r.ID, r.Title)
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "Recipe title (required)")
	cmd.Flags().String("description", "", "Short description")
	cmd.Flags().String("ingredients", "", "Ingredients, one per line")
	cmd.Flags().String("instructions", "", "Instructions, one step per line")
	cmd.Flags().String("prep-time", "", "Preparation time in minutes")
	cmd.Flags().String("cook-time", "", "Cooking time in minutes")
	cmd.Flags().String("servings", "", "Number of servings")
	cmd.Flags().String("category", "", "breakfast, lunch, dinner, dessert, appetizer, snack or other")
	cmd.Flags().String("difficulty", "", "easy, medium or hard")
	return cmd
}

func unescapeLines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func deleteCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.App) error {
				deleted, err := a.Store.Delete(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to delete recipe: %w", err)
				}
				if !deleted {
					return fmt.Errorf("recipe %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted recipe %s\n", successColor.Sprint("✓"), args[0])
				return nil
			})
		},
	}
}
