package main

import (
	"context"
	"os"

	"recipestore/app"
	"recipestore/recipes"

	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "inspect-recipe",
		Short:        "Print the first document of the recipes collection",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := app.Open(ctx, cmd.Use)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return recipes.NewInspector(a.Recipes, a.Log).First(ctx, cmd.OutOrStdout())
		},
	}
}
