package main

import (
	"context"
	"os"

	"recipestore/app"
	"recipestore/recipes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "find-array-tips",
		Short:        "List recipes whose tips are still stored as arrays",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := app.Open(ctx, cmd.Use)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			report, err := recipes.NewInspector(a.Recipes, a.Log).ArrayTips(ctx, cmd.OutOrStdout())
			if err != nil {
				a.Log.Error("scan failed", zap.Error(err))
				return err
			}
			a.Log.Info("scan finished",
				zap.Int("checked", report.Checked),
				zap.Int("with_array_tips", len(report.Flagged)),
			)
			return nil
		},
	}
}
