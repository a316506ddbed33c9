// Command migrate-recipe-data rewrites legacy recipe documents into the
// current schema: numeric durations become display strings plus *Minutes
// integers, list-shaped tips become paragraphs and title is copied into
// recipeName.
//
// Usage:
//
//	MONGO_URI=mongodb://localhost:27017 PROJECT_ID=recipe-mgmt-dev migrate-recipe-data
package main

import (
	"context"
	"fmt"
	"os"

	"recipestore/app"
	"recipestore/migrate"
	"recipestore/mq"
	"recipestore/ratelim"

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
		Use:          "migrate-recipe-data",
		Short:        "Migrate recipe documents to the current schema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := app.Open(ctx, cmd.Use)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	opts := []migrate.Option{
		migrate.WithWriteLimiter(ratelim.NewWriteLimiter(a.Config.WritesPerSecond)),
	}
	if a.Redis != nil {
		opts = append(opts, migrate.WithNotifier(mq.NewEmitter(a.Redis)))
	}

	sum, err := migrate.New(a.Recipes, a.Log, opts...).Run(ctx)
	if err != nil {
		a.Log.Error("fatal error during migration", zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	sum.Report(out)
	return nil
}
