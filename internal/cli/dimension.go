package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dimchain/dimchain/pkg/pipeline"
	"github.com/dimchain/dimchain/pkg/store"
)

// dimensionCommand creates the main dimensioning command.
func (c *CLI) dimensionCommand() *cobra.Command {
	var (
		viewsFlag    string
		settingsPath string
		outPath      string
		mongoURI     string
		noCache      bool
		refresh      bool
		noNudge      bool
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "dimension <document.json>",
		Short: "Place dimension chains on a document's views",
		Long: `Dimension runs the full pass over every view of the document
(or the views named with --views) and prints a per-view summary.
Use --out to write the run result as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sp := newSpinnerWithContext(ctx, "Dimensioning views...")
			sp.Start()

			prog := newProgress(logger)
			result, err := runner.Execute(ctx, pipeline.Options{
				DocumentPath: args[0],
				Views:        splitList(viewsFlag),
				SettingsPath: settingsPath,
				Refresh:      refresh,
				NoNudge:      noNudge,
				Logger:       logger,
			})
			if err != nil {
				sp.StopWithError(fmt.Sprintf("Dimensioning failed: %v", err))
				return err
			}
			sp.Stop()
			prog.done(fmt.Sprintf("Dimensioned %d views", len(result.Views)))

			printRunSummary(result)

			if save {
				if err := saveRun(cmd, mongoURI, result); err != nil {
					return err
				}
			}

			if outPath != "" {
				if err := writeResult(result, outPath); err != nil {
					return err
				}
				printFile(outPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&viewsFlag, "views", "", "comma-separated view ids (default: all views)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "TOML settings file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the run result JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&noNudge, "no-nudge", false, "skip the cosmetic chain nudge")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to MongoDB")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string for --save")

	return cmd
}

// printRunSummary renders the per-view outcome table.
func printRunSummary(result *pipeline.Result) {
	printSuccess("Run %s", StyleHighlight.Render(result.RunID))
	for _, v := range result.Views {
		name := v.ViewID
		if v.ViewName != "" {
			name = fmt.Sprintf("%s (%s)", v.ViewID, v.ViewName)
		}
		if v.Error != "" {
			printWarning("%s: %s", name, v.Error)
			continue
		}
		printInfo("%s", name)
		printViewStats(len(v.Chains), v.Stats.Candidates, v.Stats.Skipped, v.CacheHit)
	}
}

// saveRun persists the result and reports the stored id.
func saveRun(cmd *cobra.Command, uri string, result *pipeline.Result) error {
	ctx := cmd.Context()
	st, err := store.NewMongoStore(ctx, uri, "", "")
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	if err := st.Save(ctx, result); err != nil {
		return err
	}
	printDetail("Saved run %s", result.RunID)
	return nil
}

// writeResult writes the run result as indented JSON.
func writeResult(result *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
