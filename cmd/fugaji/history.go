package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/cli"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/config"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

func historyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Inspect recorded predictions",
		Long:    `List, show, summarize and clear the predictions recorded by interpret and batch.`,
	}

	cmd.AddCommand(historyListCmd(v))
	cmd.AddCommand(historyShowCmd(v))
	cmd.AddCommand(historyStatsCmd(v))
	cmd.AddCommand(historyClearCmd(v))

	return cmd
}

func historyListCmd(v *viper.Viper) *cobra.Command {
	var (
		limit  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent predictions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			filter := model.PredictionFilter{Limit: limit}
			if status != "" {
				s := model.Status(status)
				if !s.IsValid() {
					return common.NewUserError(
						fmt.Sprintf("unknown status %q (use healthy, warning, critical or unknown)", status),
						common.ErrInvalidInput)
				}
				filter.Status = &s
			}

			store, err := openHistory(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closeHistory(store)

			predictions, err := store.ListPredictions(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to list predictions: %w", err)
			}

			if settings.OutputFormat != config.FormatText {
				if predictions == nil {
					predictions = []model.Prediction{}
				}
				return cli.Encode(cmd.OutOrStdout(), settings.OutputFormat, predictions)
			}
			return cli.RenderPredictionTable(cmd.OutOrStdout(), predictions)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum predictions to show")
	cmd.Flags().StringVarP(&status, "status", "s", "", "only show predictions with this status")

	return cmd
}

func historyShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			store, err := openHistory(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closeHistory(store)

			p, err := store.GetPrediction(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load prediction: %w", err)
			}

			out := cmd.OutOrStdout()
			if settings.OutputFormat != config.FormatText {
				return cli.Encode(out, settings.OutputFormat, p)
			}

			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%s · %s · %s",
				p.ID, p.Source, p.CreatedAt.Local().Format(time.RFC3339))))
			return cli.RenderInterpretation(out, p.Signal, p.Interpretation)
		},
	}
}

func historyStatsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count recorded predictions by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			store, err := openHistory(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closeHistory(store)

			counts, err := store.CountByStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count predictions: %w", err)
			}

			if settings.OutputFormat != config.FormatText {
				return cli.Encode(cmd.OutOrStdout(), settings.OutputFormat, counts)
			}
			return cli.RenderStatusSummary(cmd.OutOrStdout(), "Prediction history", counts)
		},
	}
}

func historyClearCmd(v *viper.Viper) *cobra.Command {
	var (
		before string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded predictions",
		Long: `Delete recorded predictions. With --before, only predictions created before
that date (YYYY-MM-DD, local time) are removed. --yes is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cutoff time.Time
			if before != "" {
				t, err := time.ParseInLocation(time.DateOnly, before, time.Local)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("invalid --before date %q (use YYYY-MM-DD)", before), err)
				}
				cutoff = t
			}
			if !yes {
				return common.NewUserError("refusing to delete history without --yes", common.ErrInvalidInput)
			}

			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			store, err := openHistory(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer closeHistory(store)

			n, err := store.DeletePredictions(cmd.Context(), cutoff)
			if err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}

			common.LogInfo("Cleared prediction history", common.Fields{"deleted": n, "before": before})
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %d predictions", n)))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "only delete predictions created before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	return cmd
}
