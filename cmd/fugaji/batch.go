package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/cli"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/config"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/diagnosis"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/signalio"
)

// batchChunkSize is how many signals are interpreted between progress updates.
const batchChunkSize = 256

type batchItem struct {
	Signal         model.RawSignal      `json:"signal" yaml:"signal"`
	Interpretation model.Interpretation `json:"interpretation" yaml:"interpretation"`
}

type batchReport struct {
	Counts  map[model.Status]int `json:"counts" yaml:"counts"`
	Results []batchItem          `json:"results" yaml:"results"`
	Saved   int                  `json:"saved" yaml:"saved"`
}

func batchCmd(v *viper.Viper) *cobra.Command {
	var (
		workers int
		noSave  bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Interpret a file of classifier predictions",
		Long: `Interpret every prediction in a CSV, JSON lines or YAML file.

CSV files hold label,confidence rows with an optional header. JSON lines files
hold one {"label": ..., "confidence": ...} object per line. YAML files hold a
list of the same objects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				v.Set(config.KeyBatchWorkers, workers)
			}
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			signals, err := signalio.NewParser().ParseFile(cmd.Context(), args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("could not read signals from %s", args[0]), err)
			}
			for _, sig := range signals {
				warnOutOfRange(sig.Label, sig.Confidence)
			}

			slog.Info("Interpreting signals", "file", args[0], "count", len(signals), "workers", settings.BatchWorkers)

			showProgress := !quiet && settings.OutputFormat == config.FormatText
			results, err := interpretAll(cmd, signals, settings.BatchWorkers, showProgress)
			if err != nil {
				return err
			}

			report := batchReport{
				Counts:  make(map[model.Status]int),
				Results: make([]batchItem, len(signals)),
			}
			for i, sig := range signals {
				report.Results[i] = batchItem{Signal: sig, Interpretation: results[i]}
				report.Counts[results[i].Status]++
			}

			if settings.HistoryEnabled && !noSave {
				saved, err := saveBatch(cmd, settings, report.Results)
				if err != nil {
					return err
				}
				report.Saved = saved
			}

			return writeBatchReport(cmd, settings.OutputFormat, report)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent interpreters (default from batch.workers)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record predictions in history")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

func interpretAll(cmd *cobra.Command, signals []model.RawSignal, workers int, showProgress bool) ([]model.Interpretation, error) {
	var progress *cli.Progress
	if showProgress {
		progress = cli.NewProgress(cmd.ErrOrStderr(), len(signals), "Interpreting")
	}

	results := make([]model.Interpretation, 0, len(signals))
	for start := 0; start < len(signals); start += batchChunkSize {
		end := min(start+batchChunkSize, len(signals))
		chunk, err := diagnosis.InterpretBatch(cmd.Context(), signals[start:end], workers)
		if err != nil {
			return nil, fmt.Errorf("batch interpretation interrupted: %w", err)
		}
		results = append(results, chunk...)
		if progress != nil {
			progress.Add(len(chunk))
		}
	}

	if progress != nil {
		progress.Finish()
	}
	return results, nil
}

func saveBatch(cmd *cobra.Command, settings *config.Settings, items []batchItem) (int, error) {
	predictions := make([]*model.Prediction, 0, len(items))
	for _, item := range items {
		if !storable(item.Signal.Confidence) {
			slog.Warn("Not recording prediction with non-finite confidence", "label", item.Signal.Label)
			continue
		}
		predictions = append(predictions, &model.Prediction{
			Source:         model.SourceBatch,
			Signal:         item.Signal,
			Interpretation: item.Interpretation,
		})
	}
	if len(predictions) == 0 {
		return 0, nil
	}

	store, err := openHistory(cmd.Context(), settings)
	if err != nil {
		return 0, err
	}
	defer closeHistory(store)

	if err := store.SavePredictions(cmd.Context(), predictions); err != nil {
		return 0, fmt.Errorf("failed to record predictions: %w", err)
	}
	return len(predictions), nil
}

func writeBatchReport(cmd *cobra.Command, format string, report batchReport) error {
	out := cmd.OutOrStdout()
	if format != config.FormatText {
		return cli.Encode(out, format, report)
	}

	for _, item := range report.Results {
		if item.Interpretation.Status != model.StatusCritical {
			continue
		}
		fmt.Fprintf(out, "%s %s (%.2f): %s\n",
			cli.CriticalIcon, item.Signal.Label, item.Signal.Confidence, item.Interpretation.Message)
	}

	if err := cli.RenderStatusSummary(out, "Batch summary", report.Counts); err != nil {
		return err
	}
	if report.Saved > 0 {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %d predictions", report.Saved)))
	}
	return nil
}
