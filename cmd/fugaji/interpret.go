package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/cli"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/config"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/diagnosis"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

type interpretResult struct {
	Explanation    *diagnosis.Explanation `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Signal         model.RawSignal        `json:"signal" yaml:"signal"`
	ID             string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Interpretation model.Interpretation   `json:"interpretation" yaml:"interpretation"`
}

func interpretCmd(v *viper.Viper) *cobra.Command {
	var (
		confidence float64
		noSave     bool
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "interpret <label>",
		Short: "Interpret a single classifier prediction",
		Long: `Interpret one classifier output and print farmer guidance.

The label is matched case-insensitively against known diseases and health
keywords. The result is saved to the prediction history unless --no-save is
given or history.enabled is false.`,
		Example: `  fugaji interpret "Newcastle Disease" --confidence 0.42
  fugaji interpret healthy -c 0.96 --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args, " ")
			if strings.TrimSpace(label) == "" {
				return common.NewUserError("label must not be empty", common.ErrInvalidInput)
			}

			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			warnOutOfRange(label, confidence)

			result := interpretResult{
				Signal:         model.RawSignal{Label: label, Confidence: confidence},
				Interpretation: diagnosis.Interpret(label, confidence),
			}
			if explain {
				exp := diagnosis.Explain(label, confidence)
				result.Explanation = &exp
			}

			if settings.HistoryEnabled && !noSave {
				id, err := savePrediction(cmd, settings, result)
				if err != nil {
					return err
				}
				result.ID = id
			}

			return writeInterpretResult(cmd, settings.OutputFormat, result)
		},
	}

	cmd.Flags().Float64VarP(&confidence, "confidence", "c", 0, "classifier confidence in [0, 1]")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the prediction in history")
	cmd.Flags().BoolVar(&explain, "explain", false, "show how the label was classified and graded")
	_ = cmd.MarkFlagRequired("confidence")

	return cmd
}

func savePrediction(cmd *cobra.Command, settings *config.Settings, result interpretResult) (string, error) {
	if !storable(result.Signal.Confidence) {
		slog.Warn("Not recording prediction with non-finite confidence", "label", result.Signal.Label)
		return "", nil
	}

	store, err := openHistory(cmd.Context(), settings)
	if err != nil {
		return "", err
	}
	defer closeHistory(store)

	p := &model.Prediction{
		Source:         model.SourceInteractive,
		Signal:         result.Signal,
		Interpretation: result.Interpretation,
	}
	if err := store.SavePrediction(cmd.Context(), p); err != nil {
		return "", fmt.Errorf("failed to record prediction: %w", err)
	}

	slog.Debug("Recorded prediction", "id", p.ID, "status", p.Interpretation.Status)
	return p.ID, nil
}

func writeInterpretResult(cmd *cobra.Command, format string, result interpretResult) error {
	out := cmd.OutOrStdout()
	if format != config.FormatText {
		return cli.Encode(out, format, result)
	}

	if err := cli.RenderInterpretation(out, result.Signal, result.Interpretation); err != nil {
		return err
	}

	if exp := result.Explanation; exp != nil {
		disease := "none"
		if exp.Disease != nil {
			disease = fmt.Sprintf("%s (%s, %s urgency)", exp.Disease.CanonicalName, exp.Disease.PathogenType, exp.Disease.Urgency)
		}
		rule := exp.Rule
		if rule == "" {
			rule = "n/a"
		}
		fmt.Fprintf(out, "%s outcome=%s disease=%s rule=%s band=%s\n",
			cli.InfoIcon, exp.Outcome, disease, rule, exp.Band)
	}

	if result.ID != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Recorded as "+result.ID))
	}
	return nil
}
