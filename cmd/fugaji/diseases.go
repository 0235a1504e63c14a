package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/cli"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/config"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/diagnosis"
)

func diseasesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "diseases",
		Short: "List the diseases the interpreter recognizes",
		Long: `List the disease lookup table in match order. When a label contains several
keywords, the earliest row wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			refs := diagnosis.Diseases()
			if settings.OutputFormat != config.FormatText {
				return cli.Encode(cmd.OutOrStdout(), settings.OutputFormat, refs)
			}
			return cli.RenderDiseaseTable(cmd.OutOrStdout(), refs)
		},
	}
}
