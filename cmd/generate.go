package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/metagen/pkg/action/generate"
	"github.com/cmmoran/metagen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var opts generator.Options

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate metadata companions",
		Long:  "Scan annotated types and write a reflection-free metadata companion file next to each one",
		RunE: func(c *cobra.Command, args []string) error {
			if dir := viper.GetString("dir"); opts.Dir == "" && dir != "" {
				opts.Dir = dir
			}
			report, err := generate.Run(c.Context(), opts)
			if err != nil {
				return err
			}
			if tbl := generate.DiagnosticsTable(report); tbl != "" {
				fmt.Fprintln(c.ErrOrStderr(), tbl)
			}
			slog.With("module", report.Module.Path).Info(generate.Summary(report))
			if report.Failed() {
				return fmt.Errorf("generation finished with errors")
			}
			return nil
		},
	}
	genCmd.Flags().StringVarP(&opts.Dir, "dir", "i", "", "directory to scan (defaults to current directory)")
	genCmd.Flags().StringSliceVarP(&opts.Patterns, "patterns", "p", nil, "package patterns to load (defaults to ./...)")
	genCmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "render companions without writing files")
	genCmd.Flags().IntVarP(&opts.Parallelism, "parallelism", "j", 0, "max concurrent extractions, 0 for unbounded")

	return genCmd
}
