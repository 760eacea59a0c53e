package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/metagen/pkg/action/snapshot"
	"github.com/cmmoran/metagen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var (
		opts         generator.Options
		manifestPath string
		name         string
		version      string
	)

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "record a generation run in the manifest",
		RunE: func(c *cobra.Command, args []string) error {
			path, err := snapshot.Generate(c.Context(), opts, manifestPath, name, version)
			if err != nil {
				return err
			}
			slog.With("snapshot", path, "version", version).Info("snapshot recorded")
			return nil
		},
	}
	snapCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", ".metagen/manifest.yaml", "manifest file")
	snapCmd.Flags().StringVarP(&opts.Dir, "dir", "i", "", "directory to scan (defaults to current directory)")
	snapCmd.Flags().StringSliceVarP(&opts.Patterns, "patterns", "p", nil, "package patterns to load (defaults to ./...)")
	snapCmd.Flags().StringVar(&name, "name", "metadata", "snapshot name")
	snapCmd.Flags().StringVar(&version, "version", "", "snapshot version")
	_ = snapCmd.MarkFlagRequired("version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, r := range m.Runs {
				marker := " "
				if r.Version == m.CurrentVersion {
					marker = "*"
				}
				fmt.Fprintf(c.OutOrStdout(), "%s %s %s (%d units)\n", marker, r.Name, r.Version, len(r.Units))
			}
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current run against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if d == "" {
				fmt.Fprintln(c.OutOrStdout(), "no changes")
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), d)
			return nil
		},
	}

	snapCmd.AddCommand(listCmd, diffCmd)
	return snapCmd
}
