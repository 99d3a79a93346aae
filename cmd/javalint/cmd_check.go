package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalint/report"
)

func newCheckCmd() *cobra.Command {
	var configPath string
	var outputFormat string
	var severity string
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Java files and directories and report violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			cfg, err := loadConfig(configPath, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Jobs = jobs
			}
			if severity != "" {
				cfg.Severity = severity
			}
			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}

			paths, err := javaFiles(args)
			if err != nil {
				return err
			}
			log.Infof("checking %d files with %d checks", len(paths), len(runner.Specs))

			violations, err := runner.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			enc, err := report.NewEncoder(outputFormat, cmd.OutOrStdout(), report.ColorEnabled(os.Stdout))
			if err != nil {
				return err
			}
			if err := enc.Encode(violations); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if hasErrors(violations) {
				return errViolations
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default: .javalint.yaml found from the first path)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "plain", "output format ("+strings.Join(report.Names, ", ")+")")
	cmd.Flags().StringVar(&severity, "severity", "", "severity of checks without their own (ignore, info, warning, error)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files checked at once (0: one per CPU)")

	return cmd
}
