package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalint/report"
	"github.com/dhamidi/javalint/workspace"
)

func newWatchCmd() *cobra.Command {
	var configPath string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check a directory, then recheck files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := loadConfig(configPath, dir)
			if err != nil {
				return err
			}
			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}
			enc, err := report.NewEncoder(outputFormat, cmd.OutOrStdout(), report.ColorEnabled(os.Stdout))
			if err != nil {
				return err
			}

			ws := workspace.New(dir, runner)
			if err := ws.ScanAll(cmd.Context()); err != nil {
				return err
			}
			if err := enc.Encode(ws.Violations()); err != nil {
				return err
			}

			w := workspace.NewWatcher(ws, func(changed []string) {
				log.Infof("%d files changed", len(changed))
				if err := enc.Encode(ws.Violations()); err != nil {
					log.Errorf("encode report: %s", err)
				}
			})
			log.Noticef("watching %s", dir)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default: .javalint.yaml found from dir)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "plain", "output format")

	return cmd
}
