package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalint/format"
	"github.com/dhamidi/javalint/java/parser"
)

func newTreeCmd() *cobra.Command {
	var outputFormat string
	var includeComments bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Parse a .java file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return err
			}
			defer f.Close()

			opts := []parser.Option{parser.WithFile(filename)}
			if includeComments {
				opts = append(opts, parser.WithComments())
			}
			tree, parseErr := parser.ParseCompilationUnit(f, opts...).Finish()
			if tree == nil {
				return parseErr
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if text, ok := enc.(*format.TextEncoder); ok {
				text.Positions = includePositions
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode tree: %w", err)
			}
			if parseErr != nil {
				return fmt.Errorf("parse %s: %w", filename, parseErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "include comments in the tree")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "include token positions in text output")

	return cmd
}
