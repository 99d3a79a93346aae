package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalint/java/ast"
)

func newTokensCmd() *cobra.Command {
	var javadoc bool

	cmd := &cobra.Command{
		Use:   "tokens [name|id...]",
		Short: "List token kinds, or look kinds up by name or id",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if javadoc {
				return listJavadocKinds(out, args)
			}
			return listKinds(out, args)
		},
	}

	cmd.Flags().BoolVar(&javadoc, "javadoc", false, "use the javadoc kind namespace")

	return cmd
}

func listKinds(out io.Writer, args []string) error {
	if len(args) == 0 {
		for _, k := range ast.Kinds() {
			name, _ := ast.KindName(k)
			fmt.Fprintf(out, "%d\t%s\n", int(k), name)
		}
		return nil
	}
	for _, arg := range args {
		k, err := lookupKind(arg)
		if err != nil {
			return err
		}
		name, err := ast.KindName(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", int(k), name)
	}
	return nil
}

func lookupKind(arg string) (ast.Kind, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return ast.Kind(id), nil
	}
	return ast.KindByName(arg)
}

func listJavadocKinds(out io.Writer, args []string) error {
	if len(args) == 0 {
		for _, k := range ast.JavadocKinds() {
			name, _ := ast.JavadocKindName(k)
			fmt.Fprintf(out, "%d\t%s\n", int(k), name)
		}
		return nil
	}
	for _, arg := range args {
		k, err := lookupJavadocKind(arg)
		if err != nil {
			return err
		}
		name, err := ast.JavadocKindName(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", int(k), name)
	}
	return nil
}

func lookupJavadocKind(arg string) (ast.JavadocKind, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return ast.JavadocKind(id), nil
	}
	return ast.JavadocKindByName(arg)
}
