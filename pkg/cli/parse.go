package cli

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/funvibe/rush/internal/parser"
)

func newParseCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "parse [--verbose] EXPR",
		Short: "print the syntax tree of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := parser.Parse(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if verbose {
				_, err = pretty.Fprintf(w, "%# v\n", node)
				return err
			}
			_, err = fmt.Fprintln(w, node)
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump the Go structure of every node")
	return cmd
}
