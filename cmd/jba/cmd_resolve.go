package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Weltraumschaf/jba/analyze"
	"github.com/spf13/cobra"
)

func newResolveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <classfile> <index>",
		Short: "Resolve one constant pool entry to its symbolic form",
		Example: "  jba resolve Foo.class 7\n" +
			"  jba resolve Foo.class '#7'",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := analyze.Resolve(args[0], index, g.cfg, cmd.OutOrStdout()); err != nil {
				return analysisFailed(err)
			}
			return nil
		},
	}
}

func parseIndex(s string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid constant pool index %q: expected 1..65535", s)
	}
	return uint16(n), nil
}
