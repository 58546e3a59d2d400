package main

import (
	"github.com/spf13/cobra"
)

func newPoolCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <classfile>",
		Short: "Print only the constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, args[0], true)
		},
	}
}
