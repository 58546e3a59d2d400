package main

import (
	"github.com/Weltraumschaf/jba/analyze"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <classfile>",
		Short: "Print the header and constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, args[0], false)
		},
	}
}

func runAnalyze(cmd *cobra.Command, g *globalFlags, path string, poolOnly bool) error {
	opts := analyze.Options{Config: g.cfg, PoolOnly: poolOnly}
	if err := analyze.File(path, opts, cmd.OutOrStdout()); err != nil {
		log.Debugf("analysis of %s failed: %s", path, err)
		return analysisFailed(err)
	}
	return nil
}
