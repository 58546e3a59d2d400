package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Weltraumschaf/jba/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const (
	exitUsage    = 1
	exitAnalysis = 2
)

var log = commonlog.GetLogger("jba.cli")

// analysisError marks failures that happen after the arguments were
// accepted: opening, reading, decoding or rendering a class file.
type analysisError struct {
	err error
}

func (e *analysisError) Error() string { return e.err.Error() }
func (e *analysisError) Unwrap() error { return e.err }

func analysisFailed(err error) error {
	if err == nil {
		return nil
	}
	return &analysisError{err: err}
}

// globalFlags are shared by every command. File values from --config are
// overridden only by flags given explicitly.
type globalFlags struct {
	configPath   string
	format       string
	wideSlots    bool
	extendedTags bool
	maxSize      string
	verbosity    int
	logFile      string

	cfg config.Config
}

func (g *globalFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	flags.StringVarP(&g.format, "format", "f", "dump", "output format (dump, line, json, yaml, cbor)")
	flags.BoolVar(&g.wideSlots, "wide-slots", false, "number Long and Double constants as two slots")
	flags.BoolVar(&g.extendedTags, "extended-tags", false, "accept Dynamic, Module and Package constants")
	flags.StringVar(&g.maxSize, "max-size", "16MiB", "largest accepted class file")
	flags.CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
}

func (g *globalFlags) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = g.format
	}
	if flags.Changed("wide-slots") {
		cfg.WideSlots = g.wideSlots
	}
	if flags.Changed("extended-tags") {
		cfg.ExtendedTags = g.extendedTags
	}
	if flags.Changed("max-size") {
		n, err := config.ParseSize(g.maxSize)
		if err != nil {
			return fmt.Errorf("invalid --max-size: %w", err)
		}
		cfg.MaxSize = n
	}
	if flags.Changed("verbose") {
		cfg.Verbosity = g.verbosity
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
	log.Debugf("config: %+v", cfg)

	g.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "jba <classfile>",
		Short: "Java byte code analyzer",
		Long: "Decodes the header and constant pool of a JVM class file.\n" +
			"With a single argument and no command, behaves like \"jba analyze\".",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("Bad arguments! Exactly one argument (a class file name) is expected.")
			}
			return runAnalyze(cmd, g, args[0], false)
		},
	}
	g.register(rootCmd)

	rootCmd.AddCommand(newAnalyzeCmd(g))
	rootCmd.AddCommand(newPoolCmd(g))
	rootCmd.AddCommand(newResolveCmd(g))

	return rootCmd
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		var ae *analysisError
		if errors.As(err, &ae) {
			return exitAnalysis
		}
		return exitUsage
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
