// Package main is the entry point for jnv, an interactive JSON filter.
package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/jnv/internal/app"
	"github.com/kk-code-lab/jnv/internal/config"
	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/source"
)

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII JSON renders everywhere.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return newRootCmd(launch).Execute()
}

// newRootCmd builds the command line; runner receives the validated options.
func newRootCmd(runner func(config.Options) error) *cobra.Command {
	opts := config.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "jnv [INPUT]",
		Short: "Interactive JSON viewer and jq filter editor",
		Long: `jnv shows a JSON document and lets you narrow it down with a jq filter
while you type. Paths of the document are offered as completions.

INPUT is a JSON file. When it is omitted or "-", jnv reads standard input.

Examples:
  jnv data.json
  cat data.json | jnv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return runner(opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.EditMode, "edit-mode", "e", opts.EditMode,
		`Edit mode for the query editor ("insert" or "overwrite")`)
	flags.IntVarP(&opts.Indent, "indent", "i", opts.Indent,
		"Number of spaces used to indent the displayed JSON")
	flags.BoolVarP(&opts.NoHint, "no-hint", "n", opts.NoHint,
		"Disable the hint line under the editor")
	flags.IntVarP(&opts.LimitLength, "limit-length", "s", opts.LimitLength,
		"Number of array elements shown before the rest is collapsed (0 shows all)")
	flags.IntVarP(&opts.SuggestionListLength, "suggestion-list-length", "l", opts.SuggestionListLength,
		"Number of suggestions visible in the list")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "",
		"Path to a config file (default: config.toml in $XDG_CONFIG_HOME/jnv)")
	flags.StringVar(&opts.LogFile, "log-file", "",
		"Append debug logs to this file (also settable via JNV_LOG)")
	flags.BoolVar(&opts.Debug, "debug", false, "Log at debug level")

	return rootCmd
}

func launch(opts config.Options) error {
	closeLog, err := setupLogging(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	file, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	inputs, err := source.Load(opts.Input, os.Stdin)
	if err != nil {
		return err
	}

	application, err := app.NewApplication(app.Config{
		Inputs:  inputs,
		Options: opts,
		File:    file,
	})
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer func() {
		log.CloseError("terminal", application.Close())
	}()

	return application.Run()
}

func setupLogging(opts config.Options) (func(), error) {
	if opts.Debug {
		log.SetLevel(charmlog.DebugLevel)
	}
	path := opts.LogFile
	if path == "" {
		path = os.Getenv("JNV_LOG")
	}
	if path == "" {
		return func() {}, nil
	}
	f, err := log.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return func() {
		log.CloseError("log file", f.Close())
	}, nil
}

func loadConfig(path string) (config.File, error) {
	if path != "" {
		file, _, err := config.LoadFile(path)
		return file, err
	}
	file, src, err := config.Load(config.DefaultDir())
	if err != nil {
		return config.File{}, err
	}
	if src.Path != "" {
		log.Info("using config", "path", src.Path)
	}
	return file, nil
}
