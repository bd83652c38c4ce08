// Package cli wires the modelexport command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelexport/internal/config"
	"modelexport/internal/exporter"
	"modelexport/internal/logging"
	"modelexport/internal/service"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath  string
	LibraryRoot string
	LogLevel    string
}

// env carries what a command needs once flags and config are resolved.
type env struct {
	cfg config.Config
	log zerolog.Logger
	out io.Writer
	err io.Writer
}

// loadEnv resolves config: file, then environment, then flags, then defaults.
func (o *Options) loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadOrDefault(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.LibraryRoot != "" {
		cfg.LibraryRoot = o.LibraryRoot
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	log := logging.NewWithWriter(cmd.ErrOrStderr(), logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})
	return &env{cfg: cfg, log: log, out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}, nil
}

func (e *env) service() *service.Service {
	exp := exporter.New(exporter.WithLogger(e.log))
	return service.NewStatic(e.cfg, exp, e.log)
}

// NewRootCmd constructs the command tree.
func NewRootCmd() *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "modelexport",
		Short:         "List and export model files from a model library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Settings file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&opts.LibraryRoot, "library-root", "", "Model library root (defaults to library_root from settings or "+config.EnvLibraryRoot+")")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error|off")

	root.AddCommand(
		newCategoriesCmd(),
		newListCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
		newCompletionCmd(root),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExportFailed) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout()) }})
	return completionCmd
}

// Main is the entry point used by cmd/modelexport.
func Main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
