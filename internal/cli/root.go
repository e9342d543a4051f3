// Package cli implements the journeyload command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/export"
	"github.com/nconklindev/journeyload/internal/ingest"
	"github.com/nconklindev/journeyload/internal/logging"
	"github.com/nconklindev/journeyload/internal/pipeline"
	"github.com/nconklindev/journeyload/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Execute runs the CLI and returns the process exit code.
func Execute(info BuildInfo) int {
	rootCmd := newRootCmd(info)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd(info BuildInfo) *cobra.Command {
	var rf rootFlags

	rootCmd := &cobra.Command{
		Use:   "journeyload",
		Short: "Load Journey Event spreadsheets into a tidy, validated table",
		Long: "Reads a Journey Event sheet, guesses its header row, drops blank-header columns,\n" +
			"parses date columns day-first and optionally validates and writes the result.\n" +
			"Run without arguments for the interactive picker.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rf.load(cmd)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&rf.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&rf.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rf.logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(newIngestCmd(&rf))
	rootCmd.AddCommand(newValidateCmd(&rf))
	rootCmd.AddCommand(newDescribeCmd(&rf))
	rootCmd.AddCommand(newHeaderCmd(&rf))
	rootCmd.AddCommand(newVersionCmd(info))

	return rootCmd
}

// load reads the config file (if any) and applies the persistent flags.
func (rf *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if rf.configPath != "" {
		var err error
		if cfg, err = config.Load(rf.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = rf.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = rf.logFormat
	}
	return cfg, nil
}

func newPipeline(cfg config.Config, w io.Writer) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Loader:    ingest.NewLoader(ingest.NewReader()),
		Validator: pipeline.NewValidator(cfg),
		Write:     export.Write,
		Logger:    logging.Setup(w, cfg.LogLevel, cfg.LogFormat),
	}
}

func runTUI(cfg config.Config) error {
	if os.Getenv("DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "journeyload")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(ui.InitialModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "journeyload %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date)
		},
	}
}
