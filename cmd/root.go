package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/catalog"
	"github.com/hangarhub/hangarctl/internal/config"
	"github.com/hangarhub/hangarctl/internal/hangar"
	applog "github.com/hangarhub/hangarctl/internal/logger"
	"github.com/hangarhub/hangarctl/internal/ui/catalogui"
)

// Version info set via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
)

var (
	verbose bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:     "hangarctl",
	Short:   "Community folder addon catalog for flight simulators",
	Version: version + " (" + commit + ")",
	Long: `hangarctl catalogs the addon packages installed in your flight
simulator's community folder, tracks a selection across runs, and publishes
the selected set to Discord or Slack.

When run without subcommands, opens an interactive TUI.

Quick start:
  hangarctl scan       Scan the community folder into the catalog
  hangarctl list       List cataloged addons
  hangarctl publish    Publish the current selection`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		model := catalogui.NewModel(manager)
		p := tea.NewProgram(model, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = applog.Init(verbose)
		logger = applog.Log
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
}

func getLogger() *log.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return logger
}

var sharedManager *hangar.Manager

// getManager returns the shared catalog manager, initializing it if needed
func getManager() (*hangar.Manager, error) {
	if sharedManager != nil {
		return sharedManager, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	sharedManager = hangar.NewManager(cfg, getLogger())
	return sharedManager, nil
}

// resolveAddon finds an addon by id or, failing that, by case-insensitive
// title match
func resolveAddon(ctx context.Context, m *hangar.Manager, arg string) (*catalog.Addon, error) {
	addon, found, err := m.Get(ctx, arg)
	if err != nil {
		return nil, err
	}
	if found {
		return addon, nil
	}

	cat, err := m.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, candidate := range cat.AllAddons() {
		if strings.EqualFold(candidate.Metadata().Title(), arg) {
			return candidate, nil
		}
		if len(arg) >= 6 && strings.HasPrefix(candidate.ID(), strings.ToLower(arg)) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("no addon matches %q (try 'hangarctl list' for ids)", arg)
}
