package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/hop/internal/config"
	"github.com/LFroesch/hop/internal/index"
	"github.com/LFroesch/hop/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "hop",
	Short: "Jump around your filesystem by frecency",
	Long: `hop is a terminal directory browser that ranks the places you
actually work in. Browse with vim-style keys, narrow with /, jump to any
visible row with its shortcut label, and press space to land in the
directory you are looking at.

The browser prints the chosen directory on stdout so a small shell
wrapper can cd into it:

    hop() { dir=$(command hop "$@") && [ -n "$dir" ] && cd "$dir"; }

Wire "hop push $PWD" into your prompt hook to feed the ranking.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser()
	},
}

var pushCmd = &cobra.Command{
	Use:   "push <path>",
	Short: "Record a visit to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPush(args[0])
	},
}

var zCmd = &cobra.Command{
	Use:   "z [query]",
	Short: "Print the best frecency match for a query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return runZ(query)
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop index entries whose directories no longer exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrune()
	},
}

func init() {
	rootCmd.AddCommand(pushCmd, zCmd, pruneCmd)
}

func main() {
	// Logging is best-effort; hop still works when the log file is unwritable
	if err := logger.Init(); err != nil {
		logger.Disable()
	}
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, index.ErrNoMatch) {
			// Deliberately silent so the shell wrapper just skips the cd
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runBrowser() error {
	cfg := config.Load()
	ix := index.Load(cfg.IndexPath)

	m := initialModel(ix, cfg)

	// The UI renders on stderr; stdout carries only the chosen path
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}

	if fm, ok := final.(*model); ok && fm.chosen != "" {
		fmt.Println(fm.chosen)
	}
	return nil
}

func runPush(path string) error {
	cfg := config.Load()
	ix := index.Load(cfg.IndexPath)

	if err := ix.RecordVisit(path); err != nil {
		if errors.Is(err, index.ErrInvalidPath) {
			// Prompt hooks fire from directories that vanish; never break them
			logger.Warn("Ignoring push for %s: %v", path, err)
			return nil
		}
		return err
	}
	return ix.Flush()
}

func runZ(query string) error {
	cfg := config.Load()
	ix := index.Load(cfg.IndexPath)

	path, err := ix.BestMatch(query)
	if err != nil {
		return err
	}

	if rerr := ix.RecordVisit(path); rerr == nil {
		if ferr := ix.Flush(); ferr != nil {
			logger.Error("Failed to flush index: %v", ferr)
		}
	}

	fmt.Println(path)
	return nil
}

func runPrune() error {
	cfg := config.Load()
	ix := index.Load(cfg.IndexPath)

	removed := ix.Prune()
	if err := ix.Flush(); err != nil {
		return fmt.Errorf("failed to flush index: %w", err)
	}

	fmt.Printf("Pruned %d stale entries\n", removed)
	return nil
}
