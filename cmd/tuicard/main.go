// Package main provides the CLI entrypoint for tuicard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuicard/internal/config"
	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"
	"github.com/verte-zerg/tuicard/internal/stats"
	"github.com/verte-zerg/tuicard/internal/statsui"
	"github.com/verte-zerg/tuicard/internal/store"
	"github.com/verte-zerg/tuicard/internal/tui"
	"github.com/verte-zerg/tuicard/internal/wordlist"
)

const (
	defaultLimit       = 0
	defaultCurveWindow = 7
)

var (
	reviewLimit int

	addFile string

	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuicard",
		Short:         "TUI vocabulary flashcard trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReviewCmd,
	}

	rootCmd.Flags().IntVar(&reviewLimit, "limit", defaultLimit, "max cards per session (0 = no cap)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newDueCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "limit", &reviewLimit, fileCfg.Review.Limit)

	cfg := model.Config{Limit: reviewLimit}
	if cfg.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	words, err := st.ListWords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}
	if len(words) == 0 {
		logErrln("No words in the collection yet.")
		logErrln("Add some: tuicard add <word>... or tuicard add --file <path>")
		return fmt.Errorf("collection is empty")
	}
	items, err := st.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to load review items: %w", err)
	}

	sched := srs.New()
	now := time.Now()
	if len(sched.SelectDue(words, items, now)) == 0 {
		printNothingDue(cmd, words, items, now)
		return nil
	}

	model := tui.NewModel(cfg, st, sched, words, items)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// printNothingDue tells the learner when to come back. Every word has an
// item here: words without one would have been due.
func printNothingDue(cmd *cobra.Command, words []string, items map[string]srs.Item, now time.Time) {
	next := time.Time{}
	for _, word := range words {
		item := items[word]
		if next.IsZero() || item.Due.Before(next) {
			next = item.Due
		}
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Nothing due among %d words.\n", len(words)); err != nil {
		logErrf("failed to write output: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(out, "Next review %s.\n", stats.FormatDue(next, now)); err != nil {
		logErrf("failed to write output: %v\n", err)
	}
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [words...]",
		Short: "Add words to the collection",
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVar(&addFile, "file", "", "word list file (one word per line)")
	return cmd
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	words := wordlist.NormalizeAll(args)
	if addFile != "" {
		fromFile, err := wordlist.LoadWords(addFile)
		if err != nil {
			return fmt.Errorf("failed to load word list %s: %w", addFile, err)
		}
		words = wordlist.NormalizeAll(append(words, fromFile...))
	}
	if len(words) == 0 {
		return fmt.Errorf("no words given (pass words as arguments or use --file)")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	added, err := st.AddWords(context.Background(), words, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add words: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d words.\n", added, len(words)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [words...]",
		Short: "Remove words and their review history",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	words := wordlist.NormalizeAll(args)
	if len(words) == 0 {
		return fmt.Errorf("no words given")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	removed, err := st.RemoveWords(context.Background(), words)
	if err != nil {
		return fmt.Errorf("failed to remove words: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of %d words.\n", removed, len(words)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the collection with review state",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	words, err := st.WordAggregates(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load word stats: %w", err)
	}
	if err := stats.RenderWordTable(cmd.OutOrStdout(), words, time.Now()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Print how many words are due now",
		Args:  cobra.NoArgs,
		RunE:  runDueCmd,
	}
}

func runDueCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	count, err := st.DueCount(context.Background(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to count due words: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), count); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N days")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuicard configuration
# Uncomment a value to enable it. CLI flags override config values.

[review]
# limit = %d              # Max cards per session (0 = no cap)

[stats]
# last = 0                # Limit stats to last N days (0 = all)
# curve-window = %d       # Moving average window for curves
`,
		defaultLimit,
		defaultCurveWindow,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
