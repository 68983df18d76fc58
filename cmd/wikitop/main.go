// Package main provides the wikitop CLI: most viewed Portuguese Wikipedia articles per day.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thesavant42/wikitop/internal/analyzer"
	"github.com/thesavant42/wikitop/internal/api"
	"github.com/thesavant42/wikitop/internal/config"
	"github.com/thesavant42/wikitop/internal/models"
	"github.com/thesavant42/wikitop/internal/ui"
)

const (
	formatTable    = "table"
	formatMarkdown = "markdown"
)

var (
	configPath  string
	langFlag    string
	logLevel    string
	maxResults  int
	outFormat   string
	interactive bool

	dayDate string

	rangeFrom  string
	rangeTo    string
	skipAbsent bool
)

func main() {
	os.Exit(run(newRootCmd()))
}

// run executes the command tree and prints any error in the error style
func run(rootCmd *cobra.Command) int {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(rootCmd.ErrOrStderr(), err.Error())
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wikitop",
		Short:         "Most viewed Wikipedia articles per day",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "wiki language (only pt is supported)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVarP(&maxResults, "max", "n", 5, "results per day (1-1000, cleaned rankings keep at most 10)")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", formatTable, "output format: table or markdown")
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "prompt for dates")

	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Top articles for a single day",
		RunE:  runDayCmd,
	}
	dayCmd.Flags().StringVarP(&dayDate, "date", "d", "", "day to fetch (YYYY-MM-DD, default yesterday)")

	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Top articles for every day in a range",
		RunE:  runRangeCmd,
	}
	rangeCmd.Flags().StringVar(&rangeFrom, "from", "", "first day (YYYY-MM-DD)")
	rangeCmd.Flags().StringVar(&rangeTo, "to", "", "last day (YYYY-MM-DD, default --from)")
	rangeCmd.Flags().BoolVar(&skipAbsent, "skip-absent", false, "skip days without data instead of failing")

	rootCmd.AddCommand(dayCmd, rangeCmd)
	return rootCmd
}

// app bundles what every subcommand needs
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	analyzer *analyzer.Analyzer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language = langFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("max") {
		cfg.MaxResults = maxResults
	}
	if flags.Changed("skip-absent") {
		cfg.SkipAbsentDays = skipAbsent
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "wikitop",
	})
	logger.Debug("Loaded configuration", "config", cfg.String())

	client := api.NewPageviewsClient(logger,
		api.WithBaseURL(cfg.APIBaseURL),
		api.WithUserAgent(cfg.UserAgent),
		api.WithTimeout(cfg.Timeout),
	)

	policy := analyzer.FailFast
	if cfg.SkipAbsentDays {
		policy = analyzer.SkipAbsent
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer.New(cfg.Language, client, logger, analyzer.WithRangePolicy(policy)),
	}, nil
}

func runDayCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var date civil.Date
	switch {
	case interactive:
		if date, err = ui.PromptForDate(); err != nil {
			return err
		}
		if a.cfg.MaxResults, err = ui.PromptForMaxResults(a.cfg.MaxResults); err != nil {
			return err
		}
	case dayDate != "":
		if date, err = ui.ParseDateInput(dayDate); err != nil {
			return err
		}
	default:
		date = civil.DateOf(time.Now()).AddDays(-1)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var result models.DayResult
	err = withSpinner(fmt.Sprintf("Fetching %s...", models.FormatDate(date)), func() error {
		var fetchErr error
		result, fetchErr = a.analyzer.FetchDate(ctx, date, a.cfg.MaxResults)
		return fetchErr
	}, stop)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.OK() {
		ui.PrintAbsent(out, result)
		return nil
	}

	title := fmt.Sprintf("Results for %s", models.FormatDate(date))
	if outFormat == formatMarkdown {
		fmt.Fprint(out, ui.GenerateMarkdownReport(title, result.Table))
		return nil
	}
	ui.PrintHeader(out, title, a.analyzer.Locale().Project)
	ui.PrintArticleTable(out, result.Table)
	ui.PrintSummary(out, result.Table)
	return nil
}

func runRangeCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var from, to civil.Date
	if interactive {
		if from, to, err = ui.PromptForRange(); err != nil {
			return err
		}
		if a.cfg.MaxResults, err = ui.PromptForMaxResults(a.cfg.MaxResults); err != nil {
			return err
		}
	} else {
		if rangeFrom == "" {
			return fmt.Errorf("--from is required")
		}
		if from, err = ui.ParseDateInput(rangeFrom); err != nil {
			return err
		}
		to = from
		if rangeTo != "" {
			if to, err = ui.ParseDateInput(rangeTo); err != nil {
				return err
			}
		}
	}

	dates, err := models.DaysBetween(from, to)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var table models.Table
	title := fmt.Sprintf("Results between %s and %s", models.FormatDate(from), models.FormatDate(to))
	err = withSpinner(fmt.Sprintf("Fetching %d day(s)...", len(dates)), func() error {
		var fetchErr error
		table, fetchErr = a.analyzer.FetchRange(ctx, dates, a.cfg.MaxResults)
		return fetchErr
	}, stop)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outFormat == formatMarkdown {
		fmt.Fprint(out, ui.GenerateMarkdownReport(title, table))
		return nil
	}
	ui.PrintHeader(out, title, a.analyzer.Locale().Project)
	ui.PrintArticleTable(out, table)
	ui.PrintSummary(out, table)
	return nil
}

func checkFormat() error {
	if outFormat != formatTable && outFormat != formatMarkdown {
		return fmt.Errorf("unknown format %q: use %s or %s", outFormat, formatTable, formatMarkdown)
	}
	return nil
}

// withSpinner shows a spinner while action runs, but only on an interactive terminal.
// ctrl+c in the spinner calls cancel.
func withSpinner(title string, action func() error, cancel context.CancelFunc) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return action()
	}
	return ui.RunWithSpinner(title, action, cancel)
}

var _ analyzer.TopSource = (*api.PageviewsClient)(nil)
