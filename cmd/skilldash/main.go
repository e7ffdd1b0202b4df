package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skilldash/cmd/skilldash/ui"
	"skilldash/internal/config"
	"skilldash/internal/dataset"
	"skilldash/internal/export"
	"skilldash/internal/localstore"
	"skilldash/internal/logging"
	"skilldash/internal/refresh"
	"skilldash/internal/selection"
)

var (
	// Global flags
	verbose   bool
	workspace string
	dataFlag  string
	fragFlag  string
	noWatch   bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "skilldash",
	Short: "skilldash - AI job-market dashboard for the terminal",
	Long: `skilldash renders the AI skills job-market dataset as an interactive
terminal dashboard: trend, family and outside-IT charts, a drill-down
drawer, citation sources and per-discipline teaching guidance.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "skilldash" && cmd.CalledAs() == "skilldash" {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// validateCmd checks a dataset file and reports every shape problem.
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a dashboard dataset file",
	Long: `Runs the full shape validation over a dataset document and prints
every problem found. Exits non-zero when the document would be rejected
at dashboard startup.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

// refreshCmd rebuilds the chart series from the USAJOBS Historic JOA API.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild chart data from the USAJOBS historic postings API",
	Long: `Fetches federal job postings month by month, classifies AI mentions
and job families, and rewrites the three chart series in the dataset
file. Narrative content is left untouched.`,
	RunE: runRefresh,
}

// exportCmd renders the charts to a PNG snapshot without starting the UI.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the charts as a PNG snapshot",
	RunE:  runExport,
}

// shareCmd prints the share fragment for a given selection.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the share fragment for a discipline and chart selection",
	Long: `Encodes a selection into the share fragment used by the dashboard's
copy-link key, without starting the UI. Useful for scripting links.`,
	RunE: runShare,
}

var (
	shareDiscipline string
	shareChart      string
	shareLabel      string
	exportDir       string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Dataset file or URL (overrides config)")
	rootCmd.Flags().StringVar(&fragFlag, "fragment", "", "Boot selection fragment, e.g. \"discipline=Nursing&chart=aiMentionsTrend&label=Jul 2026\"")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload of the dataset file")

	shareCmd.Flags().StringVar(&shareDiscipline, "discipline", "", "Selected discipline")
	shareCmd.Flags().StringVar(&shareChart, "chart", "", "Selected chart id")
	shareCmd.Flags().StringVar(&shareLabel, "label", "", "Selected chart label")

	exportCmd.Flags().StringVar(&exportDir, "out", "", "Output directory (overrides config)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shareCmd)
}

// resolveWorkspace defaults the workspace to the current directory.
func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func loadConfig() (*config.Config, string, error) {
	ws := resolveWorkspace()
	cfg, err := config.Load(ws)
	if err != nil {
		return nil, "", err
	}
	if dataFlag != "" {
		cfg.Data.Source = dataFlag
	}
	return cfg, ws, nil
}

func runDashboard() error {
	cfg, ws, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(ws, cfg.Logging.Debug || verbose); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()
	logging.Boot("starting dashboard, data source %s", cfg.Data.Source)

	ctx := context.Background()
	ds, err := dataset.Load(ctx, cfg.Data.Source)
	if err != nil {
		return err
	}

	locals := localstore.New(ws)
	stored, err := locals.LoadDiscipline()
	if err != nil {
		logging.Boot("local state unreadable, starting fresh: %v", err)
	}

	cell := &ui.FragmentCell{}
	store := selection.New(ds, selection.Boot(ds, fragFlag, stored), locals, cell)
	cell.WriteFragment(store.Fragment())

	var watcher *dataset.Watcher
	if !noWatch && !strings.HasPrefix(cfg.Data.Source, "http") {
		watcher, err = dataset.NewWatcher(cfg.Data.Source)
		if err != nil {
			logging.Boot("live reload unavailable: %v", err)
		} else if err := watcher.Start(); err != nil {
			logging.Boot("live reload unavailable: %v", err)
			watcher = nil
		}
	}

	model := ui.NewModel(ui.Options{
		Dataset:   ds,
		Store:     store,
		Fragment:  cell,
		Watcher:   watcher,
		DataPath:  cfg.Data.Source,
		ExportDir: cfg.Export.OutputDir,
		Styles:    ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	source := cfg.Data.Source
	if len(args) == 1 {
		source = args[0]
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	problems := dataset.Validate(raw)
	if len(problems) == 0 {
		fmt.Printf("%s: ok\n", source)
		return nil
	}
	for _, p := range problems {
		fmt.Printf("%s: %s\n", source, p)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("refreshing chart data",
		zap.String("base_url", cfg.Refresh.BaseURL),
		zap.Int("months_back", cfg.Refresh.MonthsBack))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	client := refresh.NewClient(cfg.Refresh.BaseURL, cfg.Refresh.PageSize)
	pipeline := refresh.NewPipeline(client, cfg.Refresh.MonthsBack, cfg.Refresh.SnapshotMonthsBack)
	if err := refresh.Run(ctx, pipeline, cfg.Data.Source); err != nil {
		return err
	}

	logger.Info("refresh complete",
		zap.String("data", cfg.Data.Source),
		zap.Duration("took", time.Since(start)))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Export.OutputDir
	if exportDir != "" {
		dir = exportDir
	}

	ds, err := dataset.Load(context.Background(), cfg.Data.Source)
	if err != nil {
		return err
	}

	path, err := export.Snapshot(ds, dir)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := dataset.Load(context.Background(), cfg.Data.Source)
	if err != nil {
		return err
	}

	store := selection.New(ds, selection.Boot(ds, "", ""), nil, nil)
	if shareDiscipline != "" {
		store.SetDiscipline(shareDiscipline)
	}
	if shareChart != "" && shareLabel != "" {
		store.ToggleInsight(shareChart, shareLabel)
	}

	frag := store.Fragment()
	if frag == "" {
		return fmt.Errorf("nothing to share: no valid discipline or selection given")
	}
	fmt.Println("#" + frag)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
