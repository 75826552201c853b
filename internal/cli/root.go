package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/streakr/internal/config"
	"github.com/sadopc/streakr/internal/logging"
	"github.com/sadopc/streakr/internal/store"
	"github.com/sadopc/streakr/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewRootCommand builds the streakr command tree. Running it without a
// subcommand opens the TUI.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New(), now: time.Now}

	root := &cobra.Command{
		Use:           "streakr",
		Short:         "Daily habit checklist, journal and streak tracker",
		Long:          "streakr tracks a fixed daily checklist that resets every morning, a mood journal, and completion streaks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default <config dir>/streakr/config.yaml)")
	flags.String("db", "", "database path (default <config dir>/streakr/streakr.db)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "log file (default beside the database)")
	_ = a.v.BindPFlag("db_path", flags.Lookup("db"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.file", flags.Lookup("log-file"))

	root.AddCommand(
		newStatusCommand(a),
		newToggleCommand(a),
		newLogCommand(a),
		newExportCommand(a),
		newClearCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) withStore(fn func(*store.Store) error) error {
	s, err := store.New(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s)
}

// withTracker opens a session: rollover, overlay and the starting stats record.
func (a *app) withTracker(fn func(*store.Tracker) error) error {
	return a.withStore(func(s *store.Store) error {
		tr, err := store.Open(s, store.Options{
			Now:            a.now,
			Logger:         logging.Component(a.log, "store"),
			KeyGranularity: store.KeyGranularity(a.cfg.Stats.KeyGranularity),
		})
		if err != nil {
			return err
		}
		return fn(tr)
	})
}

func (a *app) runTUI() error {
	return a.withTracker(func(tr *store.Tracker) error {
		a.log.Infow("session started", "db", a.cfg.DBPath, "stats_key", tr.StatsKey())
		p := tea.NewProgram(tui.NewApp(tr, logging.Component(a.log, "tui")), tea.WithAltScreen())
		_, err := p.Run()
		return err
	})
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print streakr version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "streakr "+Version)
		},
	}
}
