package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextcore/tuicore/cmd/tuicore-demo/internal/app"
	"github.com/nextcore/tuicore/cmd/tuicore-demo/internal/config"
	"github.com/nextcore/tuicore/cmd/tuicore-demo/internal/demobackend"
	"github.com/nextcore/tuicore/pkg/engine"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd is tuicore-demo's base command: run it with no subcommand to play
// the scripted counter demo end to end.
var rootCmd = &cobra.Command{
	Use:   "tuicore-demo",
	Short: "Runs a small scripted tuicore application",
	Long: `tuicore-demo drives pkg/engine through a canned sequence of input
events against a counter application, logging each committed frame instead
of drawing to a real terminal. It exists to exercise the engine end to end,
not to render to an actual display (see SPEC_FULL.md's Non-goals).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = newLogger(cfg.Log)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cfg, logger)
	},
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to tuicore-demo.yaml (defaults to ./tuicore-demo.yaml or built-in defaults)")
}

func newLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func runDemo(cfg *config.Config, log *slog.Logger) error {
	cc := cfg.Counter

	var eng *engine.Engine[app.State]
	frames := 0
	backend := demobackend.New(log, cc.Cols, cc.Rows, app.Script(cc.Cols, cc.Rows),
		func(runID string, seq int, drawlist []byte) {
			frames++
			fmt.Printf("frame %d (run %s): %d drawlist bytes\n", seq, runID, len(drawlist))
		})

	econf := app.New(cc.Start, cc.Step)
	econf.Backend = backend
	econf.Logger = log

	eng = engine.NewEngine(econf, nil)
	eng.SetView(app.View(eng))

	if err := eng.Start(); err != nil {
		return fmt.Errorf("engine run: %w", err)
	}

	final := eng.State()
	fmt.Printf("final state: count=%d note=%q (%d frames committed)\n", final.Count, final.Note, frames)
	return nil
}
