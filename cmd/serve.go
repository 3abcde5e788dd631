package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"skilld/internal/analytics"
	"skilld/internal/config"
	"skilld/internal/executor"
	"skilld/internal/handler"
	"skilld/internal/registry"
	"skilld/internal/scheduler"
	"skilld/internal/watcher"
	"skilld/pkg/logging"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath specifies a custom configuration directory path.
var serveConfigPath string

// serveCmd loads all capability definitions, starts the filesystem watcher
// and the schedule runner, and serves the registry until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load capability definitions and serve them with hot-reload",
	Long: `Loads all capability definitions below the configured skill root into the
registry and starts a filesystem watcher that reloads individual files as
they change. A bad edit never takes a working capability offline: the
previous definition stays registered until the file parses again.

Definitions carrying a schedule expression are dispatched on that schedule.

Configuration is read from config.yaml in the config directory (default
~/.config/skilld), with SKILLD_* environment variables taking precedence.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath := serveConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stdout)

	var emitter analytics.Emitter = analytics.NopEmitter{}
	if cfg.Analytics {
		emitter = analytics.LogEmitter{}
	}

	handlers := handler.NewTable()
	reg := registry.New(cfg.SkillRoot, handlers)
	if err := reg.LoadAll(); err != nil {
		return fmt.Errorf("failed to load capability definitions: %w", err)
	}
	logging.Info("Serve", "Registry ready with %d capabilities in %d domains", len(reg.ListAll()), len(reg.ListDomainIndexes()))

	dispatcher := executor.New(reg, handlers, emitter, cfg.ExecutionTimeout)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := watcher.New(cfg.SkillRoot, reg, cfg.DebounceInterval)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start filesystem watcher: %w", err)
	}
	defer w.Stop()

	sched := scheduler.New(reg, dispatcher)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Serve", "Shutting down")
		return nil
	})
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path")
}
