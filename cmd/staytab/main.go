// Staytab is a point-of-sale bill calculator for a venue that charges by
// the length of stay.
//
// Usage:
//
//	staytab [-config house.yaml] [-tax inclusive|external] [-verbose] [-quiet]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/staytab/internal/admission"
	"github.com/hammamikhairi/staytab/internal/catalog"
	"github.com/hammamikhairi/staytab/internal/config"
	"github.com/hammamikhairi/staytab/internal/conversation"
	"github.com/hammamikhairi/staytab/internal/display"
	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/engine"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/pricing"
	"github.com/hammamikhairi/staytab/internal/storage"
	"github.com/hammamikhairi/staytab/internal/timer"
)

// envLogLevel overrides the log level when no flag is given.
const envLogLevel = "STAYTAB_LOG_LEVEL"

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "house-rules YAML file (defaults to the built-in rules)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".staytab-logs/staytab.log", "file to write logs to (use \"stderr\" to log to console)")
	taxFlag := flag.String("tax", "", "initial tax mode: inclusive or external (overrides the config)")
	tick := flag.Duration("tick", time.Minute, "how often the running bill is recomputed")
	lead := flag.Duration("lead", 5*time.Minute, "warn this long before the next extension unit")
	flag.Parse()

	// Configure logger.
	logLevel, err := logger.ParseLevel(os.Getenv(envLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using normal)\n", err)
		logLevel = logger.LevelNormal
	}
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	log := logger.New(logLevel, logOut)

	// The ticker is started on admission and stopped on reset by the
	// engine. Both closures run only after the wiring below completes.
	var (
		eng     *engine.Engine
		watcher *timer.Watcher
	)
	ticker := timer.New(func(ctx context.Context, now time.Time) {
		watcher.Observe(ctx, eng.Recompute(now))
	}, log, timer.WithTickInterval(*tick))
	defer ticker.Stop()

	eng, rules, err := build(*configPath, *taxFlag, log, engine.WithScheduler(ticker))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui := display.NewUI(eng.Snapshot)
	notifier := conversation.NewCLINotifier(log, ui.Printf)
	watcher = timer.NewWatcher(notifier, rules, log, timer.WithLeadTime(*lead))

	app := &cliApp{
		engine:  eng,
		parser:  conversation.NewKeywordParser(log),
		watcher: watcher,
		log:     log,
		ui:      ui,
		now:     time.Now,
	}

	fmt.Println(display.RenderBanner("per-minute stay billing"))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// build loads the house rules and wires the engine.
func build(configPath, taxFlag string, log *logger.Logger, opts ...engine.Option) (*engine.Engine, pricing.Rules, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, pricing.Rules{}, err
	}
	if configPath != "" {
		log.Info("house rules loaded from %s", configPath)
	}

	cat, err := catalog.New(cfg.Menu, log)
	if err != nil {
		return nil, pricing.Rules{}, err
	}
	gate, err := admission.NewGate(cfg.Hours)
	if err != nil {
		return nil, pricing.Rules{}, err
	}
	rules, err := pricing.RulesFromConfig(cfg, cat)
	if err != nil {
		return nil, pricing.Rules{}, err
	}

	mode, err := cfg.TaxMode()
	if err != nil {
		return nil, pricing.Rules{}, err
	}
	if taxFlag != "" {
		if mode, err = domain.ParseTaxMode(taxFlag); err != nil {
			return nil, pricing.Rules{}, fmt.Errorf("-tax: %w", err)
		}
	}

	opts = append([]engine.Option{
		engine.WithStore(storage.NewMemoryLedger(log)),
		engine.WithTaxMode(mode),
	}, opts...)
	eng := engine.New(cat, gate, pricing.New(rules), log, opts...)
	log.Info("closed %s, last admission %s, tax %s (%s)",
		gate.ClosedWindow(), gate.LateWindow(), mode, rules.TaxRate)
	return eng, rules, nil
}
