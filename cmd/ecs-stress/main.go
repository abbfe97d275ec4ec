package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/loom/ecs"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file; flags override it.")
	duration := flag.Duration("duration", 0, "Total run duration; overrides the config value.")
	entityCount := flag.Int("entities", 0, "Initial entity count; overrides the config value.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Run.DurationSeconds = duration.Seconds()
	}
	if *entityCount > 0 {
		cfg.Run.Entities = *entityCount
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ECS stress test",
		zap.Duration("duration", cfg.Run.duration()),
		zap.Int("entities", cfg.Run.Entities),
		zap.Int("frame_rate", cfg.Run.FrameRate))

	// 1. Setup registry, storage, and scheduler
	registry := ecs.NewComponentRegistry()
	ids := registerStressComponents(registry)
	storage := ecs.NewStorage(registry)
	sched := ecs.NewScheduler(storage)

	if err := registerFrameSystems(sched, ids); err != nil {
		logger.Fatal("register frame systems", zap.Error(err))
	}
	for _, rc := range cfg.Rates {
		if err := registerRateSystems(sched, ids, rc.Rate, rc.Systems); err != nil {
			logger.Fatal("register rate systems", zap.Error(err), zap.Int("rate", rc.Rate))
		}
	}

	// 2. Populate with initial entities
	logger.Info("populating entities", zap.Int("count", cfg.Run.Entities))
	for i := 0; i < cfg.Run.Entities; i++ {
		spawnRandomEntity(sched, ids)
	}
	logger.Info("population complete")

	// 3. Drive the frame loop for the configured duration
	report := &Report{
		Duration:       cfg.Run.duration(),
		Entities:       cfg.Run.Entities,
		FrameRate:      cfg.Run.FrameRate,
		RateGroups:     len(sched.Groups()),
		GCPauseMetrics: cfg.Run.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	frameInterval := time.Second / time.Duration(cfg.Run.FrameRate)
	deadline := time.Now().Add(cfg.Run.duration())
	startTime := time.Now()
	var totalFrames int64

	for time.Now().Before(deadline) {
		frameStart := time.Now()
		sched.Advance()
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		totalFrames++

		if rest := frameInterval - time.Since(frameStart); rest > 0 {
			time.Sleep(rest)
		}
	}

	sched.Stop()

	report.TotalFrames = totalFrames
	report.TotalTime = time.Since(startTime)
	report.SchedulerStats = sched.Stats()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("frames", totalFrames),
		zap.Int64("system_executions", report.SchedulerStats.TotalExecutions))

	// 4. Generate report to console
	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

func newLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
