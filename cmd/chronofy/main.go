package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chronofy/internal/ai"
	"chronofy/internal/auth"
	"chronofy/internal/backup"
	"chronofy/internal/config"
	appLog "chronofy/internal/log"
	"chronofy/internal/storage"
	"chronofy/internal/store"
	"chronofy/internal/timer"
	"chronofy/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	backupNow  bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("chronofy starting",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"week_start", conf.WeekStart,
		"storage", conf.Storage,
		"data_dir", conf.DataDir,
		"ai_enabled", conf.AI.APIKey != "",
		"auth_enabled", conf.Auth.Secret != "",
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	loc := resolveLocation(conf.Timezone)

	repo, err := openRepository(ctx, conf)
	if err != nil {
		appLog.Error("failed to open storage", err, "storage", conf.Storage)
		os.Exit(1)
	}
	defer repo.Close()

	if flags.backupNow {
		if err := backup.RunOnce(ctx, repo, conf.DataDir); err != nil {
			appLog.Error("backup failed", err)
			os.Exit(1)
		}
		return
	}

	st := store.New(ctx, repo, loc)

	tm := timer.New(
		time.Duration(conf.Timer.WorkMinutes)*time.Minute,
		time.Duration(conf.Timer.ShortBreakMinutes)*time.Minute,
		time.Duration(conf.Timer.LongBreakMinutes)*time.Minute,
	)
	defer tm.Stop()

	aiClient := ai.NewClient(conf.AI)
	authSvc := auth.NewService(ctx, repo, conf.Auth.Secret,
		time.Duration(conf.Auth.SessionTTLHours)*time.Hour)

	backupRunner, err := backup.Start(conf.BackupCron, repo, conf.DataDir)
	if err != nil {
		appLog.Error("failed to start backup schedule", err)
		os.Exit(1)
	}
	defer backupRunner.Stop()

	srv := web.NewServer(conf, st, tm, aiClient, authSvc)
	if err := web.Serve(ctx, srv); err != nil {
		appLog.Error("http server failed", err)
		os.Exit(1)
	}

	appLog.Info("chronofy exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.backupNow, "backup-now", false, "Run one backup snapshot and exit")

	flag.Parse()

	return cfg
}

func resolveLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

func openRepository(ctx context.Context, conf *config.Config) (storage.Repository, error) {
	if conf.Storage == "redis" {
		return storage.OpenRedis(ctx, conf.RedisAddr)
	}
	return storage.OpenSQLite(conf.DataDir)
}
