package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jose-valero/lcu-queue-bot/internal/adapters/console"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/desktop"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/discord"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/httpcontrol"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/lcu"
	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/config"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/lock"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/logging"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/storage"
)

func runDaemon(cmd *cobra.Command, cfg config.Config) error {
	// una sola instancia por carpeta de config
	lk := lock.NewFileLock(cfg.LockPath())
	if err := lk.TryLock(); err != nil {
		return err
	}
	defer lk.Unlock()

	logger, err := logging.New(logging.Config{
		Level:     logging.ParseLevel(cfg.LogLevel),
		SentryDSN: cfg.SentryDSN,
		Env:       cfg.Env,
		Version:   version,
		LogFile:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer logger.Close(2 * time.Second)
	defer func() {
		if r := recover(); r != nil {
			logger.CapturePanic(r)
			panic(r)
		}
	}()
	log := logger.Logger

	fmt.Fprintln(cmd.OutOrStdout(), console.Banner(version))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Settings
	repo := storage.NewSettingsRepo(cfg.SettingsPath)
	sf, err := repo.Load(ctx)
	if errors.Is(err, storage.ErrCorrupt) {
		log.Warn("⚠️ settings file unreadable, using defaults", "path", repo.Path(), "err", err)
		sf = storage.DefaultSettings()
	} else if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.Panel("Settings", service.Describe(sf.Snapshot())))

	// Sinks
	hook, err := discord.NewWebhook()
	if err != nil {
		return err
	}
	notifier := desktop.New(cfg.IconPath)
	if cfg.ToastAppID != "" {
		notifier.AppID = cfg.ToastAppID
	}

	// Controller + transporte
	ctrl := service.NewReadyCheckService(log, sf.Snapshot(), notifier, hook)
	installDir := cfg.InstallDir
	if installDir == "" {
		installDir = lcu.DefaultInstallDir()
	}
	conn := lcu.NewConnector(installDir, lcu.WithLogger(log))
	shell := service.NewShell(conn, ctrl, log)

	srv := httpcontrol.New(cfg.ControlToken, shell, cancel, version, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return shell.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shell.Stop()
		return nil
	})
	g.Go(func() error {
		if err := srv.Serve(gctx, cfg.ControlAddr); err != nil {
			// sin API de control el bot sigue funcionando
			log.Warn("control API unavailable", "addr", cfg.ControlAddr, "err", err)
		}
		return nil
	})
	g.Go(func() error {
		err := repo.Watch(gctx, log, func(f storage.SettingsFile) {
			ctrl.SetSettings(f.Snapshot())
		})
		if err != nil {
			log.Warn("settings hot reload disabled", "path", repo.Path(), "err", err)
		}
		return nil
	})

	err = g.Wait()
	if !ctrl.WaitTimeout(5 * time.Second) {
		log.Warn("notifications still in flight at shutdown")
	}
	log.Info("👋 bye")
	return err
}
