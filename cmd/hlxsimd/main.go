// Command hlxsimd is the HLX simulator/server daemon: it accepts
// downstream wire-protocol connections and answers them out of its own
// in-process state, the way a real matrix controller (or a bench
// simulator standing in for one) would. Run with -config-dir pointing
// at a directory for persisted state; omit it to run purely in memory.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/openhlxgo/hlx/internal/diag"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/server"
	"github.com/openhlxgo/hlx/internal/store"
)

func main() {
	var (
		addr         = flag.String("addr", ":23", "wire-protocol listen address")
		diagAddr     = flag.String("diag-addr", ":8080", "diagnostics HTTP listen address")
		cfgDir       = flag.String("config-dir", "", "directory for persisted state (default: in-memory only)")
		saveInterval = flag.Duration("save-interval", server.DefaultSaveInterval, "dirty-flag save poll interval")
		debug        = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	limits := model.DefaultLimits()
	bus := notify.NewBus()

	var st store.Store
	if *cfgDir != "" {
		if err := os.MkdirAll(*cfgDir, 0755); err != nil {
			slog.Error("cannot create config directory", "path", *cfgDir, "err", err)
			os.Exit(1)
		}
		js, err := store.NewJSONStore(filepath.Join(*cfgDir, "state.json"), limits, bus)
		if err != nil {
			slog.Error("config store initialization failed", "err", err)
			os.Exit(1)
		}
		defer js.Close()
		st = js
	} else {
		st = store.NewMemStore(limits)
	}

	ctrl, err := server.New(st, limits, bus, *saveInterval)
	if err != nil {
		slog.Error("controller initialization failed", "err", err)
		os.Exit(1)
	}
	ctrl.Run()
	defer ctrl.Close()

	diagSrv := &http.Server{Addr: *diagAddr, Handler: diag.NewRouter("hlxsimd", ctrl.State)}
	go func() {
		if err := diagSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("diagnostics server error", "err", err)
		}
	}()

	ln := server.NewListener(ctrl, nil)
	go func() {
		slog.Info("hlxsimd listening", "addr", *addr, "config", *cfgDir)
		if err := ln.Serve(ctx, *addr); err != nil {
			slog.Error("listener error", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	_ = diagSrv.Shutdown(shutCtx)
	_ = ln.Close()

	slog.Info("shutdown complete")
}
