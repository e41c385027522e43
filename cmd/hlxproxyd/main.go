// Command hlxproxyd is the HLX proxy daemon: it dials one upstream
// matrix controller (real hardware or an hlxsimd instance) and fronts
// it with its own wire-protocol listener, so many downstream clients
// can share the single upstream connection.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openhlxgo/hlx/internal/client"
	"github.com/openhlxgo/hlx/internal/diag"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/proxy"
	"github.com/openhlxgo/hlx/internal/transport"
)

func main() {
	var (
		upstreamAddr = flag.String("upstream", "127.0.0.1:23", "upstream matrix controller host:port")
		addr         = flag.String("addr", ":9023", "downstream wire-protocol listen address")
		diagAddr     = flag.String("diag-addr", ":8081", "diagnostics HTTP listen address")
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

	tr := transport.NewTCPClient(*upstreamAddr)
	up := client.New(tr, limits, bus)
	if err := up.Connect(ctx); err != nil {
		slog.Error("failed to connect to upstream", "addr", *upstreamAddr, "err", err)
		os.Exit(1)
	}
	defer up.Close()

	if err := up.Refresh(ctx); err != nil {
		slog.Warn("initial refresh did not fully settle", "err", err)
	}

	p := proxy.New(up)

	diagSrv := &http.Server{Addr: *diagAddr, Handler: diag.NewRouter("hlxproxyd", up.State)}
	go func() {
		if err := diagSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("diagnostics server error", "err", err)
		}
	}()

	go func() {
		slog.Info("hlxproxyd listening", "addr", *addr, "upstream", *upstreamAddr)
		if err := p.Serve(ctx, bus, *addr); err != nil {
			slog.Error("proxy listener error", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	_ = diagSrv.Shutdown(shutCtx)
	_ = p.Close()

	slog.Info("shutdown complete")
}
