package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	accounthandler "finattr/internal/account/handler"
	accountservice "finattr/internal/account/service"
	accountstore "finattr/internal/account/store"
	"finattr/internal/attribute"
	"finattr/internal/platform/config"
	"finattr/internal/platform/httpserver"
	"finattr/internal/platform/logger"
	"finattr/internal/platform/metrics"
	taxyearhandler "finattr/internal/taxyear/handler"
	taxyearservice "finattr/internal/taxyear/service"
	taxyearstore "finattr/internal/taxyear/store"
	httptransport "finattr/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services and the attribute engine.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	accounts := accountstore.NewInMemory()
	taxYears := taxyearstore.NewInMemory()

	accountSvc := accountservice.NewService(accounts, attribute.NewAccountValidator(accounts), m, log)
	taxYearSvc := taxyearservice.NewService(taxYears, attribute.NewTaxYearValidator(), m, log)

	router := httptransport.NewRouter(
		log,
		accounthandler.New(accountSvc, log),
		taxyearhandler.New(taxYearSvc, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting finattr", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
