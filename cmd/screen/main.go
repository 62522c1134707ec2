package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"quiz-screen/internal/clock"
	"quiz-screen/internal/config"
	"quiz-screen/internal/screen"
	"quiz-screen/internal/server"
	"quiz-screen/internal/stats"
	"quiz-screen/internal/upstream"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Fatal("load .env", zap.Error(err))
	}
	cfg := config.Load()
	if cfg.RoomID == "" {
		logger.Fatal("ROOM_ID is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wall := clockwork.NewRealClock()
	serverClock := clock.New(wall)
	agg := stats.NewAggregator()
	hub := server.NewHub(logger, wall, time.Duration(cfg.SwapAckMillis)*time.Millisecond)
	fragments := screen.NewFragmentSource(cfg.UpstreamURL, time.Duration(cfg.FragmentTimeoutSeconds)*time.Second)

	ctrl := screen.NewController(
		logger,
		hub,
		fragments,
		serverClock,
		wall,
		agg,
		time.Duration(cfg.CountdownTickMillis)*time.Millisecond,
	)
	hub.SetActionHandler(ctrl.HandleAction)

	hostURL := cfg.HostSocketURL()
	host, err := upstream.Dial(ctx, hostURL, logger, ctrl.Enqueue, ctrl.TransportClosed)
	if err != nil {
		logger.Fatal("dial host socket", zap.String("url", hostURL), zap.Error(err))
	}
	defer host.Close()
	ctrl.AttachUpstream(host)

	go ctrl.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(logger, cfg, hub).Router(),
	}
	go func() {
		logger.Info("screen host listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("room", cfg.RoomID),
			zap.String("upstream", cfg.UpstreamURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}
