package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calder/tictactoe-arena/internal/api/controller"
	apirepository "calder/tictactoe-arena/internal/api/repository"
	"calder/tictactoe-arena/internal/api/service"
	"calder/tictactoe-arena/internal/db"
	"calder/tictactoe-arena/internal/hub"
	"calder/tictactoe-arena/internal/logger"
	"calder/tictactoe-arena/internal/repository"
	"calder/tictactoe-arena/internal/server"
	"calder/tictactoe-arena/internal/telemetry"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.InitOtel()
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	logger.Init()

	rdb, err := db.NewRedisClient(ctx)
	if err != nil {
		slog.Error("failed to initialize redis", "error", err)
		os.Exit(1)
	}

	if err := db.Initialize(); err != nil {
		slog.Error("failed to initialize sqlite db", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.Connect()
	if err != nil {
		slog.Error("failed to get sqlite db connection", "error", err)
		os.Exit(1)
	}

	gameRepo := repository.NewGameRepository(rdb)
	playerRepo := repository.NewPlayerRepository(rdb)
	matchmakingRepo := repository.NewMatchmakingRepository(rdb)
	userRepo := apirepository.NewUserRepository(sqlDB)
	statsRepo := apirepository.NewStatsRepository(sqlDB)

	userService := service.NewUserService(userRepo)
	gameService := service.NewLocalGameService(nil)

	userController := controller.NewUserController(userService)
	gameController := controller.NewGameController(gameService)
	statsController := controller.NewStatsController(statsRepo)

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()

	h := hub.NewHub(rdb, gameRepo, playerRepo, matchmakingRepo, statsRepo, os.Getenv("MATCHMAKING_MODE"))
	go h.Run(hubCtx)

	srv := server.NewServer(h, userController, gameController, statsController)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("http server started", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")
	stopHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
