package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vmanager/vehicle-manager-server/internal/api/http/httpctx"
	"github.com/vmanager/vehicle-manager-server/internal/api/http/router"
	"github.com/vmanager/vehicle-manager-server/internal/config"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
	"github.com/vmanager/vehicle-manager-server/internal/password"
	"github.com/vmanager/vehicle-manager-server/internal/repository/postgres"
	"github.com/vmanager/vehicle-manager-server/internal/server"
	"github.com/vmanager/vehicle-manager-server/internal/service"
	"github.com/vmanager/vehicle-manager-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}
	hasher := password.NewBcrypt(0)

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	vehicleService := service.NewVehicle(vehicleRepo, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, vehicleService, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
