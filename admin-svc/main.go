package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "fastgrab/admin-svc/internal/api/http"
	"fastgrab/admin-svc/internal/service"
	"fastgrab/admin-svc/internal/storage"
	"fastgrab/config"

	"github.com/gorilla/sessions"
)

func main() {
	config.LoadEnv()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	adminCfg := config.AdminFromEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaReader := config.NewKafkaReader(config.OrdersTopic, "admin-svc-monitor")
	defer kafkaReader.Close()

	monitor := service.NewMonitor(storage.NewPostgresRepository(db), storage.NewRedisPinStore(rdb))
	allowedOrigins := config.SplitList(config.GetEnv("ADMIN_ALLOWED_ORIGINS", "http://localhost:3000"))
	hub := httpapi.NewHub(allowedOrigins)

	ctx, stopFeed := context.WithCancel(context.Background())
	feed := service.NewFeed(kafkaReader, monitor, hub)
	go feed.Start(ctx)

	store := sessions.NewCookieStore(adminCfg.SessionKey)
	auth := httpapi.NewAuth(store, adminCfg.Username, adminCfg.PasswordHash, adminCfg.CookieSecure)
	handler := httpapi.NewHandler(monitor, auth, hub)

	server := &http.Server{
		Addr: ":" + config.GetEnv("PORT", "8082"),
		Handler: httpapi.NewRouter(handler, httpapi.RouterConfig{
			CSRFKey:        adminCfg.CSRFKey,
			Secure:         adminCfg.CookieSecure,
			AllowedOrigins: allowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Admin Service starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-stop
	slog.Info("Shutting down admin service")
	stopFeed()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Admin Service stopped")
}
