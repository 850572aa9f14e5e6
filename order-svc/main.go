package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fastgrab/config"
	httpapi "fastgrab/order-svc/internal/api/http"
	"fastgrab/order-svc/internal/catalog"
	"fastgrab/order-svc/internal/notify"
	"fastgrab/order-svc/internal/service"
	"fastgrab/order-svc/internal/storage"
)

const sessionIdleTimeout = 2 * time.Hour

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	orders := storage.NewPostgresRepository(db)
	if err := orders.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()
	sessions := storage.NewRedisSessionStore(rdb, 7*24*time.Hour)

	kafkaWriter := config.NewKafkaWriter(config.OrdersTopic)
	defer kafkaWriter.Close()

	smtpCfg := config.SMTPFromEnv()
	notifier, err := notify.NewSMTPNotifier(smtpCfg)
	if err != nil {
		log.Fatal("Failed to configure mailer:", err)
	}
	if !smtpCfg.Configured() {
		log.Printf("Warning: SMTP credentials missing, notifications will only be logged")
	}
	timeout, _ := strconv.Atoi(config.GetEnv("NOTIFY_TIMEOUT_SECONDS", "30"))
	dispatcher := service.NewDispatcher(notifier, time.Duration(timeout)*time.Second)

	menu := catalog.Default()
	recommender := service.NewRecommendationService(
		os.Getenv("RECOMMENDER_URL"),
		&http.Client{Timeout: 5 * time.Second},
		menu,
	)

	checkoutSvc := service.NewCheckoutService(menu, sessions, recommender, service.Collaborators{
		Orders:     orders,
		Dispatcher: dispatcher,
		Publisher:  storage.NewKafkaPublisher(kafkaWriter),
		Codes:      service.SimulatedSMS{},
		Operators:  smtpCfg.Operators,
	})
	orderSvc := service.NewOrderService(orders, service.DefaultQRGenerator{
		BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
	})

	handler := httpapi.NewHandler(menu, checkoutSvc, orderSvc, recommender)

	ctx, stopEviction := context.WithCancel(context.Background())
	go evictIdleSessions(ctx, checkoutSvc)

	server := &http.Server{
		Addr:    ":" + config.GetEnv("PORT", "8081"),
		Handler: httpapi.NewRouter(handler),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Order Service starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-stop
	stopEviction()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown failed: %v", err)
	}
	dispatcher.Wait()
	log.Println("Order Service stopped")
}

func evictIdleSessions(ctx context.Context, svc *service.CheckoutService) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := svc.EvictIdle(sessionIdleTimeout); n > 0 {
				log.Printf("Evicted %d idle checkout sessions", n)
			}
		}
	}
}
