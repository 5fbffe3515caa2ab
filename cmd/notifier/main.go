package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ollanpharmacy/pharmacy-api/internal/config"
	"github.com/ollanpharmacy/pharmacy-api/internal/kafkax"
	"github.com/ollanpharmacy/pharmacy-api/internal/notify"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/redisx"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	dispatcher := &notify.Dispatcher{}
	if cfg.SMTPUser != "" {
		dispatcher.Email = &notify.EmailSender{
			Host: cfg.SMTPHost, Port: cfg.SMTPPort,
			Username: cfg.SMTPUser, Password: cfg.SMTPPass, From: cfg.EmailFrom,
		}
	}
	if cfg.WhatsAppToken != "" {
		dispatcher.WhatsApp = &notify.WhatsAppSender{
			BaseURL:     cfg.WhatsAppBaseURL,
			PhoneNumber: cfg.WhatsAppPhoneID,
			AccessToken: cfg.WhatsAppToken,
		}
	}
	if dispatcher.Email == nil && dispatcher.WhatsApp == nil {
		log.Println("warning: no notification channel configured, messages will be dropped")
	}

	service := cfg.ServiceName + "-notifier"
	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicNotifications, workers)

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicNotifications, workers)
		if err := cons.Start(ctx, notify.Handler(rdb, dispatcher, service)); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
