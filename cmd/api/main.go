package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/ollanpharmacy/pharmacy-api/internal/auth"
	"github.com/ollanpharmacy/pharmacy-api/internal/broadcast"
	"github.com/ollanpharmacy/pharmacy-api/internal/cart"
	"github.com/ollanpharmacy/pharmacy-api/internal/catalog"
	"github.com/ollanpharmacy/pharmacy-api/internal/config"
	"github.com/ollanpharmacy/pharmacy-api/internal/httpx"
	"github.com/ollanpharmacy/pharmacy-api/internal/kafkax"
	"github.com/ollanpharmacy/pharmacy-api/internal/notify"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/payments"
	"github.com/ollanpharmacy/pharmacy-api/internal/postgres"
	"github.com/ollanpharmacy/pharmacy-api/internal/redisx"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for the notification queue
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicNotifications, 1024)
	prod.Start(ctx)

	// Live event hub for admin/rider dashboards
	hub := broadcast.NewHub()

	// Stores
	userRepo := &users.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	cartRepo := &cart.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}

	mailer := &notify.EmailSender{
		Host: cfg.SMTPHost, Port: cfg.SMTPPort,
		Username: cfg.SMTPUser, Password: cfg.SMTPPass, From: cfg.EmailFrom,
	}
	userSvc := &users.Service{Store: userRepo, Codes: &users.RedisCodes{Client: rdb}, Mailer: mailer}

	engine := &orders.Engine{
		Orders:   orderRepo,
		Stock:    catalogRepo,
		Carts:    cartRepo,
		Riders:   userRepo,
		Payments: &payments.Client{BaseURL: cfg.PaystackBaseURL, Secret: cfg.PaystackSecret},
		Notifier: &notify.QueuePublisher{Producer: prod, Service: cfg.ServiceName},
		Events:   hub,
		Cache:    &orders.RedisAdminCache{Client: rdb},
	}

	// Routes
	router := httpx.NewRouter()
	(&httpx.AuthHandler{Users: userSvc, JWTSecret: cfg.JWTSecret}).Register(router)

	ph := &httpx.ProductsHandler{Repo: catalogRepo, UploadDir: cfg.UploadDir}
	ph.RegisterPublic(router)
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWTSecret, userRepo))
		ph.RegisterAdmin(r)
		(&httpx.UsersHandler{Users: userSvc}).Register(r)
		(&httpx.CartHandler{Carts: cartRepo}).Register(r)
		(&httpx.OrdersHandler{Engine: engine, UploadDir: cfg.UploadDir}).Register(r)
		(&httpx.WSHandler{Hub: hub}).Register(r)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed() // drain
}
