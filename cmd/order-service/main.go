package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mvillares/tienda-ms/docs"
	"github.com/mvillares/tienda-ms/internal/config"
	"github.com/mvillares/tienda-ms/internal/httpx"
	"github.com/mvillares/tienda-ms/internal/logging"
	ord "github.com/mvillares/tienda-ms/internal/order"
)

// @title tienda-ms order service
// @version 0.0.1
// @description order workflow over the catalog and client directory services
func main() {
	cfg := config.Load()
	logger := logging.New("order-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := ord.NewPGStore(pool)
	clients := ord.NewClientHTTP(cfg.ClientSvcBaseURL)
	products := ord.NewProductHTTP(cfg.ProductSvcBaseURL)

	var audit ord.Emitter
	if cfg.KafkaBrokers != "" {
		ke := ord.NewKafkaEmitter(cfg.KafkaBrokers, cfg.ReconciliationTopic, logger)
		defer func() { _ = ke.Close() }()
		audit = ke
	} else {
		audit = ord.NewLogEmitter(logger)
	}

	svc := ord.NewService(store, clients, products, audit, logger)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger), httpx.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/orders", listOrdersHandler(svc))
	r.GET("/orders/:id", getOrderHandler(svc))
	r.POST("/orders", createOrderHandler(svc))
	r.PUT("/orders/:id", updateOrderHandler(svc))
	r.DELETE("/orders/:id", deleteOrderHandler(svc))

	srv := &http.Server{Addr: cfg.OrderSvcAddr, Handler: r}
	go func() {
		log.Printf("order-service listening on %s", cfg.OrderSvcAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
