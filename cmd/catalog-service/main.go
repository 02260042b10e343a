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
	prod "github.com/mvillares/tienda-ms/internal/catalog"
	"github.com/mvillares/tienda-ms/internal/config"
	"github.com/mvillares/tienda-ms/internal/httpx"
	"github.com/mvillares/tienda-ms/internal/logging"
)

// @title tienda-ms catalog service
// @version 0.0.1
// @description product catalog with the stock endpoints the order service consumes
func main() {
	cfg := config.Load()
	logger := logging.New("catalog-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	repo := prod.NewPGRepo(pool)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger), httpx.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", listProductsHandler(repo))
	r.GET("/products/:id", getProductHandler(repo))
	r.POST("/products", createProductHandler(repo))
	r.PUT("/products/:id", updateProductHandler(repo))
	r.DELETE("/products/:id", deleteProductHandler(repo))
	r.POST("/products/:id/reduce-stock", reduceStockHandler(repo))
	r.POST("/products/:id/increase-stock", increaseStockHandler(repo))

	srv := &http.Server{Addr: cfg.CatalogSvcAddr, Handler: r}
	go func() {
		log.Printf("catalog-service listening on %s", cfg.CatalogSvcAddr)
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
