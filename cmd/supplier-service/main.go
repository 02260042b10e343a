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
	sup "github.com/mvillares/tienda-ms/internal/supplier"
)

// @title tienda-ms supplier service
// @version 0.0.1
// @description supplier directory
func main() {
	cfg := config.Load()
	logger := logging.New("supplier-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	repo := sup.NewPGRepo(pool)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger), httpx.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/suppliers", listSuppliersHandler(repo))
	r.GET("/suppliers/:id", getSupplierHandler(repo))
	r.POST("/suppliers", createSupplierHandler(repo))
	r.PUT("/suppliers/:id", updateSupplierHandler(repo))
	r.DELETE("/suppliers/:id", deleteSupplierHandler(repo))

	srv := &http.Server{Addr: cfg.SupplierSvcAddr, Handler: r}
	go func() {
		log.Printf("supplier-service listening on %s", cfg.SupplierSvcAddr)
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
