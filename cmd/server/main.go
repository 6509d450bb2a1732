package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lukey372/hackatum-solana-challenge/internal/api"
	"github.com/Lukey372/hackatum-solana-challenge/internal/checkout"
	"github.com/Lukey372/hackatum-solana-challenge/internal/config"
	"github.com/Lukey372/hackatum-solana-challenge/internal/ledger"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	signer, err := ledger.NewSignerFromBase58(cfg.MerchantSecret)
	if err != nil {
		logger.Fatal("invalid merchant key", zap.Error(err))
	}

	core := checkout.New(
		ledger.NewRPCLedger(cfg.RPCURL),
		signer,
		cfg.MerchantWallet,
		cfg.TokenMint,
		cfg.NFTMint,
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(core, cfg.Products, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("checkout server listening",
		zap.String("port", cfg.Port),
		zap.String("rpc", cfg.RPCURL),
		zap.Stringer("merchant", cfg.MerchantWallet),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
