// Package api exposes the checkout core over HTTP, following the Solana Pay
// transaction request protocol: GET returns display metadata for the wallet,
// POST returns the unsigned transaction to sign.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lukey372/hackatum-solana-challenge/internal/checkout"
	"github.com/Lukey372/hackatum-solana-challenge/internal/config"
)

// Core is the checkout entry point the server dispatches to.
type Core interface {
	Checkout(ctx context.Context, product config.Product, account string) (*checkout.Result, error)
}

// Server routes checkout requests for the configured product catalog.
type Server struct {
	core     Core
	products map[string]config.Product
	log      *zap.Logger
}

// NewServer creates a Server for the given core and product catalog.
func NewServer(core Core, products map[string]config.Product, log *zap.Logger) *Server {
	return &Server{
		core:     core,
		products: products,
		log:      log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.health)
	r.GET("/pay/:product", s.metadata)
	r.POST("/pay/:product", s.checkout)

	return r
}

type metadataResponse struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) metadata(c *gin.Context) {
	product, ok := s.product(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metadataResponse{Label: product.Label, Icon: product.Icon})
}

func (s *Server) checkout(c *gin.Context) {
	product, ok := s.product(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.log.Warn("failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing account"})
		return
	}

	account, err := validateCheckoutRequest(body)
	if err != nil {
		s.log.Warn("rejected checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing account"})
		return
	}

	result, err := s.core.Checkout(c.Request.Context(), product, account)
	if err != nil {
		status, message := statusForError(err)
		if status == http.StatusInternalServerError {
			s.log.Error("checkout failed", zap.Error(err))
		}
		c.JSON(status, errorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) product(c *gin.Context) (config.Product, bool) {
	product, ok := s.products[c.Param("product")]
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "unknown product"})
		return config.Product{}, false
	}
	return product, true
}

// statusForError maps checkout error codes to HTTP responses. The core stays
// transport-agnostic; this mapping lives here.
func statusForError(err error) (int, string) {
	var cerr *checkout.Error
	if !errors.As(err, &cerr) {
		return http.StatusInternalServerError, "internal error"
	}
	switch cerr {
	case checkout.ErrMissingAccount, checkout.ErrInvalidAccount:
		return http.StatusBadRequest, cerr.Message
	case checkout.ErrCustomerNotFound:
		return http.StatusNotFound, cerr.Message
	case checkout.ErrInsufficientFunds:
		return http.StatusPaymentRequired, cerr.Message
	default:
		return http.StatusConflict, cerr.Message
	}
}
