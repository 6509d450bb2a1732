package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lukey372/hackatum-solana-challenge/internal/checkout"
	"github.com/Lukey372/hackatum-solana-challenge/internal/config"
)

type stubCore struct {
	result  *checkout.Result
	err     error
	product string
	account string
}

func (s *stubCore) Checkout(ctx context.Context, product config.Product, account string) (*checkout.Result, error) {
	s.product = product.Name
	s.account = account
	return s.result, s.err
}

func testProducts() map[string]config.Product {
	return map[string]config.Product{
		"pizza": {
			Name:    "pizza",
			Price:   1_000_000_000,
			Label:   "Pizza del SOL",
			Icon:    "https://example.com/pizza.jpeg",
			Message: "Enjoy your Pizza de SOL!",
		},
	}
}

func newTestServer(core Core) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(core, testProducts(), zap.NewNop()).Router()
}

// customerAccount is a well-formed base58 public key (the SPL token program).
const customerAccount = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

func TestHealth(t *testing.T) {
	router := newTestServer(&stubCore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetadata(t *testing.T) {
	router := newTestServer(&stubCore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pay/pizza", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label":"Pizza del SOL","icon":"https://example.com/pizza.jpeg"}`, w.Body.String())
}

func TestUnknownProduct(t *testing.T) {
	router := newTestServer(&stubCore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pay/sushi", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay/sushi", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutRejectsMalformedBodies(t *testing.T) {
	core := &stubCore{}
	router := newTestServer(core)

	for _, body := range []string{"", "{}", `{"account":""}`, `{"account":42}`, "not json"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay/pizza", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"missing account"}`, w.Body.String(), "body %q", body)
	}
	assert.Empty(t, core.account, "core is never reached on malformed input")
}

func TestCheckoutSuccess(t *testing.T) {
	core := &stubCore{result: &checkout.Result{
		Transaction: "AQID",
		Message:     "Enjoy your Pizza de SOL!",
	}}
	router := newTestServer(core)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay/pizza",
		strings.NewReader(`{"account":"`+customerAccount+`"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transaction":"AQID","message":"Enjoy your Pizza de SOL!"}`, w.Body.String())
	assert.Equal(t, "pizza", core.product)
	assert.Equal(t, customerAccount, core.account)
}

func TestCheckoutErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"insufficient funds", checkout.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient funds"},
		{"customer not found", checkout.ErrCustomerNotFound, http.StatusNotFound, "customer not found"},
		{"customer frozen", checkout.ErrCustomerAccountFrozen, http.StatusConflict, "customer frozen"},
		{"mint not initialized", checkout.ErrMintNotInitialized, http.StatusConflict, "mint not initialized"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestServer(&stubCore{err: tt.err})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay/pizza",
				strings.NewReader(`{"account":"`+customerAccount+`"}`)))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, w.Body.String())
		})
	}
}
