package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/skillswap/skillswap-api/internal/api"
	v1 "github.com/skillswap/skillswap-api/internal/api/handler/v1"
	"github.com/skillswap/skillswap-api/internal/config"
)

func newRoutedServer() *api.Server {
	gin.SetMode(gin.TestMode)

	conf := &config.AppConfig{
		API: &config.APIConfig{
			BaseURL:       "localhost",
			JWTSigningKey: "test-signing-key",
		},
	}
	s := &api.Server{
		Config: conf,
		Router: gin.New(),
	}

	s.MountHandlers(
		v1.NewAuthHandler(conf.API, nil),
		v1.NewUserHandler(nil),
		v1.NewSkillHandler(nil),
		v1.NewOrderHandler(nil),
		v1.NewPointsHandler(nil),
		v1.NewReviewHandler(nil),
		v1.NewNotificationHandler(nil),
		v1.NewPaymentHandler(nil),
		v1.NewChatHandler(nil),
	)

	return s
}

// The ledger has no HTTP write surface: balances move only through orders,
// payments and signup. A raw posting request must not reach a handler, no
// matter whose ID it carries.
func TestLedgerHasNoWriteEndpoint(t *testing.T) {
	s := newRoutedServer()

	body := `{"user_id":42,"type":"bonus","amount":1000000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/points/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionHistoryRequiresAuth(t *testing.T) {
	s := newRoutedServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/points/transactions", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
