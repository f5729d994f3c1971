package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/prakashthakuri/Happy-Hours/api/routes"
	"github.com/prakashthakuri/Happy-Hours/internal/catalog"
	"github.com/prakashthakuri/Happy-Hours/internal/payments"
	pkgAuth "github.com/prakashthakuri/Happy-Hours/pkg/auth"
	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/dbtest"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
)

type inlineLocker struct{}

func (inlineLocker) WithUserLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type declineCharger struct{}

func (declineCharger) Charge(context.Context, *models.Order, enums.PaymentMethod, string) (payments.Result, error) {
	return payments.Result{Kind: payments.KindDeclined, DeclineCode: "card_declined"}, nil
}

func TestCartRoutesWithProductionWiring(t *testing.T) {
	client := dbtest.New(t)
	_, err := catalog.NewRepository(client.DB()).Create(context.Background(), &models.Item{
		Title:    "Old Forester",
		Slug:     "old-forester",
		Price:    decimal.RequireFromString("24.99"),
		Category: enums.ItemCategoryWhiskey,
	})
	require.NoError(t, err)

	svcs, err := newServices(serviceDeps{DB: client, Locker: inlineLocker{}, Charger: declineCharger{}})
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "happyhours-test", ExpirationMinutes: 30},
	}
	handler := routes.NewRouter(cfg, nil, nil, nil, nil, svcs.catalog, svcs.cart, svcs.checkout, svcs.orders)
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/api/v1/cart/items/nope", http.StatusNotFound},
		{http.MethodPost, "/api/v1/cart/items/old-forester", http.StatusCreated},
		{http.MethodDelete, "/api/v1/cart/items/nope", http.StatusNotFound},
		{http.MethodPost, "/api/v1/cart/items/nope/decrement", http.StatusNotFound},
		{http.MethodPost, "/api/v1/cart/items/old-forester/decrement", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		require.Equal(t, tc.status, resp.Code, "%s %s: %s", tc.method, tc.path, resp.Body.String())
		if tc.status == http.StatusNotFound {
			require.True(t, strings.Contains(resp.Body.String(), `"NOT_FOUND"`), resp.Body.String())
		}
	}
}
