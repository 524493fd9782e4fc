package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/routes"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// loginTestClient creates a user with a funded wallet and returns the client
// plus a bearer token for it
func loginTestClient(t *testing.T, money string) (*models.Client, string) {
	t.Helper()

	client := utils.CreateTestClient(t, "alice", decimal.RequireFromString(money))

	var user models.User
	require.NoError(t, config.DB.First(&user, "id = ?", client.UserID).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)
	return client, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGlobalMiddlewareRunsOnRoutes(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})

	// Headers set by the global middleware chain prove it wraps the
	// registered routes
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegisterAndLogin(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/register", "", gin.H{
		"username":   "bob",
		"email":      "bob@example.com",
		"first_name": "Bob",
		"last_name":  "Smith",
		"password":   "Secret123!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Registration opens the wallet alongside the account
	var user models.User
	require.NoError(t, config.DB.First(&user, "username = ?", "bob").Error)
	var client models.Client
	require.NoError(t, config.DB.First(&client, "user_id = ?", user.ID).Error)
	assert.True(t, client.Money.IsZero())

	w = doJSON(t, router, http.MethodPost, "/v1/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "Secret123!",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	body := gin.H{
		"username":   "bob",
		"email":      "bob@example.com",
		"first_name": "Bob",
		"last_name":  "Smith",
		"password":   "Secret123!",
	}
	w := doJSON(t, router, http.MethodPost, "/v1/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidPassword(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/register", "", gin.H{
		"username":   "bob",
		"email":      "bob@example.com",
		"first_name": "Bob",
		"last_name":  "Smith",
		"password":   "Secret123!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderRequiresAuthentication(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/orders", "", gin.H{
		"product_id": uuid.New(),
		"quantity":   1,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	client, token := loginTestClient(t, "500.00")
	product := utils.CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))
	promotion := utils.CreateTestPromotion(t, "Sale", 20)
	utils.LinkTestPromotion(t, product, promotion)

	w := doJSON(t, router, http.MethodPost, "/v1/orders", token, gin.H{
		"product_id": product.ID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			UnitPrice decimal.Decimal `json:"unit_price"`
			Total     decimal.Decimal `json:"total"`
			Money     decimal.Decimal `json:"money"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, decimal.RequireFromString("80.00").Equal(resp.Data.UnitPrice))
	assert.True(t, decimal.RequireFromString("160.00").Equal(resp.Data.Total))
	assert.True(t, decimal.RequireFromString("340.00").Equal(resp.Data.Money))

	var line models.ClientToProduct
	require.NoError(t, config.DB.First(&line, "client_id = ?", client.ID).Error)
	assert.Equal(t, 2, line.Quantity)
}

// The catalog price is authoritative; a price in the request body changes
// nothing
func TestPlaceOrderIgnoresClientPrice(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	client, token := loginTestClient(t, "100.00")
	product := utils.CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))

	w := doJSON(t, router, http.MethodPost, "/v1/orders", token, gin.H{
		"product_id": product.ID,
		"quantity":   1,
		"price":      "0.01",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Client
	require.NoError(t, config.DB.First(&fresh, "id = ?", client.ID).Error)
	assert.True(t, fresh.Money.IsZero(), "expected 0, got %s", fresh.Money)
}

func TestPlaceOrderInsufficientFunds(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	_, token := loginTestClient(t, "0")
	product := utils.CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))

	w := doJSON(t, router, http.MethodPost, "/v1/orders", token, gin.H{
		"product_id": product.ID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient funds")
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	_, token := loginTestClient(t, "100.00")

	w := doJSON(t, router, http.MethodPost, "/v1/orders", token, gin.H{
		"product_id": uuid.New(),
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelOrderEndToEnd(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	client, token := loginTestClient(t, "100.00")
	product := utils.CreateTestProduct(t, "Apples", decimal.RequireFromString("25.00"))

	w := doJSON(t, router, http.MethodPost, "/v1/orders", token, gin.H{
		"product_id": product.ID,
		"quantity":   4,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/orders/cancel", token, gin.H{
		"product_id":        product.ID,
		"price":             "25.00",
		"returned_quantity": 4,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Client
	require.NoError(t, config.DB.First(&fresh, "id = ?", client.ID).Error)
	assert.True(t, decimal.RequireFromString("100.00").Equal(fresh.Money))

	var count int64
	require.NoError(t, config.DB.Model(&models.ClientToProduct{}).
		Where("client_id = ?", client.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddFundsEndToEnd(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	client, token := loginTestClient(t, "10.00")

	w := doJSON(t, router, http.MethodPost, "/v1/profile/funds", token, gin.H{
		"money": "40.00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Client
	require.NoError(t, config.DB.First(&fresh, "id = ?", client.ID).Error)
	assert.True(t, decimal.RequireFromString("50.00").Equal(fresh.Money))

	w = doJSON(t, router, http.MethodPost, "/v1/profile/funds", token, gin.H{
		"money": "-5.00",
	})
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestQuoteOrderEndToEnd(t *testing.T) {
	utils.TestSetup(t)
	router := routes.SetupRouter()

	client, token := loginTestClient(t, "200.00")
	product := utils.CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))
	promotion := utils.CreateTestPromotion(t, "Sale", 10)
	utils.LinkTestPromotion(t, product, promotion)

	w := doJSON(t, router, http.MethodPost, "/v1/orders/quote", token, gin.H{
		"product_id": product.ID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Quote utils.PriceQuote `json:"quote"`
			Total decimal.Decimal  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Data.Quote.DiscountPercent)
	assert.True(t, decimal.RequireFromString("90.00").Equal(resp.Data.Quote.FinalPrice))
	assert.True(t, decimal.RequireFromString("180.00").Equal(resp.Data.Total))

	// A quote leaves the wallet and the owned lines untouched
	var fresh models.Client
	require.NoError(t, config.DB.First(&fresh, "id = ?", client.ID).Error)
	assert.True(t, decimal.RequireFromString("200.00").Equal(fresh.Money))
}
