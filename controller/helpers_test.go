package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Mayur79/ecommercebackend/controller"
	"github.com/Mayur79/ecommercebackend/gateway"
	"github.com/Mayur79/ecommercebackend/middleware"
	"github.com/Mayur79/ecommercebackend/model"
	"github.com/Mayur79/ecommercebackend/routes"
)

const testSecret = "test-secret"

// Mock payment gateway
type fakeGateway struct {
	mu        sync.Mutex
	saleCalls []saleCall
	failSale  bool
	failToken bool
}

type saleCall struct {
	amount float64
	nonce  string
}

func (g *fakeGateway) ClientToken(ctx context.Context) (string, error) {
	if g.failToken {
		return "", errors.New("gateway unreachable")
	}
	return "fake-client-token", nil
}

func (g *fakeGateway) Sale(ctx context.Context, amount float64, nonce string) (*gateway.SaleResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failSale {
		return nil, errors.New("processor declined")
	}
	g.saleCalls = append(g.saleCalls, saleCall{amount: amount, nonce: nonce})
	return &gateway.SaleResult{
		TransactionID: fmt.Sprintf("txn-%d", len(g.saleCalls)),
		Status:        "submitted_for_settlement",
		Amount:        amount,
		Success:       true,
	}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test; gorm pools connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Product{}, &model.Order{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeGateway) {
	t.Helper()

	db := newTestDB(t)
	gw := &fakeGateway{}

	app := fiber.New()
	auth := middleware.AuthRequired(testSecret)
	routes.RegisterAuthRoutes(app, controller.NewAuthController(db, testSecret), auth)
	routes.RegisterCategoryRoutes(app, controller.NewCategoryController(db), auth)
	routes.RegisterProductRoutes(app, controller.NewProductController(db, gw, nil, nil), auth)
	return app, db, gw
}

func authToken(t *testing.T, db *gorm.DB, role string) (string, *model.User) {
	t.Helper()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{
		Name:      "Test " + role,
		Email:     role + "@example.com",
		Password:  string(hashed),
		Answer:    "blue",
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed, user
}

func seedCategory(t *testing.T, db *gorm.DB, name, slugVal string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Slug: slugVal}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price float64, age time.Duration) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:        name,
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Description: name + " description",
		Price:       price,
		CategoryID:  categoryID,
		Quantity:    5,
		CreatedAt:   time.Now().Add(-age),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

func validProductFields(categoryID uint) map[string]string {
	return map[string]string{
		"name":        "Blue Suede Shoes",
		"description": "Classic footwear",
		"price":       "49.99",
		"category":    strconv.FormatUint(uint64(categoryID), 10),
		"quantity":    "10",
	}
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte, photoType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
		h.Set("Content-Type", photoType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create photo part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func jsonRequest(t *testing.T, method, target string, body interface{}, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return data
}

func productNames(t *testing.T, v interface{}) []string {
	t.Helper()

	items, ok := v.([]interface{})
	if !ok {
		t.Fatalf("expected array of products, got %T", v)
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("expected product object, got %T", item)
		}
		names = append(names, m["name"].(string))
	}
	return names
}
