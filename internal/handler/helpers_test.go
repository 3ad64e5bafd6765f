package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inventory-spa/internal/middleware"
	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
	"inventory-spa/internal/service"
	"inventory-spa/internal/upload"
	"inventory-spa/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	user.ID = uuid.New()
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	r.users[username] = u
	return nil
}

type memStockRepo struct {
	mu      sync.Mutex
	items   []model.StockItem
	touched int
}

func (r *memStockRepo) Create(ctx context.Context, item *model.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched++
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	r.items = append(r.items, *item)
	return nil
}

func (r *memStockRepo) FindAll(ctx context.Context) ([]model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched++
	return append([]model.StockItem{}, r.items...), nil
}

type testEnv struct {
	app       *fiber.App
	auth      service.AuthService
	tokens    *jwt.Manager
	users     *memUserRepo
	stockRepo *memStockRepo
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:     &memUserRepo{users: map[string]model.User{}},
		stockRepo: &memStockRepo{},
		tokens:    jwt.NewManager("test-secret", "inventory-spa", time.Hour),
		uploadDir: t.TempDir(),
	}
	env.auth = service.NewAuthService(env.users, env.tokens)

	store, err := upload.NewLocalStore(env.uploadDir, "/uploads")
	require.NoError(t, err)
	stockSvc := service.NewStockService(env.stockRepo, store, nil)

	authHandler := NewAuthHandler(env.auth)
	stockHandler := NewStockHandler(stockSvc)
	dashHandler := NewDashboardHandler(service.NewDashboardService(env.stockRepo))

	env.app = fiber.New()
	api := env.app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(env.auth))
	protected.Post("/stock", stockHandler.CreateStock)
	protected.Get("/stock", stockHandler.GetStock)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	return env
}

func (env *testEnv) token(t *testing.T, username string) string {
	t.Helper()
	tok, _, err := env.tokens.GenerateToken(username)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var out map[string]any
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}
