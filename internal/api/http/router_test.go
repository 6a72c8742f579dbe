package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/storage"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "generated"
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCategoryRepo struct {
	categories []domain.Category
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = "cat-1"
	r.categories = append(r.categories, *category)
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return r.categories, nil
}

type memTagRepo struct {
	tags []domain.Tag
}

func (r *memTagRepo) Create(_ context.Context, tag *domain.Tag) error {
	tag.ID = "tag-1"
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *memTagRepo) List(_ context.Context) ([]domain.Tag, error) {
	return r.tags, nil
}

type memFileRepo struct {
	records map[string]*domain.FileRecord
}

func (r *memFileRepo) Create(_ context.Context, file *domain.FileRecord) error {
	file.ID = "file-1"
	r.records[file.ID] = file
	return nil
}

func (r *memFileRepo) GetByID(_ context.Context, id string) (*domain.FileRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *rec
	return &copied, nil
}

func (r *memFileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *memFileRepo) List(_ context.Context) ([]domain.FileRecord, error) {
	var out []domain.FileRecord
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

type unreachableBlobStore struct{}

func (unreachableBlobStore) Put(context.Context, []byte, storage.BlobMetadata) (string, error) {
	return "", errors.New("blob store unreachable")
}

func (unreachableBlobStore) Delete(context.Context, string) error {
	return errors.New("blob store unreachable")
}

type testEnv struct {
	app      *fiber.App
	authSvc  *service.AuthService
	fileRepo *memFileRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	adminHash, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	readerHash, err := auth.HashPassword("reader-pass", bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &memUserRepo{users: map[string]*domain.User{
		"a@b.com": {ID: "admin-1", Name: "Owner", Email: "a@b.com", PasswordHash: adminHash, Role: domain.RoleAdmin},
		"r@b.com": {ID: "reader-1", Name: "Reader", Email: "r@b.com", PasswordHash: readerHash, Role: domain.RoleUser},
	}}
	fileRepo := &memFileRepo{records: map[string]*domain.FileRecord{
		"file-1": {ID: "file-1", FileName: "cv.pdf", URL: "https://bucket.s3.us-east-1.amazonaws.com/uploads/x/cv.pdf", UploaderID: "admin-1"},
	}}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenTTLHours:  168,
		RefreshTokenTTLHours: 720,
		BcryptCost:           bcrypt.MinCost,
	}}

	authSvc := service.NewAuthService(cfg, userRepo)
	contentSvc := service.NewContentService(service.ContentDependencies{
		CategoryRepo: &memCategoryRepo{},
		TagRepo:      &memTagRepo{},
		Views:        service.NewViewCounter(nil, zap.NewNop()),
	})
	fileSvc := service.NewFileService(fileRepo, unreachableBlobStore{}, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("portfolio-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:       handlers.NewAuthHandler(authSvc),
		Taxonomy:   handlers.NewTaxonomyHandler(contentSvc),
		Posts:      handlers.NewPostsHandler(contentSvc),
		Projects:   handlers.NewProjectsHandler(contentSvc),
		Files:      handlers.NewFilesHandler(fileSvc),
		Middleware: auth.NewMiddleware(authSvc.TokenManager()),
	})

	return &testEnv{app: app, authSvc: authSvc, fileRepo: fileRepo}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *stdhttp.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) loginToken(t *testing.T, email, password string) string {
	t.Helper()
	result, err := e.authSvc.Login(context.Background(), email, password)
	require.NoError(t, err)
	return result.AccessToken
}

func decodeBody(t *testing.T, resp *stdhttp.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPublicReadsSkipTheGate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, stdhttp.MethodGet, "/categories", "", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	resp = env.request(t, stdhttp.MethodGet, "/tags", "", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestMutationsRequireCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, stdhttp.MethodPost, "/categories", "", map[string]string{"name": "Go"})
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, stdhttp.MethodDelete, "/files/file-1", "", nil)
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
}

func TestMutationsRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	readerToken := env.loginToken(t, "r@b.com", "reader-pass")

	resp := env.request(t, stdhttp.MethodPost, "/categories", readerToken, map[string]string{"name": "Go"})
	require.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)

	resp = env.request(t, stdhttp.MethodGet, "/files", readerToken, nil)
	require.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
}

func TestAdminCanCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginToken(t, "a@b.com", "secret")

	resp := env.request(t, stdhttp.MethodPost, "/categories", adminToken, map[string]string{"name": "Go Notes"})
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	resp = env.request(t, stdhttp.MethodGet, "/categories", "", nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	categories := body["data"].(map[string]any)["categories"].([]any)
	require.Len(t, categories, 1)
	require.Equal(t, "go-notes", categories[0].(map[string]any)["slug"])
}

func TestLoginAndVerify(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, stdhttp.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "secret"})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	authData := data["auth"].(map[string]any)
	require.NotEmpty(t, authData["access_token"])
	user := data["user"].(map[string]any)
	require.Equal(t, "a@b.com", user["email"])
	_, hasPassword := user["password_hash"]
	require.False(t, hasPassword)

	token := authData["access_token"].(string)
	resp = env.request(t, stdhttp.MethodGet, "/auth/verify", token, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	verify := decodeBody(t, resp)
	require.Equal(t, "ADMIN", verify["data"].(map[string]any)["user"].(map[string]any)["role"])
}

func TestCreateCategoryRejectsMissingName(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginToken(t, "a@b.com", "secret")

	resp := env.request(t, stdhttp.MethodPost, "/categories", adminToken, map[string]string{"slug": "no-name"})
	require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, stdhttp.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, stdhttp.MethodPost, "/auth/login", "", map[string]string{"email": "nouser@x.com", "password": "x"})
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginToken(t, "a@b.com", "secret")

	resp := env.request(t, stdhttp.MethodGet, "/auth/verify", token+"x", nil)
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
}

func TestFileDeleteSurvivesBlobOutage(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginToken(t, "a@b.com", "secret")

	resp := env.request(t, stdhttp.MethodDelete, "/files/file-1", adminToken, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.Empty(t, env.fileRepo.records, "record removed even though the blob store was down")
}

func TestFileGetUnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginToken(t, "a@b.com", "secret")

	resp := env.request(t, stdhttp.MethodGet, "/files/missing", adminToken, nil)
	require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
}
