package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/linkvault/internal/common"
	"github.com/dmitrijs2005/linkvault/internal/dbx"
	"github.com/dmitrijs2005/linkvault/internal/logging"
	"github.com/dmitrijs2005/linkvault/internal/server/config"
	"github.com/dmitrijs2005/linkvault/internal/server/models"
	bookmarksrepo "github.com/dmitrijs2005/linkvault/internal/server/repositories/bookmarks"
	usersrepo "github.com/dmitrijs2005/linkvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/linkvault/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- in-memory repositories ---

type memUsersRepo struct {
	byEmail map[string]*models.User
}

func (f *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	stored := *u
	f.byEmail[u.Email] = &stored
	return &stored, nil
}

func (f *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memBookmarksRepo struct {
	byID map[string]*models.Bookmark
}

func (f *memBookmarksRepo) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	stored := *b
	f.byID[b.ID] = &stored
	return &stored, nil
}

func (f *memBookmarksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	result := []*models.Bookmark{}
	for _, b := range f.byID {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *memBookmarksRepo) Delete(ctx context.Context, id string, userID string) error {
	b, ok := f.byID[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type memRepoManager struct {
	u *memUsersRepo
	b *memBookmarksRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) Bookmarks(db dbx.DBTX) bookmarksrepo.Repository {
	return m.b
}

// --- helpers ---

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	rm := &memRepoManager{
		u: &memUsersRepo{byEmail: map[string]*models.User{}},
		b: &memBookmarksRepo{byID: map[string]*models.Bookmark{}},
	}
	cfg := &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: 30 * time.Minute,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	as := services.NewAuthService(nil, rm, logger, cfg)
	bs := services.NewBookmarkService(nil, rm)

	srv, err := NewServer(":0", logger, as, bs, testSecret)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status: got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected non-empty accessToken")
	}
	return resp.AccessToken
}

// --- auth endpoints ---

func TestSignUp_Created(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "a@x.com", "pw1")
}

func TestSignUp_DuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "a@x.com", "pw1")

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{"email": "a@x.com", "password": "pw2"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body %s", w.Code, w.Body.String())
	}
}

func TestSignUp_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{"email": "a@x.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}
}

func TestSignIn_Success(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "a@x.com", "pw1")

	w := doJSON(t, router, http.MethodPost, "/auth/signin", "", gin.H{"email": "a@x.com", "password": "pw1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected non-empty accessToken")
	}
}

func TestSignIn_FailuresShareOneResponse(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "a@x.com", "pw1")

	wrongPassword := doJSON(t, router, http.MethodPost, "/auth/signin", "", gin.H{"email": "a@x.com", "password": "wrong"})
	unknownEmail := doJSON(t, router, http.MethodPost, "/auth/signin", "", gin.H{"email": "ghost@x.com", "password": "wrong"})

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("responses must not reveal which credential was wrong: %s vs %s",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

// --- bookmark endpoints ---

func TestBookmarks_RequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/bookmarks", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/bookmarks", "not.a.jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with malformed token, got %d", w.Code)
	}
}

func TestBookmarks_CreateListDelete(t *testing.T) {
	router := newTestRouter(t)
	token := signUp(t, router, "a@x.com", "pw1")

	w := doJSON(t, router, http.MethodPost, "/bookmarks", token,
		gin.H{"title": "Go blog", "link": "https://go.dev/blog", "description": "official blog"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d body %s", w.Code, w.Body.String())
	}
	var created models.Bookmark
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/bookmarks", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status: got %d body %s", w.Code, w.Body.String())
	}
	var list []models.Bookmark
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	w = doJSON(t, router, http.MethodDelete, "/bookmarks/"+created.ID, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/bookmarks/"+created.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status: got %d body %s", w.Code, w.Body.String())
	}
}

func TestBookmarks_OwnerScoped(t *testing.T) {
	router := newTestRouter(t)
	tokenA := signUp(t, router, "a@x.com", "pw1")
	tokenB := signUp(t, router, "b@x.com", "pw2")

	w := doJSON(t, router, http.MethodPost, "/bookmarks", tokenA,
		gin.H{"title": "Go blog", "link": "https://go.dev/blog"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d body %s", w.Code, w.Body.String())
	}
	var created models.Bookmark
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/bookmarks", tokenB, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status: got %d", w.Code)
	}
	var list []models.Bookmark
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("user B must not see user A's bookmarks: %+v", list)
	}

	w = doJSON(t, router, http.MethodDelete, "/bookmarks/"+created.ID, tokenB, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-owner delete: expected 404, got %d", w.Code)
	}
}
