package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/entities"
	"github.com/fozemdestaque/portal/internal/importer"
)

// stubStore implements the store interfaces backing the router.
type stubStore struct {
	posts      []entities.Post
	categories []entities.Category
	users      map[string]*entities.User

	listErr error
}

func (s *stubStore) ListPosts(categorySlug string, limit, offset int) ([]entities.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.posts) {
		end = len(s.posts)
	}
	return s.posts[offset:end], nil
}

func (s *stubStore) CountPosts(categorySlug string) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *stubStore) GetPostBySlug(slug string) (*entities.Post, error) {
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			return &s.posts[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *stubStore) GetAllCategories() ([]entities.Category, error) {
	return s.categories, nil
}

func (s *stubStore) GetUserByUsername(username string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *stubStore) GetUserByToken(token string) (*entities.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

// stubImporter records the options it was invoked with.
type stubImporter struct {
	lastOpts importer.RunOptions
	summary  *importer.Summary
	err      error
}

func (s *stubImporter) Run(ctx context.Context, opts importer.RunOptions) (*importer.Summary, error) {
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func newTestRouter(store *stubStore, imp *stubImporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{
		PostStore:      store,
		CategoryStore:  store,
		UserStore:      store,
		Importer:       imp,
		AuthMiddleware: auth.NewMiddleware(store),
		Version:        "test",
	})
}

func testStore() *stubStore {
	hash, _ := auth.HashPassword("senha-segura", 4)
	return &stubStore{
		posts: []entities.Post{
			{ID: "p1", Title: "Obras na ponte", Slug: "obras-na-ponte"},
			{ID: "p2", Title: "Festival de inverno", Slug: "festival-de-inverno"},
			{ID: "p3", Title: "Novo terminal", Slug: "novo-terminal"},
		},
		categories: []entities.Category{
			{ID: "c1", Name: "Cidade", Slug: "cidade"},
		},
		users: map[string]*entities.User{
			"editor-token": {ID: "u1", Username: "editora", Role: entities.RoleEditor, Token: "editor-token", PasswordHash: hash},
			"reader-token": {ID: "u2", Username: "leitor", Role: entities.RoleReader, Token: "reader-token"},
		},
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouter_ListPosts(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts?limit=2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(3), response.Total)
	assert.Equal(t, 2, response.Limit)
	assert.True(t, response.HasMore)
}

func TestRouter_ListPosts_BadLimitFallsBack(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts?limit=abc&offset=-3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, defaultPostsPageSize, response.Limit)
	assert.Equal(t, 0, response.Offset)
}

func TestRouter_GetPost(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/posts/obras-na-ponte", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var post entities.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "Obras na ponte", post.Title)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/posts/nao-existe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ListCategories(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/categories", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var categories []entities.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "cidade", categories[0].Slug)
}

func TestRouter_Login(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"valid credentials", `{"username":"editora","password":"senha-segura"}`, http.StatusOK},
		{"wrong password", `{"username":"editora","password":"errada"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"ninguem","password":"senha-segura"}`, http.StatusUnauthorized},
		{"missing fields", `{"username":"editora"}`, http.StatusBadRequest},
		{"garbage body", `not-json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response loginResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "editor-token", response.Token)
				assert.Equal(t, "editor", response.Role)
			}
		})
	}
}

func TestRouter_ImportRequiresAuth(t *testing.T) {
	router := newTestRouter(testStore(), &stubImporter{})

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"unknown token", "bogus", http.StatusUnauthorized},
		{"reader role", "reader-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/admin/import/wordpress", bytes.NewBufferString(`{"url":"http://example.com/export.xml"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
