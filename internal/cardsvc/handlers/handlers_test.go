package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexcard/ecard-services/internal/cardsvc/service"
	"github.com/nexcard/ecard-services/internal/cardsvc/store"
)

const handlerTestTemplate = `<html><h1>{{FULLNAME}}</h1><div>{{SERVICES}}</div><div>{{TESTIMONIALS}}</div></html>`

type testEnv struct {
	router *chi.Mux
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	templateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "index.html"), []byte(handlerTestTemplate), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "style.css"), []byte("body{}"), 0644))

	cardStore, err := store.NewCardStore(dataDir)
	require.NoError(t, err)
	userStore, err := store.NewUserStore(dataDir)
	require.NoError(t, err)

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	cards := service.NewCardService(cardStore)
	auth := service.NewAuthService(userStore, tokenAuth)

	h := NewHandler(tokenAuth, cards, auth, templateDir)
	r := chi.NewRouter()
	h.SetRoutes(r)

	_, token, err := tokenAuth.Encode(map[string]interface{}{
		"sub": "test-admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return &testEnv{router: r, token: token}
}

func (e *testEnv) do(t *testing.T, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var rsp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
	return rsp
}

func TestSignupAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"jane@example.com","password":"s3cret","name":"Jane"}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	rsp := decodeResponse(t, w)
	data := rsp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "jane@example.com", data["email"])

	t.Run("duplicate signup rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"jane@example.com","password":"x"}`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/v1/auth/signup", `{"email":"other@example.com"}`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login ok", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/v1/auth/login", `{"email":"jane@example.com","password":"s3cret"}`, false)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/v1/auth/login", `{"email":"jane@example.com","password":"wrong"}`, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCardCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/ecards", `{"ownerId":"admin1","fullName":"Jane Doe","services":[{"title":"Consulting"}]}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	rsp := decodeResponse(t, w)
	card := rsp.Data.(map[string]interface{})
	id, _ := card["id"].(string)
	require.NotEmpty(t, id)

	t.Run("get returns saved services", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/"+id+"?ownerId=admin1", "", true)
		require.Equal(t, http.StatusOK, w.Code)

		rsp := decodeResponse(t, w)
		got := rsp.Data.(map[string]interface{})
		services := got["services"].([]interface{})
		require.Len(t, services, 1)
		assert.Equal(t, "Consulting", services[0].(map[string]interface{})["title"])
	})

	t.Run("list", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards?ownerId=admin1", "", true)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing ownerId is a validation error", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards", "", true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated request rejected", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards?ownerId=admin1", "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/v1/ecards/"+id+"?ownerId=admin1", "", true)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/v1/ecards/"+id+"?ownerId=admin1", "", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPreviewHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/ecards", `{"ownerId":"admin1","fullName":"Jane Doe"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	t.Run("renders html", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/preview/"+id+"?ownerId=admin1", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<h1>Jane Doe</h1>")
	})

	t.Run("missing card is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/preview/nope?ownerId=admin1", "", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPublicCardHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/ecards", `{"ownerId":"admin1","fullName":"John Q. Public"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("lookup by slug without auth", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/public/johnqpublic", "", false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "John Q. Public")
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/public/nobody", "", false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/ecards", `{"ownerId":"admin1","fullName":"Jane Doe","phone":"+1555000111","email":"jane@example.com"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	t.Run("streams a zip bundle", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/export/"+id+"?ownerId=admin1", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=Jane_Doe.zip", w.Header().Get("Content-Disposition"))

		raw := w.Body.Bytes()
		zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
		require.NoError(t, err)

		names := []string{}
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "index.html")
		assert.Contains(t, names, "style.css")
		assert.Contains(t, names, "Jane_Doe.vcf")
		assert.False(t, strings.Contains(strings.Join(names, ","), "template.vcf"))
	})

	t.Run("missing card is 404, not a broken stream", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/v1/ecards/export/nope?ownerId=admin1", "", true)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}
