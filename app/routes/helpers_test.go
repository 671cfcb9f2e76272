package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postboard/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// setupTestRouter builds the full router over a Badger store living in a
// per-test directory.
func setupTestRouter(t *testing.T) (*mux.Router, *repositories.BadgerStore) {
	t.Helper()
	store, err := repositories.OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return SetupRoutes(store.Posts(), store.Comments()), store
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into a generic JSON value.
func decode(t *testing.T, res *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &v), res.Body.String())
	return v
}

func object(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	m, ok := decode(t, res).(map[string]interface{})
	require.True(t, ok, "expected a JSON object, got %s", res.Body.String())
	return m
}

func array(t *testing.T, res *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	raw, ok := decode(t, res).([]interface{})
	require.True(t, ok, "expected a JSON array, got %s", res.Body.String())
	items := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		items = append(items, item.(map[string]interface{}))
	}
	return items
}
