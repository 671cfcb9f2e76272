package routes

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Request logging is noise here; middleware tests cover it.
	log.SetOutput(&bytes.Buffer{})
	os.Exit(m.Run())
}

func TestPostRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("POST /posts creates a post", func(t *testing.T) {
		res := do(t, router, "POST", "/posts", `{"title":"Hello, World","body":"This is my first post"}`)

		require.Equal(t, http.StatusCreated, res.Code)
		require.Equal(t, "application/json", res.Header().Get("Content-Type"))
		post := object(t, res)
		assert.Equal(t, float64(1), post["id"])
		assert.Equal(t, "Hello, World", post["title"])
		assert.Equal(t, "This is my first post", post["body"])
	})

	t.Run("GET /posts/:id round-trips", func(t *testing.T) {
		res := do(t, router, "GET", "/posts/1", "")

		require.Equal(t, http.StatusOK, res.Code)
		post := object(t, res)
		assert.Equal(t, float64(1), post["id"])
		assert.Equal(t, "Hello, World", post["title"])
		assert.Equal(t, "This is my first post", post["body"])
	})

	t.Run("GET /posts lists in creation order", func(t *testing.T) {
		do(t, router, "POST", "/posts", `{"title":"Howdy, World","body":"This is my second post"}`)
		do(t, router, "POST", "/posts", `{"title":"Ahoy, World","body":"This is my third post"}`)

		res := do(t, router, "GET", "/posts", "")
		require.Equal(t, http.StatusOK, res.Code)
		posts := array(t, res)
		require.Len(t, posts, 3)
		assert.Equal(t, "Hello, World", posts[0]["title"])
		assert.Equal(t, "Howdy, World", posts[1]["title"])
		assert.Equal(t, "Ahoy, World", posts[2]["title"])
	})

	t.Run("DELETE then GET returns 404", func(t *testing.T) {
		res := do(t, router, "DELETE", "/posts/2", "")
		require.Equal(t, http.StatusNoContent, res.Code)
		assert.Empty(t, res.Body.String())
		assert.Empty(t, res.Header().Get("Content-Type"))

		res = do(t, router, "GET", "/posts/2", "")
		require.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, map[string]interface{}{"error": "Post not found"}, object(t, res))
	})
}

func TestPutUpsert(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, id := range []int{1, 7, 250} {
		t.Run(fmt.Sprintf("post %d", id), func(t *testing.T) {
			path := fmt.Sprintf("/posts/%d", id)

			res := do(t, router, "PUT", path, `{"title":"created","body":"by put"}`)
			require.Equal(t, http.StatusCreated, res.Code)
			assert.Equal(t, float64(id), object(t, res)["id"])

			res = do(t, router, "PUT", path, `{"title":"replaced"}`)
			require.Equal(t, http.StatusOK, res.Code)
			post := object(t, res)
			assert.Equal(t, float64(id), post["id"])
			assert.Equal(t, "replaced", post["title"])
			assert.Nil(t, post["body"])

			res = do(t, router, "GET", path, "")
			require.Equal(t, http.StatusOK, res.Code)
			assert.Nil(t, object(t, res)["body"])
		})
	}

	t.Run("exactly one post per id", func(t *testing.T) {
		posts := array(t, do(t, router, "GET", "/posts", ""))
		assert.Len(t, posts, 3)
	})

	t.Run("POST continues above explicit ids", func(t *testing.T) {
		res := do(t, router, "POST", "/posts", `{"title":"auto"}`)
		require.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, float64(251), object(t, res)["id"])
	})
}

func TestNotFoundMessages(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		method  string
		path    string
		message string
	}{
		{"GET", "/posts/1", "Post not found"},
		{"DELETE", "/posts/1", "Post not found"},
		{"GET", "/comments/1", "Comment not found"},
		{"DELETE", "/comments/1", "Comment not found"},
		{"GET", "/nowhere", "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			res := do(t, router, tt.method, tt.path, "")

			require.Equal(t, http.StatusNotFound, res.Code)
			assert.Equal(t, tt.message, object(t, res)["error"])
		})
	}
}

func TestCommentRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("worked example", func(t *testing.T) {
		res := do(t, router, "POST", "/posts", `{"title":"Hello, World","body":"This is my first post"}`)
		require.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, float64(1), object(t, res)["id"])

		res = do(t, router, "PUT", "/comments/1", `{"postId":1,"name":"A","email":"a@x.io","body":"nice"}`)
		require.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, float64(1), object(t, res)["id"])

		res = do(t, router, "GET", "/posts/1/comments", "")
		require.Equal(t, http.StatusOK, res.Code)
		comments := array(t, res)
		require.Len(t, comments, 1)
		assert.Equal(t, float64(1), comments[0]["id"])
		assert.Equal(t, float64(1), comments[0]["postId"])
		assert.Equal(t, "A", comments[0]["name"])
		assert.Equal(t, "a@x.io", comments[0]["email"])
		assert.Equal(t, "nice", comments[0]["body"])
	})

	t.Run("comments may reference absent posts", func(t *testing.T) {
		res := do(t, router, "POST", "/comments", `{"postId":9,"name":"B","body":"early"}`)
		require.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, float64(2), object(t, res)["id"])

		res = do(t, router, "GET", "/posts/9/comments", "")
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `[]`, res.Body.String())
	})

	t.Run("filter by postId", func(t *testing.T) {
		do(t, router, "POST", "/comments", `{"postId":1,"body":"again"}`)

		byPost := array(t, do(t, router, "GET", "/comments?postId=1", ""))
		require.Len(t, byPost, 2)
		assert.Equal(t, "nice", byPost[0]["body"])
		assert.Equal(t, "again", byPost[1]["body"])

		all := array(t, do(t, router, "GET", "/comments", ""))
		assert.Len(t, all, 3)
	})

	t.Run("post comments in creation order", func(t *testing.T) {
		comments := array(t, do(t, router, "GET", "/posts/1/comments", ""))
		require.Len(t, comments, 2)
		assert.Equal(t, float64(1), comments[0]["id"])
		assert.Equal(t, float64(3), comments[1]["id"])
	})

	t.Run("deleting a post keeps its comments", func(t *testing.T) {
		res := do(t, router, "DELETE", "/posts/1", "")
		require.Equal(t, http.StatusNoContent, res.Code)

		res = do(t, router, "GET", "/posts/1/comments", "")
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `[]`, res.Body.String())

		byPost := array(t, do(t, router, "GET", "/comments?postId=1", ""))
		assert.Len(t, byPost, 2)
	})
}

func TestCollectionTrailingSlash(t *testing.T) {
	router, _ := setupTestRouter(t)

	res := do(t, router, "POST", "/posts/", `{"title":"slash"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, float64(1), object(t, res)["id"])

	res = do(t, router, "POST", "/comments/", `{"postId":1,"body":"slash"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, float64(1), object(t, res)["postId"])

	for _, path := range []string{"/posts", "/posts/", "/comments", "/comments/", "/comments/?postId=1"} {
		t.Run("GET "+path, func(t *testing.T) {
			res := do(t, router, "GET", path, "")
			require.Equal(t, http.StatusOK, res.Code)
			assert.Len(t, array(t, res), 1)
		})
	}
}

func TestPostAfterLargestID(t *testing.T) {
	router, _ := setupTestRouter(t)
	path := fmt.Sprintf("/posts/%d", math.MaxInt)

	res := do(t, router, "PUT", path, `{"title":"last"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = do(t, router, "POST", "/posts", `{"title":"overflow"}`)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "Internal Server Error", object(t, res)["error"])

	posts := array(t, do(t, router, "GET", "/posts", ""))
	require.Len(t, posts, 1)
	assert.Positive(t, posts[0]["id"])
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestJSONErrorLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(&bytes.Buffer{}) })

	w := failingWriter{httptest.NewRecorder()}
	jsonError("Not found", http.StatusNotFound).ServeHTTP(w, httptest.NewRequest("GET", "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, buf.String(), "encode response: connection reset")
}
