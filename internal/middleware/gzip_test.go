package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cartItemHandler отвечает строкой корзины с кодом корма из запроса.
func cartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
		Bags string `json:"bags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items": []map[string]string{{"code": req.Code, "bags": req.Bags}},
	})
}

func gzipped(t *testing.T, s string) io.Reader {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()

	var r io.Reader = res.Body
	if res.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(res.Body)
		require.NoError(t, err)
		defer zr.Close()
		r = zr
	}
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(body)
}

func TestGzipMiddleware(t *testing.T) {
	const cartItem = `{"code":"701 C","bags":"10"}`

	tests := []struct {
		name            string
		compressBody    bool
		acceptEncoding  string
		wantEncoding    string
		wantStatus      int
		wantBodyContain string
	}{
		{
			name:            "compressed response",
			acceptEncoding:  "gzip, deflate, br",
			wantEncoding:    "gzip",
			wantStatus:      http.StatusCreated,
			wantBodyContain: `"code":"701 C"`,
		},
		{
			name:            "plain response",
			wantStatus:      http.StatusCreated,
			wantBodyContain: `"bags":"10"`,
		},
		{
			name:            "compressed request and response",
			compressBody:    true,
			acceptEncoding:  "gzip",
			wantEncoding:    "gzip",
			wantStatus:      http.StatusCreated,
			wantBodyContain: `"code":"701 C"`,
		},
		{
			name:            "compressed request, plain response",
			compressBody:    true,
			wantStatus:      http.StatusCreated,
			wantBodyContain: `"code":"701 C"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(cartItem)
			if tt.compressBody {
				body = gzipped(t, cartItem)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", body)
			req.Header.Set("Content-Type", "application/json")
			if tt.compressBody {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			w := httptest.NewRecorder()
			GzipMiddleware(http.HandlerFunc(cartItemHandler)).ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
			assert.Equal(t, tt.wantEncoding, res.Header.Get("Content-Encoding"))
			assert.Contains(t, readBody(t, res), tt.wantBodyContain)
		})
	}
}

func TestGzipMiddlewareKeepsPDFAttachment(t *testing.T) {
	pdf := "%PDF-1.3\n" + strings.Repeat("0 0 0 rg\n", 200) + "%%EOF\n"
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="feed-history.pdf"`)
		_, _ = io.WriteString(w, pdf)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/history/feed/pdf", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "feed-history.pdf")
	assert.Less(t, w.Body.Len(), len(pdf))
	assert.Equal(t, pdf, readBody(t, res))
}

func TestGzipMiddlewareNoContent(t *testing.T) {
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestGzipMiddlewareRejectsCorruptRequestBody(t *testing.T) {
	called := false
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"code":"701 C"}`))
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
