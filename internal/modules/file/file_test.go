package file

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/storage"
)

func newRouter(t *testing.T, maxBytes int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store, err := storage.NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	allow := func(c *gin.Context) { c.Next() }
	NewHandler(store, maxBytes, []string{".jpg", ".png"}).RegisterRoutes(r.Group("/api"), allow)
	return r, dir
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func doUpload(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadStoresFile(t *testing.T) {
	r, dir := newRouter(t, 1<<20)
	body, ct := multipartBody(t, "Hero.JPG", []byte("jpeg bytes"))

	w := doUpload(r, body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.Key, "projects/") || !strings.HasSuffix(resp.Key, ".jpg") {
		t.Fatalf("key = %q", resp.Key)
	}
	if resp.URL != "/uploads/"+resp.Key {
		t.Fatalf("url = %q", resp.URL)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(resp.Key)))
	if err != nil || string(data) != "jpeg bytes" {
		t.Fatalf("stored = %q, %v", data, err)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/admin/uploads/"+resp.Key, nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, del)
	if dw.Code != http.StatusOK {
		t.Fatalf("delete status = %d", dw.Code)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(resp.Key))); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestUploadRejects(t *testing.T) {
	r, _ := newRouter(t, 16)
	cases := map[string]struct {
		name    string
		content []byte
	}{
		"disallowed type": {"script.exe", []byte("x")},
		"no extension":    {"README", []byte("x")},
		"too large":       {"big.png", bytes.Repeat([]byte("x"), 64)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.name, tc.content)
			if w := doUpload(r, body, ct); w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
			}
		})
	}

	w := doUpload(r, bytes.NewBufferString("plain"), "text/plain")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file status = %d", w.Code)
	}
}

func TestIsSafeSegment(t *testing.T) {
	for s, want := range map[string]bool{
		"projects":     true,
		"a1b2.jpg":     true,
		"..":           false,
		"a/b":          false,
		"name with sp": false,
		"%2e%2e":       false,
	} {
		if got := isSafeSegment(s); got != want {
			t.Errorf("isSafeSegment(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestUploadOverBodyLimitReportsSize(t *testing.T) {
	r, _ := newRouter(t, 16)
	body, ct := multipartBody(t, "huge.png", bytes.Repeat([]byte("x"), formOverhead+1024))

	w := doUpload(r, body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Message, "limit") {
		t.Fatalf("message = %q, want size limit", resp.Message)
	}
}
