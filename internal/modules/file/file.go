package file

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nilehomes/landing/internal/pkg/response"
	"github.com/nilehomes/landing/internal/pkg/storage"
)

const defaultFolder = "projects"

// multipart framing allowance on top of the file size limit
const formOverhead = 1 << 20

type Handler struct {
	store    storage.Store
	maxBytes int64
	allowed  map[string]struct{}
}

// NewHandler accepts uploads up to maxBytes whose extension is in allowedTypes (".jpg" style).
func NewHandler(store storage.Store, maxBytes int64, allowedTypes []string) *Handler {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, ext := range allowedTypes {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Handler{store: store, maxBytes: maxBytes, allowed: allowed}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin/uploads", authMW)
	g.POST("", h.upload)
	g.DELETE("/:folder/:name", h.delete)
}

type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

func (h *Handler) upload(c *gin.Context) {
	folder := normalizeFolder(c.DefaultQuery("folder", defaultFolder))
	if folder == "" {
		response.BadRequest(c, "invalid upload folder")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			response.BadRequest(c, h.tooLargeMessage())
			return
		}
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > h.maxBytes {
		response.BadRequest(c, h.tooLargeMessage())
		return
	}

	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileHeader.Filename)))
	if _, ok := h.allowed[ext]; !ok {
		response.BadRequest(c, "file type "+displayExt(ext)+" is not allowed")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = fileHeader.Header.Get("Content-Type")
	}

	key := folder + "/" + buildFileName(ext)
	url, err := h.store.Put(c.Request.Context(), storage.Object{
		Key:         key,
		Size:        fileHeader.Size,
		ContentType: contentType,
		Body:        src,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, uploadResponse{URL: url, Key: key})
}

func (h *Handler) delete(c *gin.Context) {
	folder := normalizeFolder(c.Param("folder"))
	name := safeName(c.Param("name"))
	if folder == "" || name == "" {
		response.BadRequest(c, "invalid path")
		return
	}
	if err := h.store.Delete(c.Request.Context(), folder+"/"+name); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Message(c, "File deleted")
}

func (h *Handler) tooLargeMessage() string {
	if h.maxBytes%(1<<20) != 0 {
		return fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes)
	}
	return fmt.Sprintf("file exceeds the %d MB limit", h.maxBytes>>20)
}

func buildFileName(ext string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

func displayExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}

func normalizeFolder(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || !isSafeSegment(raw) {
		return ""
	}
	return raw
}

func safeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" || !isSafeSegment(name) {
		return ""
	}
	return name
}

func isSafeSegment(s string) bool {
	if s == "." || s == ".." || len(s) > 128 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
