package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/cache"
	"docuchat/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *app.DocumentService
	stats           *cache.StatsCache
	maxUploadBytes  int64
}

func NewDocumentHandler(documentService *app.DocumentService, stats *cache.StatsCache, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		stats:           stats,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Upload ingests a PDF sent as multipart form field "file".
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file upload")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, "only PDF files are supported")
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, "file size exceeds the upload limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read uploaded file failed")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read uploaded file failed")
		return
	}

	doc, err := h.documentService.Ingest(c.Request.Context(), content, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid upload")
		case errors.Is(err, app.ErrNoExtractableText):
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, "PDF contains no extractable text")
		case errors.Is(err, app.ErrIndexUnavailable):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to index document")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}
	response.OK(c, doc.Summarize())
}

// List returns all document summaries, newest first, via the stats cache.
func (h *DocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.stats != nil {
		if cached, ok, err := h.stats.GetDocumentList(ctx); err == nil && ok {
			response.OK(c, cached)
			return
		}
	}

	summaries, err := h.documentService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	if h.stats != nil {
		_ = h.stats.SetDocumentList(ctx, summaries)
	}
	response.OK(c, summaries)
}

// Delete removes a document and all of its stored representations.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, app.ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, "document not found")
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		}
		return
	}
	response.OK(c, gin.H{"document_id": id})
}
