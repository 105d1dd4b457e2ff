package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/importer"
	"github.com/fozemdestaque/portal/internal/wxr"
)

// maxUploadSize caps WXR file uploads (50 MB).
const maxUploadSize = 50 * 1024 * 1024

// WXRImporter runs one paged import invocation.
type WXRImporter interface {
	Run(ctx context.Context, opts importer.RunOptions) (*importer.Summary, error)
}

// WXRImportController handles WordPress export imports.
type WXRImportController struct {
	importer WXRImporter
}

// NewWXRImportController creates a new WXRImportController.
func NewWXRImportController(imp WXRImporter) *WXRImportController {
	return &WXRImportController{importer: imp}
}

// wxrImportRequest is the JSON body variant: a remote export URL plus
// pagination controls.
type wxrImportRequest struct {
	URL        string `json:"url"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
	SkipImages bool   `json:"skip_images"`
}

// Import handles POST /api/admin/import/wordpress. The export arrives either
// as a multipart "file" field or as a JSON body naming a remote URL; exactly
// one source is used per invocation.
func (controller *WXRImportController) Import(c *gin.Context) {
	opts, ok := controller.parseRequest(c)
	if !ok {
		return
	}

	user := auth.GetUser(c)
	opts.AuthorID = user.ID

	summary, err := controller.importer.Run(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, wxr.ErrInvalidFormat) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseRequest extracts RunOptions from either request shape. Responds with
// 400 and returns ok=false on malformed input.
func (controller *WXRImportController) parseRequest(c *gin.Context) (importer.RunOptions, bool) {
	var opts importer.RunOptions

	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
		if readErr != nil {
			respondBadRequest(c, "failed to read uploaded file")
			return opts, false
		}
		if len(data) > maxUploadSize {
			respondBadRequest(c, "uploaded file too large (max 50 MB)")
			return opts, false
		}
		opts.Data = data
		opts.Offset = formInt(c, "offset")
		opts.Limit = formInt(c, "limit")
		opts.SkipImages = formBool(c, "skip_images")
		return opts, true
	}

	var req wxrImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "provide a WXR file upload or a JSON body with a url")
		return opts, false
	}
	if req.URL == "" {
		respondBadRequest(c, "url is required when no file is uploaded")
		return opts, false
	}

	opts.SourceURL = req.URL
	opts.Offset = req.Offset
	opts.Limit = req.Limit
	opts.SkipImages = req.SkipImages
	return opts, true
}

func formInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.PostForm(name))
	if err != nil {
		return 0
	}
	return value
}

func formBool(c *gin.Context, name string) bool {
	value, err := strconv.ParseBool(c.PostForm(name))
	if err != nil {
		return false
	}
	return value
}
