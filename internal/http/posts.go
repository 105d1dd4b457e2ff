package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/entities"
)

const (
	defaultPostsPageSize = 20
	maxPostsPageSize     = 100
)

// PostStore lists published posts for the public API.
type PostStore interface {
	ListPosts(categorySlug string, limit, offset int) ([]entities.Post, error)
	CountPosts(categorySlug string) (int64, error)
	GetPostBySlug(slug string) (*entities.Post, error)
}

// PostsController serves the public post listing endpoints.
type PostsController struct {
	store PostStore
}

// NewPostsController creates a new PostsController.
func NewPostsController(store PostStore) *PostsController {
	return &PostsController{store: store}
}

// List handles GET /api/posts with optional category, limit and offset
// query parameters.
func (controller *PostsController) List(c *gin.Context) {
	limit := queryInt(c, "limit", defaultPostsPageSize)
	if limit < 1 || limit > maxPostsPageSize {
		limit = defaultPostsPageSize
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	categorySlug := c.Query("category")

	posts, err := controller.store.ListPosts(categorySlug, limit, offset)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	total, err := controller.store.CountPosts(categorySlug)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    posts,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(posts)) < total,
	})
}

// Get handles GET /api/posts/:slug.
func (controller *PostsController) Get(c *gin.Context) {
	post, err := controller.store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}
