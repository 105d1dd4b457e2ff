package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/entities"
)

// CategoryStore lists categories for the public API.
type CategoryStore interface {
	GetAllCategories() ([]entities.Category, error)
}

// CategoriesController serves the public category listing endpoint.
type CategoriesController struct {
	store CategoryStore
}

// NewCategoriesController creates a new CategoriesController.
func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

// List handles GET /api/categories.
func (controller *CategoriesController) List(c *gin.Context) {
	categories, err := controller.store.GetAllCategories()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
