package controller

import (
	"net/http"

	"github.com/foodgram/foodgram-backend/internal/app/presenter"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// ListTags returns every tag, unpaginated
// GET /api/tags
func (ctrl *TagController) ListTags(c *gin.Context) {
	tags, err := ctrl.tagService.List()
	if err != nil {
		respondServiceError(c, err, "list tags")
		return
	}
	c.JSON(http.StatusOK, presenter.Tags(tags))
}

// GetTag GET /api/tags/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get tag")
		return
	}
	c.JSON(http.StatusOK, presenter.TagView(*tag))
}
