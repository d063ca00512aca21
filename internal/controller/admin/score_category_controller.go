package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/internal/controller"
	"github.com/nandaakram/chapter-assessment/internal/service"
)

type ScoreCategoryController struct {
	categoryService service.ScoreCategoryService
}

func NewScoreCategoryController(categoryService service.ScoreCategoryService) *ScoreCategoryController {
	return &ScoreCategoryController{categoryService: categoryService}
}

func (c *ScoreCategoryController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/score-categories", c.GetScoreCategories)
}

// GetScoreCategories godoc
// @Summary List score category bands
// @Description Bands in catalog order; the scoring engine resolves predicates against this order
// @Tags Admin - Score Categories
// @Produce json
// @Success 200 {array} dto.ScoreCategoryResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /score-categories [get]
func (c *ScoreCategoryController) GetScoreCategories(ctx *gin.Context) {
	categories, err := c.categoryService.List()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}
