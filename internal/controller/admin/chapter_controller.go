package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/internal/controller"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/service"
	"github.com/rs/zerolog/log"
)

type ChapterController struct {
	chapterService service.ChapterService
}

func NewChapterController(chapterService service.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

func (c *ChapterController) RegisterRoutes(rg *gin.RouterGroup) {
	chapters := rg.Group("/chapters")
	{
		chapters.GET("", c.GetAllChapters)
		chapters.POST("", c.CreateChapter)
		chapters.GET("/:id", c.GetChapter)
		chapters.PUT("/:id", c.UpdateChapter)
		chapters.DELETE("/:id", c.DeleteChapter)
	}
}

// CreateChapter godoc
// @Summary Create a chapter
// @Tags Admin - Chapters
// @Accept json
// @Produce json
// @Param chapter body dto.ChapterWriteRequest true "Chapter data"
// @Success 201 {object} dto.ChapterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req dto.ChapterWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateChapter: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.chapterService.Create(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAllChapters godoc
// @Summary List all chapters
// @Description Chapters ordered by project name, then chapter number
// @Tags Admin - Chapters
// @Produce json
// @Success 200 {array} dto.ChapterResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chapters [get]
func (c *ChapterController) GetAllChapters(ctx *gin.Context) {
	chapters, err := c.chapterService.GetAll()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chapters)
}

// GetChapter godoc
// @Summary Get a chapter by ID
// @Tags Admin - Chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.ChapterResponse
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [get]
func (c *ChapterController) GetChapter(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.chapterService.Get(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateChapter godoc
// @Summary Update a chapter
// @Tags Admin - Chapters
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param chapter body dto.ChapterWriteRequest true "Chapter data"
// @Success 200 {object} dto.ChapterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChapterWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.chapterService.Update(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteChapter godoc
// @Summary Delete a chapter
// @Description Fails with 409 while any assessment references the chapter
// @Tags Admin - Chapters
// @Param id path int true "Chapter ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter referenced by assessments"
// @Router /chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.chapterService.Delete(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
