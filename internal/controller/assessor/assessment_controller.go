package assessor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/internal/controller"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	assessmentService service.AssessmentService
}

func NewAssessmentController(assessmentService service.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentService: assessmentService}
}

func (c *AssessmentController) RegisterRoutes(rg *gin.RouterGroup) {
	assessments := rg.Group("/assessments")
	{
		assessments.POST("", c.CreateAssessment)
		assessments.GET("", c.ListAssessments)
		assessments.GET("/:id", c.GetAssessment)
		assessments.PUT("/:id", c.UpdateAssessment)
		assessments.DELETE("/:id", c.DeleteAssessment)
		assessments.PUT("/:id/calculate", c.RecalculateAssessment)
	}
}

// CreateAssessment godoc
// @Summary Submit a new chapter assessment
// @Description Persists the header and its leaf-level error counts in one transaction, then derives total score, predicate and status
// @Tags Assessments
// @Accept json
// @Produce json
// @Param assessment body dto.AssessmentWriteRequest true "Assessment header plus details (sub_aspect_id, error_count pairs)"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Referenced chapter or sub-aspect does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req dto.AssessmentWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.assessmentService.Create(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssessments godoc
// @Summary List assessments
// @Description Newest first. All filters are optional and combine conjunctively.
// @Tags Assessments
// @Produce json
// @Param chapter_id query int false "Filter by chapter"
// @Param status query string false "Filter by status (PENDING, LANJUT, ULANG)"
// @Param start_date query string false "Inclusive lower bound, YYYY-MM-DD"
// @Param end_date query string false "Inclusive upper bound, YYYY-MM-DD"
// @Success 200 {array} dto.AssessmentSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid filter format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	var filter dto.AssessmentListFilter

	if raw := ctx.Query("chapter_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid chapter_id format"})
			return
		}
		chapterID := uint(val)
		filter.ChapterID = &chapterID
	}
	if raw := ctx.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := ctx.Query("start_date"); raw != "" {
		filter.StartDate = &raw
	}
	if raw := ctx.Query("end_date"); raw != "" {
		filter.EndDate = &raw
	}

	summaries, err := c.assessmentService.List(filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetAssessment godoc
// @Summary Get one assessment with the full rubric view
// @Description Returns the header plus every rubric leaf, zero-filled where the assessment recorded no errors, with per-parameter error totals
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentViewDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	view, err := c.assessmentService.GetAssessmentView(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// UpdateAssessment godoc
// @Summary Update an assessment
// @Description Replaces the header fields and the entire detail set, then rederives the score triple in the same transaction
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param assessment body dto.AssessmentWriteRequest true "Full replacement payload"
// @Success 200 {object} dto.AssessmentSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Referenced chapter or sub-aspect does not exist"
// @Router /assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssessmentWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("assessmentID", id).Msg("UpdateAssessment: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.assessmentService.Update(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteAssessment godoc
// @Summary Delete an assessment and its details
// @Tags Assessments
// @Param id path int true "Assessment ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.assessmentService.Delete(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// RecalculateAssessment godoc
// @Summary Recompute the score triple from stored details
// @Description Idempotent: rereads the persisted details and score categories, then rewrites total_score, predicate and status
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.ScoreResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 500 {object} dto.ErrorResponse "Score falls outside every category band"
// @Router /assessments/{id}/calculate [put]
func (c *AssessmentController) RecalculateAssessment(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	result, err := c.assessmentService.Recalculate(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
