package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/internal/controller"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/service"
	"github.com/rs/zerolog/log"
)

type RubricController struct {
	rubricService service.RubricService
}

func NewRubricController(rubricService service.RubricService) *RubricController {
	return &RubricController{rubricService: rubricService}
}

func (c *RubricController) RegisterRoutes(rg *gin.RouterGroup) {
	parameters := rg.Group("/parameters")
	{
		parameters.GET("", c.GetRubricTree)
		parameters.POST("", c.CreateParameter)
		parameters.PUT("/:id", c.UpdateParameter)
		parameters.DELETE("/:id", c.DeleteParameter)

		parameters.POST("/aspects", c.CreateAspect)
		parameters.PUT("/aspects/:id", c.UpdateAspect)
		parameters.DELETE("/aspects/:id", c.DeleteAspect)

		parameters.POST("/subaspects", c.CreateSubAspect)
		parameters.PUT("/subaspects/:id", c.UpdateSubAspect)
		parameters.DELETE("/subaspects/:id", c.DeleteSubAspect)
	}
}

// GetRubricTree godoc
// @Summary Get the full rubric tree
// @Description Returns every parameter with its nested aspects and sub-aspects, ordered by id at each level
// @Tags Admin - Rubric
// @Produce json
// @Success 200 {array} dto.ParameterResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parameters [get]
func (c *RubricController) GetRubricTree(ctx *gin.Context) {
	tree, err := c.rubricService.GetFullTree()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tree)
}

// CreateParameter godoc
// @Summary Create a rubric parameter
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param parameter body dto.ParameterWriteRequest true "Parameter data"
// @Success 201 {object} dto.ParameterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Parameter name already exists"
// @Router /parameters [post]
func (c *RubricController) CreateParameter(ctx *gin.Context) {
	var req dto.ParameterWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateParameter: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.CreateParameter(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateParameter godoc
// @Summary Rename a rubric parameter
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param id path int true "Parameter ID"
// @Param parameter body dto.ParameterWriteRequest true "Parameter data"
// @Success 200 {object} dto.ParameterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Parameter not found"
// @Router /parameters/{id} [put]
func (c *RubricController) UpdateParameter(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ParameterWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.UpdateParameter(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteParameter godoc
// @Summary Delete a rubric parameter
// @Description Fails with 409 while the parameter still owns aspects
// @Tags Admin - Rubric
// @Param id path int true "Parameter ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Parameter not found"
// @Failure 409 {object} dto.ErrorResponse "Parameter still owns aspects"
// @Router /parameters/{id} [delete]
func (c *RubricController) DeleteParameter(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.rubricService.DeleteParameter(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateAspect godoc
// @Summary Create an aspect under a parameter
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param aspect body dto.AspectCreateRequest true "Aspect data"
// @Success 201 {object} dto.AspectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Parent parameter not found"
// @Router /parameters/aspects [post]
func (c *RubricController) CreateAspect(ctx *gin.Context) {
	var req dto.AspectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAspect: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.CreateAspect(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateAspect godoc
// @Summary Rename or re-parent an aspect
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param id path int true "Aspect ID"
// @Param aspect body dto.AspectUpdateRequest true "Aspect data; include parameter_id to re-parent"
// @Success 200 {object} dto.AspectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Aspect or new parent not found"
// @Router /parameters/aspects/{id} [put]
func (c *RubricController) UpdateAspect(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AspectUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.UpdateAspect(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteAspect godoc
// @Summary Delete an aspect
// @Description Fails with 409 while the aspect still owns sub-aspects
// @Tags Admin - Rubric
// @Param id path int true "Aspect ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Aspect not found"
// @Failure 409 {object} dto.ErrorResponse "Aspect still owns sub-aspects"
// @Router /parameters/aspects/{id} [delete]
func (c *RubricController) DeleteAspect(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.rubricService.DeleteAspect(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateSubAspect godoc
// @Summary Create a sub-aspect under an aspect
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param sub_aspect body dto.SubAspectCreateRequest true "Sub-aspect data"
// @Success 201 {object} dto.SubAspectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Parent aspect not found"
// @Router /parameters/subaspects [post]
func (c *RubricController) CreateSubAspect(ctx *gin.Context) {
	var req dto.SubAspectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSubAspect: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.CreateSubAspect(req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateSubAspect godoc
// @Summary Rename or re-parent a sub-aspect
// @Tags Admin - Rubric
// @Accept json
// @Produce json
// @Param id path int true "Sub-aspect ID"
// @Param sub_aspect body dto.SubAspectUpdateRequest true "Sub-aspect data; include aspect_id to re-parent"
// @Success 200 {object} dto.SubAspectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Sub-aspect or new parent not found"
// @Router /parameters/subaspects/{id} [put]
func (c *RubricController) UpdateSubAspect(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubAspectUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.rubricService.UpdateSubAspect(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSubAspect godoc
// @Summary Delete a sub-aspect
// @Description Fails with 409 while any assessment detail references the sub-aspect
// @Tags Admin - Rubric
// @Param id path int true "Sub-aspect ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Sub-aspect not found"
// @Failure 409 {object} dto.ErrorResponse "Sub-aspect referenced by assessment details"
// @Router /parameters/subaspects/{id} [delete]
func (c *RubricController) DeleteSubAspect(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.rubricService.DeleteSubAspect(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
