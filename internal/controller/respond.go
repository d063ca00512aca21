package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError maps a tagged service error onto its HTTP status. Anything
// untagged is treated as an internal failure and logged with its cause; the
// client only ever sees the message, never the wrapped error.
func RespondError(ctx *gin.Context, err error) {
	var tagged *apperr.Error
	if !errors.As(err, &tagged) {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unclassified handler error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
		return
	}

	switch tagged.Kind {
	case apperr.KindValidation:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: tagged.Msg})
	case apperr.KindNotFound:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: tagged.Msg})
	case apperr.KindConflict:
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: tagged.Msg})
	case apperr.KindIntegrity:
		log.Error().Err(tagged).Str("path", ctx.FullPath()).Msg("Integrity defect")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: tagged.Msg})
	default:
		log.Error().Err(tagged).Str("path", ctx.FullPath()).Msg("Storage failure")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

// ParseIDParam reads a :param path segment as an unsigned id.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
