package controller

import (
	"errors"

	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TelemetryController struct {
	Service *service.TelemetryService
}

func NewTelemetryController(svc *service.TelemetryService) *TelemetryController {
	return &TelemetryController{Service: svc}
}

// RecordEvent godoc
// @Summary Record a UX telemetry event
// @Description Appends one event to the telemetry log
// @Tags telemetry
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TelemetryEventRequest true "event payload"
// @Success 202 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /assessment/telemetry [post]
func (c *TelemetryController) RecordEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TelemetryEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.Service.RecordEvent(user.UserID, req); err != nil {
		if errors.Is(err, util.ErrEventTypeRequired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Accepted(ctx, gin.H{"status": "accepted"})
}

// GetSummary godoc
// @Summary Aggregate telemetry summary
// @Description Counts, top events and funnel/drop-off ratios (admin only)
// @Tags telemetry
// @Produce json
// @Security ApiKeyAuth
// @Param top query int false "top-N event ranking size"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /assessment/telemetry-summary [get]
func (c *TelemetryController) GetSummary(ctx *gin.Context) {
	summary, err := c.Service.Summarize(parseTopN(ctx, 10))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
