package controller

import (
	"errors"
	"strconv"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service         *service.AssessmentService
	QuestionService *service.QuestionService
}

func NewAssessmentController(svc *service.AssessmentService, questionSvc *service.QuestionService) *AssessmentController {
	return &AssessmentController{Service: svc, QuestionService: questionSvc}
}

// ListQuestions godoc
// @Summary Questions for one level
// @Description Learner-facing question list, without correctness flags
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param level query string true "level code (1-3)"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /assessment/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	level := model.Level(ctx.Query("level"))
	if level == "" {
		level = model.Level1
	}

	views, err := c.QuestionService.ListForLevel(ctx.Request.Context(), level)
	if err != nil {
		if errors.Is(err, util.ErrInvalidLevel) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// StartAssessment godoc
// @Summary Start a new assessment
// @Description Opens a level-1 pass and pre-creates placeholder responses
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /assessment/start [post]
func (c *AssessmentController) StartAssessment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.Service.StartAssessment(user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentActive):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrProfileNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"assessment_id": assessment.ID,
		"message":       "Assessment started at level 1.",
	})
}

// SubmitResponse godoc
// @Summary Record an answer
// @Description Upserts the learner's answer for one question
// @Tags assessment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RecordResponseRequest true "answer payload"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /assessment/submit-response [post]
func (c *AssessmentController) SubmitResponse(ctx *gin.Context) {
	var req service.RecordResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.RecordResponse(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound),
			errors.Is(err, util.ErrProfileNotFound),
			errors.Is(err, util.ErrQuestionNotFound),
			errors.Is(err, util.ErrChoiceMismatch),
			errors.Is(err, util.ErrAssessmentComplete):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":     "Response recorded.",
		"response_id": resp.ID,
	})
}

type SubmitLevelRequest struct {
	AssessmentID uint `json:"assessment_id" binding:"required"`
}

// SubmitLevel godoc
// @Summary Score the current level
// @Description Scores the level and advances, completes or terminates the assessment
// @Tags assessment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitLevelRequest true "assessment reference"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessment/submit [post]
func (c *AssessmentController) SubmitLevel(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.Service.SubmitLevel(req.AssessmentID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrNoResponses):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, outcome)
}

// GetResults godoc
// @Summary Latest per-level results
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /assessment/results [get]
func (c *AssessmentController) GetResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Service.LatestResults(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"results": results})
}

// GetHistory godoc
// @Summary Full assessment history
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /assessment/history [get]
func (c *AssessmentController) GetHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.Service.History(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"history": history})
}

// parseTopN reads an optional top-N query parameter with a default.
func parseTopN(ctx *gin.Context, def int) int {
	if raw := ctx.Query("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}
