package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gpacalc/internal/app/models/dto"
	"github.com/yigit/gpacalc/internal/app/services"
	"github.com/yigit/gpacalc/internal/grading"
	"github.com/yigit/gpacalc/internal/middleware"
	"github.com/yigit/gpacalc/internal/pkg/validation"
)

// GradingController serves the stateless grading endpoints
type GradingController struct {
	gradingService services.GradingService
}

// NewGradingController creates a new GradingController
func NewGradingController(gradingService services.GradingService) *GradingController {
	return &GradingController{
		gradingService: gradingService,
	}
}

// GetScale returns the grading scale
// @Summary Get the grading scale
// @Description Returns every grade band from A+ down to F with its grade points and minimum percentage
// @Tags grading
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GradeScaleResponse} "Grading scale"
// @Router /grading/scale [get]
func (c *GradingController) GetScale(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.GradeScaleResponse{
		Grades:        c.gradingService.Scale(),
		MaxGradePoint: grading.MaxGradePoint,
	}))
}

// Resolve converts a percentage into a letter grade
// @Summary Resolve a percentage
// @Description Returns the letter grade and grade points for a score. A missing or out-of-range score resolves to N/A
// @Tags grading
// @Produce json
// @Param score query number false "Percentage between 0 and 100"
// @Success 200 {object} dto.APIResponse{data=dto.ResolveResponse} "Resolved grade"
// @Failure 400 {object} dto.ErrorResponse "Score is not a finite number"
// @Router /grading/resolve [get]
func (c *GradingController) Resolve(ctx *gin.Context) {
	var score *float64
	if raw := strings.TrimSpace(ctx.Query("score")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validation.Finite(v) {
			middleware.AbortBadRequest(ctx, "Invalid score", "score must be a finite number")
			return
		}
		score = &v
	}

	grade, points := c.gradingService.Resolve(score)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ResolveResponse{
		Score:  score,
		Grade:  grade,
		Points: points,
		Fill:   grading.GradeColor(score),
	}))
}

// Calculate aggregates a posted course list
// @Summary Calculate a GPA
// @Description Computes the credit-weighted GPA and chart series of a course list without creating a session
// @Tags grading
// @Accept json
// @Produce json
// @Param request body dto.CalculateRequest true "Courses"
// @Success 200 {object} dto.APIResponse{data=dto.CalculateResponse} "Calculation result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /grading/calculate [post]
func (c *GradingController) Calculate(ctx *gin.Context) {
	var req dto.CalculateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, chart := c.gradingService.Calculate(req.ToCourses())
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.CalculateResponse{
		Result: result,
		Chart:  chart,
	}))
}
