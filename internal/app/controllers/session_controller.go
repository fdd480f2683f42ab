package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gpacalc/internal/app/models/dto"
	"github.com/yigit/gpacalc/internal/app/services"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/middleware"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
)

// SessionController handles calculator sessions and their course lists
type SessionController struct {
	calculatorService services.CalculatorService
}

// NewSessionController creates a new SessionController
func NewSessionController(calculatorService services.CalculatorService) *SessionController {
	return &SessionController{
		calculatorService: calculatorService,
	}
}

func sessionResponse(state *services.SessionState) *dto.SessionResponse {
	return dto.NewSessionResponse(state.Session, state.Result)
}

// sessionID reads the id put in the context by the auth middleware
func sessionID(ctx *gin.Context) (string, bool) {
	id, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		middleware.AbortUnauthorized(ctx, "Session token required")
	}
	return id, ok
}

// termAndCourse parses the :term and :id path parameters; id is skipped when withID is false
func termAndCourse(ctx *gin.Context, withID bool) (domain.View, int64, bool) {
	term, err := domain.ParseTerm(ctx.Param("term"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidTerm)
		return "", 0, false
	}
	if !withID {
		return term, 0, true
	}
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortBadRequest(ctx, "Invalid course ID", "Course ID must be a valid number")
		return "", 0, false
	}
	return term, id, true
}

// optionalView parses the ?view= query parameter, empty meaning the active view
func optionalView(ctx *gin.Context) (domain.View, bool) {
	raw := ctx.Query("view")
	if raw == "" {
		return "", true
	}
	view, err := domain.ParseView(raw)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidView)
		return "", false
	}
	return view, true
}

// CreateSession starts a new calculator session
// @Summary Start a session
// @Description Creates a session seeded with the default term 1 and term 2 course lists and returns its bearer token
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.APIResponse{data=dto.CreateSessionResponse} "Session created"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	state, token, err := c.calculatorService.CreateSession(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.CreateSessionResponse{
		Token:     token,
		TokenType: "Bearer",
		Session:   sessionResponse(state),
	}))
}

// GetSession returns the current session
// @Summary Get the session
// @Description Returns both course lists, the active view and the result of the active view
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session state"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	state, err := c.calculatorService.GetSession(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sessionResponse(state)))
}

// EndSession deletes the current session
// @Summary End the session
// @Description Deletes the session immediately and disconnects its live subscribers
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Session ended"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current [delete]
func (c *SessionController) EndSession(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := c.calculatorService.EndSession(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Session ended"}))
}

// SetView switches the active view
// @Summary Set the active view
// @Description Selects which course lists feed the result: term1, term2 or combined
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetViewRequest true "View"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session state"
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current/view [put]
func (c *SessionController) SetView(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var req dto.SetViewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	state, err := c.calculatorService.SetView(ctx.Request.Context(), id, domain.View(req.View))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sessionResponse(state)))
}

// GetResult returns the GPA of a view
// @Summary Get a result
// @Description Recomputes the GPA of the given view, or of the active view when none is given
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param view query string false "term1, term2 or combined"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse} "Result"
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current/result [get]
func (c *SessionController) GetResult(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	view, ok := optionalView(ctx)
	if !ok {
		return
	}

	view, result, err := c.calculatorService.Result(ctx.Request.Context(), id, view)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ResultResponse{View: view, Result: result}))
}

// GetChart returns the chart series of a view
// @Summary Get chart data
// @Description One bar per counted course of the view with its score, grade, points and fill color
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param view query string false "term1, term2 or combined"
// @Success 200 {object} dto.APIResponse{data=dto.ChartResponse} "Chart series"
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current/chart [get]
func (c *SessionController) GetChart(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	view, ok := optionalView(ctx)
	if !ok {
		return
	}

	view, points, err := c.calculatorService.Chart(ctx.Request.Context(), id, view)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ChartResponse{View: view, Points: points}))
}

// AddCourse appends a default course to a term
// @Summary Add a course
// @Description Appends a course with the default name, 3 credits and no score
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param term path string true "term1 or term2"
// @Success 201 {object} dto.APIResponse{data=dto.CourseMutationResponse} "Course added"
// @Failure 400 {object} dto.ErrorResponse "Unknown term"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found or expired"
// @Router /sessions/current/terms/{term}/courses [post]
func (c *SessionController) AddCourse(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	term, _, ok := termAndCourse(ctx, false)
	if !ok {
		return
	}

	state, course, err := c.calculatorService.AddCourse(ctx.Request.Context(), id, term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.CourseMutationResponse{
		Term:    term,
		Applied: true,
		Course:  &course,
		Session: sessionResponse(state),
	}))
}

// UpdateCourse edits one field of a course
// @Summary Update a course
// @Description Sets the name, credits or score of a course. A score outside 0-100 or negative credits leaves the course unchanged and reports applied=false. An empty value clears credits or score
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param term path string true "term1 or term2"
// @Param id path int true "Course ID" Format(int64)
// @Param request body dto.UpdateCourseRequest true "Field and value"
// @Success 200 {object} dto.APIResponse{data=dto.CourseMutationResponse} "Edit outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session or course not found"
// @Router /sessions/current/terms/{term}/courses/{id} [patch]
func (c *SessionController) UpdateCourse(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	term, courseID, ok := termAndCourse(ctx, true)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	edit, err := req.ToEdit()
	if err != nil {
		if errors.Is(err, dto.ErrInvalidValue) {
			middleware.AbortBadRequest(ctx, "Invalid value", "value must be a number or empty for "+req.Field)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	state, applied, err := c.calculatorService.UpdateCourse(ctx.Request.Context(), id, term, courseID, edit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseMutationResponse{
		Term:    term,
		Applied: applied,
		Session: sessionResponse(state),
	}
	for _, course := range state.Session.Courses(term) {
		if course.ID == courseID {
			course := course
			resp.Course = &course
			break
		}
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// RemoveCourse deletes a course from a term
// @Summary Remove a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param term path string true "term1 or term2"
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.CourseMutationResponse} "Course removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid term or course ID"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session or course not found"
// @Router /sessions/current/terms/{term}/courses/{id} [delete]
func (c *SessionController) RemoveCourse(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	term, courseID, ok := termAndCourse(ctx, true)
	if !ok {
		return
	}

	state, err := c.calculatorService.RemoveCourse(ctx.Request.Context(), id, term, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.CourseMutationResponse{
		Term:    term,
		Applied: true,
		Session: sessionResponse(state),
	}))
}
