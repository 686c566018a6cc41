package tasks

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxTitleLen  = 200
)

var (
	createTask  = store.CreateTask
	getTaskByID = store.GetTaskByID
	listTasks   = store.ListTasks
	countTasks  = store.CountTasks
	updateTask  = store.UpdateTask
	deleteTask  = store.DeleteTask
)

func claimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	return claims, ok
}

func taskResponse(t *model.Task) api.TaskResponse {
	return api.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func taskResponses(ts []model.Task) []api.TaskResponse {
	out := make([]api.TaskResponse, 0, len(ts))
	for i := range ts {
		out = append(out, taskResponse(&ts[i]))
	}
	return out
}

// pageParams reads page/limit query values, falling back to defaults
// for anything out of range.
func pageParams(c echo.Context) (page, limit int) {
	page = defaultPage
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 1 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 1 && v <= maxLimit {
		limit = v
	}
	return page, limit
}

// CreateTaskHandler creates a task owned by the caller.
//
// @Summary     Create task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       request body api.CreateTaskRequest true "Task payload"
// @Success     201 {object} api.Envelope{data=api.TaskResponse}
// @Failure     400 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks [post]
func CreateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		req := &api.CreateTaskRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid request body"))
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			return c.JSON(http.StatusBadRequest, api.Err("Title is required"))
		}
		if err := c.Validate(req); err != nil {
			if utf8.RuneCountInString(req.Title) > maxTitleLen {
				return c.JSON(http.StatusBadRequest, api.Err("Title must be 200 characters or less"))
			}
			return c.JSON(http.StatusBadRequest, api.Err("Invalid status value"))
		}
		status := model.Status(req.Status)
		if status == "" {
			status = model.StatusPending
		}

		t := &model.Task{
			Title:       req.Title,
			Description: req.Description,
			Status:      status,
			UserID:      claims.UserID,
		}
		if _, err := createTask(c.Request().Context(), db, t); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to create task"))
		}
		return c.JSON(http.StatusCreated, api.OK("Task created successfully", taskResponse(t)))
	}
}

// ListTasksHandler returns the caller's tasks, paginated. Admins may
// pass all=true to list every user's tasks.
//
// @Summary     List tasks
// @Tags        tasks
// @Produce     json
// @Param       page   query int    false "Page number"
// @Param       limit  query int    false "Page size (1-100)"
// @Param       status query string false "Status filter"
// @Param       all    query bool   false "Admin: include every user's tasks"
// @Success     200 {object} api.Envelope{data=api.TaskListData}
// @Failure     400 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks [get]
func ListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		page, limit := pageParams(c)

		status := model.Status(c.QueryParam("status"))
		if status != "" && !model.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid status value"))
		}

		f := store.TaskFilter{
			UserID: claims.UserID,
			Status: status,
			Limit:  limit,
			Offset: (page - 1) * limit,
		}
		if c.QueryParam("all") == "true" && claims.IsAdmin() {
			f.UserID = 0
		}

		ctx := c.Request().Context()
		total, err := countTasks(ctx, db, store.TaskFilter{UserID: f.UserID, Status: f.Status})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to retrieve tasks"))
		}
		ts, err := listTasks(ctx, db, f)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to retrieve tasks"))
		}

		return c.JSON(http.StatusOK, api.OK("Tasks retrieved successfully", api.TaskListData{
			Tasks: taskResponses(ts),
			Pagination: api.Pagination{
				Total: total,
				Page:  page,
				Limit: limit,
				Pages: (total + limit - 1) / limit,
			},
		}))
	}
}

// GetTaskHandler returns one task. Owners and admins only.
//
// @Summary     Get task
// @Tags        tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} api.Envelope{data=api.TaskResponse}
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks/{id} [get]
func GetTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid task ID"))
		}
		t, err := getTaskByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.Err("Task not found"))
		}
		if t.UserID != claims.UserID && !claims.IsAdmin() {
			return c.JSON(http.StatusForbidden, api.Err("You do not have permission to view this task"))
		}
		return c.JSON(http.StatusOK, api.OK("Task retrieved successfully", taskResponse(t)))
	}
}

// UpdateTaskHandler applies a partial update. Owner only.
//
// @Summary     Update task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Task ID"
// @Param       request body api.UpdateTaskRequest true "Fields to change"
// @Success     200 {object} api.Envelope{data=api.TaskResponse}
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks/{id} [put]
func UpdateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid task ID"))
		}
		req := &api.UpdateTaskRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid request body"))
		}

		ctx := c.Request().Context()
		t, err := getTaskByID(ctx, db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.Err("Task not found"))
		}
		if t.UserID != claims.UserID {
			return c.JSON(http.StatusForbidden, api.Err("You do not have permission to update this task"))
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return c.JSON(http.StatusBadRequest, api.Err("Title is required"))
			}
			// counted in characters, matching the create-path validator
			if utf8.RuneCountInString(title) > maxTitleLen {
				return c.JSON(http.StatusBadRequest, api.Err("Title must be 200 characters or less"))
			}
			t.Title = title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != nil {
			status := model.Status(*req.Status)
			if !model.ValidStatus(status) {
				return c.JSON(http.StatusBadRequest, api.Err("Invalid status value"))
			}
			t.Status = status
		}

		if err := updateTask(ctx, db, t); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to update task"))
		}
		return c.JSON(http.StatusOK, api.OK("Task updated successfully", taskResponse(t)))
	}
}

// DeleteTaskHandler deletes a task. Owner or admin.
//
// @Summary     Delete task
// @Tags        tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} api.Envelope
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks/{id} [delete]
func DeleteTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid task ID"))
		}
		ctx := c.Request().Context()
		t, err := getTaskByID(ctx, db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.Err("Task not found"))
		}
		if t.UserID != claims.UserID && !claims.IsAdmin() {
			return c.JSON(http.StatusForbidden, api.Err("You do not have permission to delete this task"))
		}
		if err := deleteTask(ctx, db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to delete task"))
		}
		return c.JSON(http.StatusOK, api.OK("Task deleted successfully", nil))
	}
}

// AdminDeleteTaskHandler deletes any task regardless of owner.
//
// @Summary     Admin delete task
// @Tags        tasks
// @Produce     json
// @Param       id path int true "Task ID"
// @Success     200 {object} api.Envelope
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks/admin/{id} [delete]
func AdminDeleteTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid task ID"))
		}
		ctx := c.Request().Context()
		if _, err := getTaskByID(ctx, db, id); err != nil {
			return c.JSON(http.StatusNotFound, api.Err("Task not found"))
		}
		if err := deleteTask(ctx, db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to delete task"))
		}
		return c.JSON(http.StatusOK, api.OK("Task deleted successfully by admin", nil))
	}
}

// AdminListTasksHandler returns every task, optionally filtered by
// status and user_id. Unpaginated.
//
// @Summary     Admin list all tasks
// @Tags        tasks
// @Produce     json
// @Param       status  query string false "Status filter"
// @Param       user_id query int    false "Owner filter"
// @Success     200 {object} api.Envelope{data=api.AdminTaskListData}
// @Failure     400 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/tasks/admin/all [get]
func AdminListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := model.Status(c.QueryParam("status"))
		if status != "" && !model.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid status value"))
		}
		f := store.TaskFilter{Status: status}
		if v := c.QueryParam("user_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.Err("Invalid user ID"))
			}
			f.UserID = id
		}

		ts, err := listTasks(c.Request().Context(), db, f)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to retrieve tasks"))
		}
		return c.JSON(http.StatusOK, api.OK("Tasks retrieved successfully", api.AdminTaskListData{
			Tasks: taskResponses(ts),
			Total: len(ts),
		}))
	}
}
