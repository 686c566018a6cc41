package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/mailer"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/worker"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

var (
	validatePassword = service.ValidatePassword
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	tokenTTL         = service.TokenTTL
	revokeToken      = service.RevokeToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
	getUserByID      = store.GetUserByID
	listUsers        = store.ListUsers
)

func userResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func claimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	return claims, ok
}

// RegisterHandler creates a new user account.
//
// @Summary     Register
// @Description Creates a user account and queues a welcome email
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterRequest true "Registration payload"
// @Success     201 {object} api.Envelope{data=api.RegisterData}
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Router      /api/v1/auth/register [post]
func RegisterHandler(db database.DB, wp worker.Pool, m *mailer.Mailer) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &api.RegisterRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid request body"))
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, api.Err("Name, email and password are required"))
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid email format"))
		}
		if err := validatePassword(req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err(err.Error()))
		}

		ctx := c.Request().Context()
		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return c.JSON(http.StatusConflict, api.Err("Email already registered"))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Registration failed"))
		}
		u := &model.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
			Role:         model.NormalizeRole(model.Role(req.Role)),
		}
		if _, err := createUser(ctx, db, u); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return c.JSON(http.StatusConflict, api.Err("Email already registered"))
			}
			return c.JSON(http.StatusInternalServerError, api.Err("Registration failed"))
		}

		if wp != nil {
			to, name := u.Email, u.Name
			wp.Submit(func() { _ = m.SendWelcome(to, name) })
		}

		return c.JSON(http.StatusCreated, api.OK("User registered successfully", api.RegisterData{
			UserID: u.ID,
			Email:  u.Email,
		}))
	}
}

// LoginHandler exchanges credentials for an access token.
//
// @Summary     Login
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "Credentials"
// @Success     200 {object} api.Envelope{data=api.LoginData}
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Router      /api/v1/auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &api.LoginRequest{}
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid request body"))
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, api.Err("Email and password are required"))
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Err("Invalid email format"))
		}

		ctx := c.Request().Context()
		u, err := getUserByEmail(ctx, db, req.Email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.Err("Invalid email or password"))
		}
		if err := authenticateUser(ctx, *u, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.Err("Invalid email or password"))
		}

		token, err := issueAccessToken(*u, tokenTTL())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Login failed"))
		}

		return c.JSON(http.StatusOK, api.OK("Login successful", api.LoginData{
			Token: token,
			User:  userResponse(u),
		}))
	}
}

// LogoutHandler revokes the presented token.
//
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/auth/logout [post]
func LogoutHandler(cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		if err := revokeToken(c.Request().Context(), cch, claims); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Logout failed"))
		}
		return c.JSON(http.StatusOK, api.OK("Logout successful", nil))
	}
}

// MeHandler returns the authenticated user's profile.
//
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Envelope{data=api.UserResponse}
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/auth/me [get]
func MeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Err("Authentication required"))
		}
		u, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.Err("User not found"))
		}
		return c.JSON(http.StatusOK, api.OK("User retrieved successfully", userResponse(u)))
	}
}

// ListUsersHandler returns every registered user. Admin only.
//
// @Summary     List users
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Envelope{data=api.UsersData}
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/auth/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("Failed to retrieve users"))
		}
		out := make([]api.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, userResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, api.OK("Users retrieved successfully", api.UsersData{
			Users: out,
			Total: len(out),
		}))
	}
}
