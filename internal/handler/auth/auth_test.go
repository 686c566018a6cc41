package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/worker"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	validatePassword = service.ValidatePassword
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	tokenTTL = service.TokenTTL
	revokeToken = service.RevokeToken
	createUser = store.CreateUser
	getUserByEmail = store.GetUserByEmail
	getUserByID = store.GetUserByID
	listUsers = store.ListUsers
}

type stubValidator struct{ err error }

func (v *stubValidator) Validate(any) error { return v.err }

func newJSONCtx(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &stubValidator{}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// syncPool runs submitted jobs inline so tests can observe side effects.
type syncPool struct{ mu sync.Mutex }

func (p *syncPool) Submit(j worker.Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j()
}
func (p *syncPool) Stop() {}

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	// missing fields
	ctx, rec := newJSONCtx(http.MethodPost, "/api/v1/auth/register", `{"email":"a@b.c"}`)
	require.NoError(t, RegisterHandler(db, nil, nil)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "required")

	// weak password
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/register", `{"name":"A","email":"a@b.c","password":"weak"}`)
	require.NoError(t, RegisterHandler(db, nil, nil)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate email found by lookup
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return &model.User{ID: 1}, nil
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/register", `{"name":"A","email":"a@b.c","password":"Secret123"}`)
	require.NoError(t, RegisterHandler(db, nil, nil)(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered")

	// duplicate surfaced as unique violation on insert
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, errors.New("no rows")
	}
	createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/register", `{"name":"A","email":"a@b.c","password":"Secret123"}`)
	require.NoError(t, RegisterHandler(db, nil, nil)(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)

	// success: role coerced, email lowercased, welcome job submitted
	var created *model.User
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		u.ID = 7
		created = u
		return u, nil
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/register",
		`{"name":" Alice ","email":"ALICE@Example.com","password":"Secret123","role":"superuser"}`)
	require.NoError(t, RegisterHandler(db, &syncPool{}, nil)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "User registered successfully")
	require.Contains(t, rec.Body.String(), `"user_id":7`)
	require.Equal(t, "alice@example.com", created.Email)
	require.Equal(t, "Alice", created.Name)
	require.Equal(t, model.RoleUser, created.Role)
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	// missing fields
	ctx, rec := newJSONCtx(http.MethodPost, "/api/v1/auth/login", `{}`)
	require.NoError(t, LoginHandler(db)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown email
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, errors.New("no rows")
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"x"}`)
	require.NoError(t, LoginHandler(db)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")

	// wrong password
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return &model.User{ID: 1, Email: "a@b.c", Role: model.RoleUser}, nil
	}
	authenticateUser = func(context.Context, model.User, string) error {
		return errors.New("invalid password")
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"bad"}`)
	require.NoError(t, LoginHandler(db)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")

	// success
	authenticateUser = func(context.Context, model.User, string) error { return nil }
	issueAccessToken = func(model.User, time.Duration) (string, error) { return "tok-123", nil }
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"Secret123"}`)
	require.NoError(t, LoginHandler(db)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Login successful")
	require.Contains(t, rec.Body.String(), "tok-123")
	require.Contains(t, rec.Body.String(), `"email":"a@b.c"`)
}

func TestLogoutHandler(t *testing.T) {
	t.Cleanup(restore)
	cch := &cache.FakeCache{}

	// no claims in context
	ctx, rec := newJSONCtx(http.MethodPost, "/api/v1/auth/logout", "")
	require.NoError(t, LogoutHandler(cch)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// revocation failure
	revokeToken = func(context.Context, cache.Cache, *service.CustomClaims) error {
		return errors.New("redis down")
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/logout", "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 1})
	require.NoError(t, LogoutHandler(cch)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Logout failed")

	// success
	var revoked *service.CustomClaims
	revokeToken = func(_ context.Context, _ cache.Cache, claims *service.CustomClaims) error {
		revoked = claims
		return nil
	}
	ctx, rec = newJSONCtx(http.MethodPost, "/api/v1/auth/logout", "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 9})
	require.NoError(t, LogoutHandler(cch)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Logout successful")
	require.Equal(t, 9, revoked.UserID)
}

func TestMeHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	// user vanished after token issue
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return nil, errors.New("no rows")
	}
	ctx, rec := newJSONCtx(http.MethodGet, "/api/v1/auth/me", "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 1})
	require.NoError(t, MeHandler(db)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "User not found")

	// success
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		return &model.User{ID: id, Email: "a@b.c", Name: "A", Role: model.RoleAdmin}, nil
	}
	ctx, rec = newJSONCtx(http.MethodGet, "/api/v1/auth/me", "")
	ctx.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 3})
	require.NoError(t, MeHandler(db)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":3`)
	require.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return nil, errors.New("boom")
	}
	ctx, rec := newJSONCtx(http.MethodGet, "/api/v1/auth/users", "")
	require.NoError(t, ListUsersHandler(db)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return []model.User{
			{ID: 1, Email: "a@b.c", Role: model.RoleAdmin},
			{ID: 2, Email: "b@b.c", Role: model.RoleUser},
		}, nil
	}
	ctx, rec = newJSONCtx(http.MethodGet, "/api/v1/auth/users", "")
	require.NoError(t, ListUsersHandler(db)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Users retrieved successfully")
	require.Contains(t, rec.Body.String(), `"total":2`)
}
