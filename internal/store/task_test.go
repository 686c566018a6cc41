package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type scanFnRow func(dest ...any) error

func (f scanFnRow) Scan(dest ...any) error { return f(dest...) }

type taskRows struct {
	tasks []model.Task
	idx   int
	err   error
}

func (r *taskRows) Close()                                       {}
func (r *taskRows) Err() error                                   { return r.err }
func (r *taskRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *taskRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *taskRows) Next() bool                                   { r.idx++; return r.idx <= len(r.tasks) }
func (r *taskRows) Values() ([]any, error)                       { return nil, nil }
func (r *taskRows) RawValues() [][]byte                          { return nil }
func (r *taskRows) Conn() *pgx.Conn                              { return nil }

func (r *taskRows) Scan(dest ...any) error {
	t := r.tasks[r.idx-1]
	*dest[0].(*int) = t.ID
	*dest[1].(*string) = t.Title
	*dest[2].(*string) = t.Description
	*dest[3].(*model.Status) = t.Status
	*dest[4].(*int) = t.UserID
	*dest[5].(*time.Time) = t.CreatedAt
	*dest[6].(*time.Time) = t.UpdatedAt
	return nil
}

func TestTaskFilterWhere(t *testing.T) {
	where, args := TaskFilter{}.where()
	require.Empty(t, where)
	require.Empty(t, args)

	where, args = TaskFilter{UserID: 7}.where()
	require.Equal(t, " WHERE user_id = $1", where)
	require.Equal(t, []any{7}, args)

	where, args = TaskFilter{Status: model.StatusPending}.where()
	require.Equal(t, " WHERE status = $1", where)
	require.Equal(t, []any{model.StatusPending}, args)

	where, args = TaskFilter{UserID: 7, Status: model.StatusCompleted}.where()
	require.Equal(t, " WHERE user_id = $1 AND status = $2", where)
	require.Equal(t, []any{7, model.StatusCompleted}, args)
}

func TestCreateTask(t *testing.T) {
	now := time.Now().UTC()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "INSERT INTO tasks")
		require.Equal(t, []any{"T", "D", model.StatusPending, 3}, args)
		return scanFnRow(func(dest ...any) error {
			*dest[0].(*int) = 9
			*dest[1].(*time.Time) = now
			*dest[2].(*time.Time) = now
			return nil
		})
	}}
	task, err := CreateTask(context.Background(), db, &model.Task{
		Title: "T", Description: "D", Status: model.StatusPending, UserID: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 9, task.ID)
	require.Equal(t, now, task.CreatedAt)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return scanFnRow(func(...any) error { return errors.New("scan") })
	}
	_, err = CreateTask(context.Background(), db, &model.Task{})
	require.ErrorContains(t, err, "CreateTask")
}

func TestGetTaskByID(t *testing.T) {
	now := time.Now().UTC()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Equal(t, []any{5}, args)
		return scanFnRow(func(dest ...any) error {
			*dest[0].(*int) = 5
			*dest[1].(*string) = "T"
			*dest[2].(*string) = "D"
			*dest[3].(*model.Status) = model.StatusInProgress
			*dest[4].(*int) = 2
			*dest[5].(*time.Time) = now
			*dest[6].(*time.Time) = now
			return nil
		})
	}}
	task, err := GetTaskByID(context.Background(), db, 5)
	require.NoError(t, err)
	require.Equal(t, model.StatusInProgress, task.Status)
	require.Equal(t, 2, task.UserID)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return scanFnRow(func(...any) error { return pgx.ErrNoRows })
	}
	_, err = GetTaskByID(context.Background(), db, 5)
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestListTasks(t *testing.T) {
	now := time.Now().UTC()
	var gotSQL string
	var gotArgs []any
	db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		gotSQL = sql
		gotArgs = args
		return &taskRows{tasks: []model.Task{
			{ID: 1, Title: "a", Status: model.StatusPending, UserID: 4, CreatedAt: now, UpdatedAt: now},
			{ID: 2, Title: "b", Status: model.StatusCompleted, UserID: 4, CreatedAt: now, UpdatedAt: now},
		}}, nil
	}}

	tasks, err := ListTasks(context.Background(), db, TaskFilter{UserID: 4, Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Contains(t, gotSQL, "ORDER BY created_at DESC")
	require.Contains(t, gotSQL, "LIMIT $2")
	require.Contains(t, gotSQL, "OFFSET $3")
	require.Equal(t, []any{4, 10, 20}, gotArgs)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("q") }
	_, err = ListTasks(context.Background(), db, TaskFilter{})
	require.ErrorContains(t, err, "ListTasks")
}

func TestCountTasks(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "SELECT COUNT(*) FROM tasks WHERE user_id = $1")
		return scanFnRow(func(dest ...any) error {
			*dest[0].(*int) = 42
			return nil
		})
	}}
	count, err := CountTasks(context.Background(), db, TaskFilter{UserID: 1})
	require.NoError(t, err)
	require.Equal(t, 42, count)
}

func TestUpdateTask(t *testing.T) {
	now := time.Now().UTC()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "UPDATE tasks")
		require.Equal(t, []any{"T", "D", model.StatusCancelled, 8}, args)
		return scanFnRow(func(dest ...any) error {
			*dest[0].(*time.Time) = now
			return nil
		})
	}}
	task := &model.Task{ID: 8, Title: "T", Description: "D", Status: model.StatusCancelled}
	require.NoError(t, UpdateTask(context.Background(), db, task))
	require.Equal(t, now, task.UpdatedAt)
}

func TestDeleteTask(t *testing.T) {
	called := false
	db := &database.FakeDB{ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		called = true
		require.Equal(t, []any{3}, args)
		return pgconn.CommandTag{}, nil
	}}
	require.NoError(t, DeleteTask(context.Background(), db, 3))
	require.True(t, called)

	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("x")
	}
	require.ErrorContains(t, DeleteTask(context.Background(), db, 3), "DeleteTask")
}
