package store

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/database"
	"taskboard/internal/model"
)

const taskColumns = `id, title, description, status, user_id, created_at, updated_at`

// TaskFilter narrows task listings. Zero values mean "no filter";
// UserID == 0 widens the scope to every user's tasks.
type TaskFilter struct {
	UserID int
	Status model.Status
	Limit  int
	Offset int
}

func (f TaskFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.UserID != 0 {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTask(row interface{ Scan(dest ...any) error }, t *model.Task) error {
	return row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

func CreateTask(ctx context.Context, db database.DB, t *model.Task) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.Title,
		t.Description,
		t.Status,
		t.UserID,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return t, nil
}

func GetTaskByID(ctx context.Context, db database.DB, taskID int) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		taskID,
	)
	t := &model.Task{}
	if err := scanTask(row, t); err != nil {
		return nil, fmt.Errorf("GetTaskByID: %w", err)
	}
	return t, nil
}

func ListTasks(ctx context.Context, db database.DB, f TaskFilter) ([]model.Task, error) {
	where, args := f.where()
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("ListTasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	return tasks, nil
}

func CountTasks(ctx context.Context, db database.DB, f TaskFilter) (int, error) {
	where, args := f.where()
	row := db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, args...)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("CountTasks: %w", err)
	}
	return count, nil
}

func UpdateTask(ctx context.Context, db database.DB, t *model.Task) error {
	row := db.QueryRow(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3
		 WHERE id = $4
		 RETURNING updated_at`,
		t.Title,
		t.Description,
		t.Status,
		t.ID,
	)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateTask: %w", err)
	}
	return nil
}

func DeleteTask(ctx context.Context, db database.DB, taskID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		taskID,
	)
	if err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	return nil
}
