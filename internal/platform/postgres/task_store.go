package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmarchetti/taskvault-api/internal/domain"
	"github.com/tmarchetti/taskvault-api/internal/platform/logger"
	"github.com/tmarchetti/taskvault-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// taskColumns is the select list shared by every task read, including the
// LEFT JOINed category columns so a single query returns the task with its
// category attached.
const taskColumns = `
	t.id, t.user_id, t.title, t.description, t.deadline,
	t.priority, t.status, t.category_id, t.created_at, t.updated_at,
	c.id, c.user_id, c.title, c.created_at, c.updated_at`

// buildTaskListWhere turns the owner anchor plus the optional filter criteria
// into a WHERE clause and its arguments. The owner predicate is always first
// and always present; each present criterion adds one AND conjunct. Absent
// criteria contribute nothing. Kept as a pure function so predicate
// composition is testable without a database.
func buildTaskListWhere(ownerID int64, f store.TaskFilter) (string, []any) {
	conds := []string{"t.user_id = $1"}
	args := []any{ownerID}

	next := func() int { return len(args) + 1 }

	if f.Search != nil && *f.Search != "" {
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", next()))
		args = append(args, "%"+escapeLike(*f.Search)+"%")
	}
	if f.Status != nil {
		conds = append(conds, fmt.Sprintf("t.status = $%d", next()))
		args = append(args, string(*f.Status))
	}
	if f.Priority != nil {
		conds = append(conds, fmt.Sprintf("t.priority = $%d", next()))
		args = append(args, string(*f.Priority))
	}
	if f.CategoryID != nil {
		conds = append(conds, fmt.Sprintf("t.category_id = $%d", next()))
		args = append(args, *f.CategoryID)
	}

	return strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text so
// the search is a plain substring match.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (user_id, title, description, deadline, priority, status, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.UserID,
		task.Title,
		task.Description,
		task.Deadline,
		task.Priority,
		task.Status,
		task.CategoryID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return MapError(err)
	}

	return nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, ownerID int64, filter store.TaskFilter, page int) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if page < 1 {
		page = 1
	}

	where, args := buildTaskListWhere(ownerID, filter)

	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + where
	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID))
		return nil, MapError(err)
	}

	dataQuery := fmt.Sprintf(`
		SELECT %s
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE %s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT %d OFFSET %d`,
		taskColumns, where, store.TaskPageSize, (page-1)*store.TaskPageSize)

	rows, err := s.db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return &store.TaskPage{Tasks: tasks, Total: total, Page: page}, nil
}

// GetForOwner implements store.TaskStore.GetForOwner
func (s *PostgresTaskStore) GetForOwner(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.id = $2`,
		taskColumns)

	rows, err := s.db.QueryContext(ctx, query, ownerID, id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, MapError(err)
		}
		return nil, store.ErrTaskNotFound
	}

	task, err := scanTask(rows)
	if err != nil {
		s.logger.Error("failed to scan task row", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return task, nil
}

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) *PostgresTaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Update implements store.TaskStore.Update. The write and the follow-up read
// that attaches the category run in one transaction when the store is backed
// by a connection pool, so the returned row reflects exactly what was
// written.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if db, ok := s.db.(*sql.DB); ok {
		var updated *domain.Task
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			updated, txErr = s.WithTx(tx).applyUpdate(ctx, task)
			return txErr
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return s.applyUpdate(ctx, task)
}

func (s *PostgresTaskStore) applyUpdate(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, deadline = $3, priority = $4,
		    status = $5, category_id = $6, updated_at = $7
		WHERE user_id = $8 AND id = $9
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Deadline,
		task.Priority,
		task.Status,
		task.CategoryID,
		time.Now().UTC(),
		task.UserID,
		task.ID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID),
			slog.Int64("task_id", task.ID))
		return nil, MapError(err)
	}

	return s.GetForOwner(ctx, task.UserID, id)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE user_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", ownerID),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// scanTask reads one joined task row, attaching the category when the LEFT
// JOIN produced one.
func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var (
		task       domain.Task
		catID      sql.NullInt64
		catUserID  sql.NullInt64
		catTitle   sql.NullString
		catCreated sql.NullTime
		catUpdated sql.NullTime
	)

	err := rows.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Deadline,
		&task.Priority,
		&task.Status,
		&task.CategoryID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&catID,
		&catUserID,
		&catTitle,
		&catCreated,
		&catUpdated,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		task.Category = &domain.Category{
			ID:        catID.Int64,
			UserID:    catUserID.Int64,
			Title:     catTitle.String,
			CreatedAt: catCreated.Time,
			UpdatedAt: catUpdated.Time,
		}
	}

	return &task, nil
}
