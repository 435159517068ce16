package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"pending", "done", "cancel"} {
		status, err := ParseTaskStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, TaskStatus(valid), status)
	}

	for _, invalid := range []string{"", "archived", "Pending", "DONE"} {
		_, err := ParseTaskStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", invalid)
	}
}

func TestParseTaskPriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "medium", "high"} {
		priority, err := ParseTaskPriority(valid)
		require.NoError(t, err)
		assert.Equal(t, TaskPriority(valid), priority)
	}

	for _, invalid := range []string{"", "urgent", "Low", "HIGH"} {
		_, err := ParseTaskPriority(invalid)
		assert.ErrorIs(t, err, ErrInvalidPriority, "input %q", invalid)
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(1, "Write report")
		require.NoError(t, err)
		assert.Equal(t, TaskPriorityLow, task.Priority)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.Deadline)
		assert.Nil(t, task.CategoryID)
	})

	t.Run("title length counts characters, not bytes", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(1, strings.Repeat("é", 255))
		assert.NoError(t, err)

		_, err = NewTask(1, strings.Repeat("é", 256))
		assert.ErrorIs(t, err, ErrTaskTitleTooLong)
	})

	tests := []struct {
		name    string
		userID  int64
		title   string
		wantErr error
	}{
		{"missing owner", 0, "Write report", ErrInvalidID},
		{"empty title", 1, "", ErrEmptyTaskTitle},
		{"title too long", 1, strings.Repeat("a", 256), ErrTaskTitleTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTask(tc.userID, tc.title)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	newValid := func() *Task {
		task, err := NewTask(1, "Write report")
		require.NoError(t, err)
		return task
	}

	t.Run("rejects invalid status", func(t *testing.T) {
		t.Parallel()
		task := newValid()
		task.Status = "archived"
		assert.ErrorIs(t, task.Validate(), ErrInvalidStatus)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		t.Parallel()
		task := newValid()
		task.Priority = "urgent"
		assert.ErrorIs(t, task.Validate(), ErrInvalidPriority)
	})

	t.Run("rejects non-positive category reference", func(t *testing.T) {
		t.Parallel()
		task := newValid()
		zero := int64(0)
		task.CategoryID = &zero
		assert.ErrorIs(t, task.Validate(), ErrInvalidID)
	})

	t.Run("accepts positive category reference", func(t *testing.T) {
		t.Parallel()
		task := newValid()
		id := int64(5)
		task.CategoryID = &id
		assert.NoError(t, task.Validate())
	})
}
