package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *BoardServiceError
		expected string
	}{
		{
			name:     "with wrapped error",
			err:      NewBoardServiceError("create_task", "failed to save task", errors.New("disk full")),
			expected: "board service create_task failed: failed to save task: disk full",
		},
		{
			name:     "without wrapped error",
			err:      NewBoardServiceError("delete_column", "failed to delete column", nil),
			expected: "board service delete_column failed: failed to delete column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	wrapped := NewBoardServiceError("move_task", "column 3 does not exist", ErrColumnNotFound)
	assert.ErrorIs(t, wrapped, ErrColumnNotFound)
}
