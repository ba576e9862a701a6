package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createTaskBody struct {
	Title    string `json:"title"    validate:"required"`
	ColumnID int64  `json:"columnId" validate:"required"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "valid", body: `{"title":"Write spec","columnId":1}`},
		{name: "malformed json", body: `{"title":`, wantField: "body"},
		{name: "empty body", body: ``, wantField: "body"},
		{name: "missing title", body: `{"columnId":1}`, wantField: "title"},
		{name: "missing column", body: `{"title":"Write spec"}`, wantField: "columnId"},
		{name: "wrong type", body: `{"title":"x","columnId":"one"}`, wantField: "body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tc.body))
			var body createTaskBody

			err := DecodeAndValidate(req, &body)

			if tc.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, createTaskBody{Title: "Write spec", ColumnID: 1}, body)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.wantField, ve.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
