package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/shared/errors"
)

type mockExporter struct {
	RenderFunc func(entries []*audit.Entry) ([]byte, error)
}

func (m *mockExporter) Render(entries []*audit.Entry) ([]byte, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(entries)
	}
	return []byte("xlsx"), nil
}

func (m *mockExporter) ContentType() string { return "application/octet-stream" }
func (m *mockExporter) Extension() string   { return "xlsx" }

func seedEntries(t *testing.T, repo *testutil.MockAuditRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		action := audit.ActionUserView
		if i%2 == 1 {
			action = audit.ActionReportReview
		}
		e, err := audit.NewEntry("e-"+string(rune('a'+i)), audit.EntryParams{AdminID: "admin-1", ActionType: action})
		require.NoError(t, err)
		require.NoError(t, repo.Append(context.Background(), e))
	}
}

func TestGetActivityLog(t *testing.T) {
	repo := testutil.NewMockAuditRepository()
	seedEntries(t, repo, 6)
	uc := NewGetActivityLogUseCase(repo, testutil.NewMockLogger())

	tests := []struct {
		name        string
		query       GetActivityLogQuery
		wantEntries int
		wantLimit   int
		wantMore    bool
	}{
		{"defaults", GetActivityLogQuery{}, 6, 50, false},
		{"paged", GetActivityLogQuery{Limit: 2}, 2, 2, true},
		{"last page", GetActivityLogQuery{Limit: 2, Offset: 4}, 2, 2, false},
		{"filtered", GetActivityLogQuery{ActionType: "report_review"}, 3, 50, false},
		{"limit clamped", GetActivityLogQuery{Limit: 1000}, 6, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Execute(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Len(t, got.Entries, tt.wantEntries)
			assert.Equal(t, tt.wantLimit, got.Pagination.Limit)
			assert.Equal(t, tt.wantMore, got.Pagination.HasMore)
		})
	}
}

func TestGetActivityLog_NewestFirst(t *testing.T) {
	repo := testutil.NewMockAuditRepository()
	seedEntries(t, repo, 3)
	uc := NewGetActivityLogUseCase(repo, testutil.NewMockLogger())

	got, err := uc.Execute(context.Background(), GetActivityLogQuery{})
	require.NoError(t, err)
	assert.Equal(t, "e-c", got.Entries[0].ID)
}

func TestGetActivityLog_InvalidActionType(t *testing.T) {
	uc := NewGetActivityLogUseCase(testutil.NewMockAuditRepository(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), GetActivityLogQuery{ActionType: "nuke"})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestExportActivityLog_IsAudited(t *testing.T) {
	repo := testutil.NewMockAuditRepository()
	seedEntries(t, repo, 4)
	recorder := appaudit.NewActivityLogger(repo, testutil.NewMockLogger())

	var rendered int
	exporter := &mockExporter{RenderFunc: func(entries []*audit.Entry) ([]byte, error) {
		rendered = len(entries)
		return []byte("PK"), nil
	}}
	uc := NewExportActivityLogUseCase(repo, exporter, recorder, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), ExportActivityLogCommand{Actor: appaudit.Actor{AdminID: "admin-2"}})
	require.NoError(t, err)
	assert.Equal(t, 4, rendered)
	assert.Equal(t, 4, res.Rows)
	assert.Contains(t, res.Filename, ".xlsx")
	assert.Equal(t, 1, repo.CountAction(audit.ActionActivityExport))
}
