package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lumastory/lumastory/internal/domain/audit"
)

func TestActivityXLSXExporter_Render(t *testing.T) {
	target := "usr_9"
	targetType := audit.TargetUser
	ip := "10.0.0.1"
	entries := []*audit.Entry{
		audit.ReconstructEntry("act_1", "adm_1", audit.ActionUserTierChange, &target, &targetType,
			map[string]any{"from": "trial", "to": "pro"}, &ip, nil,
			time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)),
		audit.ReconstructEntry("act_2", "adm_2", audit.ActionAnalyticsView, nil, nil, nil, nil, nil,
			time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	exp := NewActivityXLSXExporter()
	content, err := exp.Render(entries)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", exp.Extension())

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(activitySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, activityHeaders, rows[0])
	assert.Equal(t, []string{"2026-03-01 12:30:00", "adm_1", "user_tier_change", "user", "usr_9", "10.0.0.1", "", `{"from":"trial","to":"pro"}`}, rows[1])
	assert.Equal(t, "analytics_view", rows[2][2])
}

func TestActivityXLSXExporter_Empty(t *testing.T) {
	content, err := NewActivityXLSXExporter().Render(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(activitySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
