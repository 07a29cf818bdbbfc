package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/usage/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/testutil"
)

type mockResetDailyUsageUC struct {
	result *usecases.ResetDailyUsageResult
	err    error
	got    usecases.ResetDailyUsageCommand
}

func (m *mockResetDailyUsageUC) Execute(_ context.Context, cmd usecases.ResetDailyUsageCommand) (*usecases.ResetDailyUsageResult, error) {
	m.got = cmd
	return m.result, m.err
}

func TestCronHandler_ResetUsage(t *testing.T) {
	uc := &mockResetDailyUsageUC{result: &usecases.ResetDailyUsageResult{Day: "2026-03-01", Reset: 4}}
	handler := NewCronHandler(uc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/api/internal/cron/reset-usage", nil)

	handler.ResetUsage(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.Actor)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got usecases.ResetDailyUsageResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.EqualValues(t, 4, got.Reset)
}

func TestCronHandler_ResetUsage_Failure(t *testing.T) {
	uc := &mockResetDailyUsageUC{err: assert.AnError}
	handler := NewCronHandler(uc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/api/internal/cron/reset-usage", nil)

	handler.ResetUsage(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
