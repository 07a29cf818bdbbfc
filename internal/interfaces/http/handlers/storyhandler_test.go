package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moddto "github.com/lumastory/lumastory/internal/application/moderation/dto"
	modusecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/application/story/usecases"
	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/testutil"
	"github.com/lumastory/lumastory/internal/shared/errors"
)

type mockCreateStoryUC struct {
	result *usecases.CreateStoryResult
	err    error
	got    usecases.CreateStoryCommand
}

func (m *mockCreateStoryUC) Execute(_ context.Context, cmd usecases.CreateStoryCommand) (*usecases.CreateStoryResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListStoriesUC struct {
	result *usecases.ListStoriesResult
	err    error
	got    usecases.ListStoriesQuery
}

func (m *mockListStoriesUC) Execute(_ context.Context, query usecases.ListStoriesQuery) (*usecases.ListStoriesResult, error) {
	m.got = query
	return m.result, m.err
}

type mockGetStoryUC struct {
	result *dto.StoryDTO
	err    error
}

func (m *mockGetStoryUC) Execute(_ context.Context, _ usecases.GetStoryQuery) (*dto.StoryDTO, error) {
	return m.result, m.err
}

type mockChangeVisibilityUC struct {
	result *dto.StoryDTO
	err    error
}

func (m *mockChangeVisibilityUC) Execute(_ context.Context, _ usecases.ChangeVisibilityCommand) (*dto.StoryDTO, error) {
	return m.result, m.err
}

type mockDeleteStoryUC struct {
	err error
}

func (m *mockDeleteStoryUC) Execute(_ context.Context, _ usecases.DeleteStoryCommand) error {
	return m.err
}

type mockFileReportUC struct {
	result *moddto.ReportDTO
	err    error
}

func (m *mockFileReportUC) Execute(_ context.Context, _ modusecases.FileReportCommand) (*moddto.ReportDTO, error) {
	return m.result, m.err
}

type storyHandlerMocks struct {
	create     *mockCreateStoryUC
	list       *mockListStoriesUC
	get        *mockGetStoryUC
	visibility *mockChangeVisibilityUC
	del        *mockDeleteStoryUC
	report     *mockFileReportUC
}

func newTestStoryHandler(m storyHandlerMocks) *StoryHandler {
	if m.create == nil {
		m.create = &mockCreateStoryUC{}
	}
	if m.list == nil {
		m.list = &mockListStoriesUC{}
	}
	if m.get == nil {
		m.get = &mockGetStoryUC{}
	}
	if m.visibility == nil {
		m.visibility = &mockChangeVisibilityUC{}
	}
	if m.del == nil {
		m.del = &mockDeleteStoryUC{}
	}
	if m.report == nil {
		m.report = &mockFileReportUC{}
	}
	return NewStoryHandler(m.create, m.list, m.get, m.visibility, m.del, m.report, testutil.NewMockLogger())
}

func TestStoryHandler_Create_Success(t *testing.T) {
	uc := &mockCreateStoryUC{result: &usecases.CreateStoryResult{
		Story: &dto.StoryDTO{ID: "s1", Title: "The Brave Owl", Visibility: "private"},
		Usage: &usecases.UsageSnapshot{StoriesGeneratedToday: 1, TrialStoriesGenerated: 1},
	}}
	handler := newTestStoryHandler(storyHandlerMocks{create: uc})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/stories", CreateStoryRequest{Prompt: "an owl who is afraid of the dark"})
	testutil.SetAuthContext(c, "user-1")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", uc.got.UserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got CreateStoryResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "s1", got.Story.ID)
	assert.Equal(t, 1, got.Usage.TrialStoriesGenerated)
}

func TestStoryHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		uc         *mockCreateStoryUC
		wantStatus int
	}{
		{
			name: "trial exhausted",
			body: CreateStoryRequest{Prompt: "a dragon"},
			uc: &mockCreateStoryUC{result: &usecases.CreateStoryResult{Denied: &usagedto.DecisionDTO{
				Reason: "trial_exhausted", CurrentCount: 3, MaxCount: 3, RequiresUpgrade: true,
			}}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "generator failure",
			body:       CreateStoryRequest{Prompt: "a dragon"},
			uc:         &mockCreateStoryUC{err: errors.NewBadGatewayError("story generation failed")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "foreign child profile",
			body:       CreateStoryRequest{Prompt: "a dragon", ChildProfileID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
			uc:         &mockCreateStoryUC{err: errors.NewForbiddenError("child profile belongs to another user")},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing prompt",
			body:       map[string]string{"title": "x"},
			uc:         &mockCreateStoryUC{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "child profile id not a uuid",
			body:       CreateStoryRequest{Prompt: "a dragon", ChildProfileID: "abc"},
			uc:         &mockCreateStoryUC{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestStoryHandler(storyHandlerMocks{create: tt.uc})
			c, w := testutil.NewTestContext(http.MethodPost, "/api/stories", tt.body)
			testutil.SetAuthContext(c, "user-1")

			handler.Create(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStoryHandler_List(t *testing.T) {
	uc := &mockListStoriesUC{result: &usecases.ListStoriesResult{
		Stories:  []*dto.StoryListItemDTO{{ID: "s1"}, {ID: "s2"}},
		Total:    12,
		Page:     2,
		PageSize: 10,
	}}
	handler := newTestStoryHandler(storyHandlerMocks{list: uc})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/stories", nil)
	testutil.SetAuthContext(c, "user-1")
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "10"})

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, uc.got.Page)
	assert.Equal(t, 10, uc.got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.EqualValues(t, 12, list.Total)
	assert.Equal(t, 2, list.TotalPages)
}

func TestStoryHandler_Get_NotVisible(t *testing.T) {
	handler := newTestStoryHandler(storyHandlerMocks{get: &mockGetStoryUC{err: errors.NewNotFoundError("story not found")}})
	c, w := testutil.NewTestContext(http.MethodGet, "/api/stories/s1", nil)
	testutil.SetAuthContext(c, "user-2")
	testutil.SetURLParam(c, "id", "s1")

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoryHandler_ChangeVisibility(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		uc         *mockChangeVisibilityUC
		wantStatus int
	}{
		{"public", ChangeVisibilityRequest{Visibility: "public"}, &mockChangeVisibilityUC{result: &dto.StoryDTO{ID: "s1", Visibility: "public"}}, http.StatusOK},
		{"invalid value", map[string]string{"visibility": "friends"}, &mockChangeVisibilityUC{}, http.StatusBadRequest},
		{"not owner", ChangeVisibilityRequest{Visibility: "public"}, &mockChangeVisibilityUC{err: errors.NewForbiddenError("not your story")}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestStoryHandler(storyHandlerMocks{visibility: tt.uc})
			c, w := testutil.NewTestContext(http.MethodPatch, "/api/stories/s1/visibility", tt.body)
			testutil.SetAuthContext(c, "user-1")
			testutil.SetURLParam(c, "id", "s1")

			handler.ChangeVisibility(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStoryHandler_Delete(t *testing.T) {
	handler := newTestStoryHandler(storyHandlerMocks{})
	c, w := testutil.NewTestContext(http.MethodDelete, "/api/stories/s1", nil)
	testutil.SetAuthContext(c, "user-1")
	testutil.SetURLParam(c, "id", "s1")

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStoryHandler_Report(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		uc         *mockFileReportUC
		wantStatus int
	}{
		{"filed", ReportStoryRequest{Reason: "scary_content", Description: "too scary for bedtime"}, &mockFileReportUC{result: &moddto.ReportDTO{ID: "r1", Status: "pending"}}, http.StatusCreated},
		{"unknown reason", map[string]string{"reason": "boring"}, &mockFileReportUC{}, http.StatusBadRequest},
		{"duplicate pending", ReportStoryRequest{Reason: "spam"}, &mockFileReportUC{err: errors.NewConflictError("you already have a pending report for this story")}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestStoryHandler(storyHandlerMocks{report: tt.uc})
			c, w := testutil.NewTestContext(http.MethodPost, "/api/stories/s1/report", tt.body)
			testutil.SetAuthContext(c, "user-1")
			testutil.SetURLParam(c, "id", "s1")

			handler.Report(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
