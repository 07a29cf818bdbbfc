package story

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStory(t *testing.T) {
	s, err := NewStory("s-1", "u-1", nil, " The Brave Otter ", "an otter", "Once upon a time...")
	require.NoError(t, err)

	assert.Equal(t, "The Brave Otter", s.Title())
	assert.Equal(t, VisibilityPrivate, s.Visibility())
	assert.True(t, s.IsVisibleTo("u-1"))
	assert.False(t, s.IsVisibleTo("u-2"))
}

func TestNewStory_TruncatesLongTitle(t *testing.T) {
	s, err := NewStory("s-1", "u-1", nil, strings.Repeat("é", 250), "p", "content")
	require.NoError(t, err)
	assert.Equal(t, maxTitleLength, len([]rune(s.Title())))
}

func TestNewStory_Validation(t *testing.T) {
	_, err := NewStory("s-1", "u-1", nil, "", "p", "content")
	assert.Error(t, err)
	_, err = NewStory("s-1", "u-1", nil, "Title", "p", "   ")
	assert.Error(t, err)
	_, err = NewStory("", "u-1", nil, "Title", "p", "content")
	assert.Error(t, err)
}

func TestIsVisibleTo_Public(t *testing.T) {
	s := ReconstructStory("s-1", "u-1", nil, "T", "p", "c", VisibilityPublic, time.Time{}, time.Time{})
	assert.True(t, s.IsVisibleTo("anyone"))
}

func TestNewVisibility(t *testing.T) {
	v, err := NewVisibility("public")
	require.NoError(t, err)
	assert.Equal(t, VisibilityPublic, v)

	_, err = NewVisibility("unlisted")
	assert.Error(t, err)
}
