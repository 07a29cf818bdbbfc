package childprofile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewChildProfile(t *testing.T) {
	birth := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewChildProfile("cp-1", "u-1", "  Maya ", strPtr("May"), &birth, strPtr("curly red hair"))
	require.NoError(t, err)

	assert.Equal(t, "Maya", p.Name())
	assert.Equal(t, "maya", p.NameKey())
	assert.True(t, p.IsOwnedBy("u-1"))
	assert.False(t, p.IsOwnedBy("u-2"))
	assert.Nil(t, p.AvatarURL())
}

func TestNewChildProfile_Validation(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name       string
		childName  string
		birthDate  *time.Time
		appearance *string
	}{
		{"blank name", "   ", nil, nil},
		{"long name", strings.Repeat("a", 51), nil, nil},
		{"future birth date", "Leo", &future, nil},
		{"long appearance", "Leo", nil, strPtr(strings.Repeat("x", 501))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChildProfile("cp-1", "u-1", tt.childName, nil, tt.birthDate, tt.appearance)
			assert.Error(t, err)
		})
	}
}

func TestNameKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, NameKey("MAYA"), NameKey(" maya "))
	assert.Equal(t, NameKey("Straße"), NameKey("STRASSE"))
	assert.NotEqual(t, NameKey("Maya"), NameKey("Mia"))
}

func TestSetAvatar(t *testing.T) {
	p, err := NewChildProfile("cp-1", "u-1", "Leo", nil, nil, nil)
	require.NoError(t, err)

	assert.Error(t, p.SetAvatar(""))
	require.NoError(t, p.SetAvatar("https://cdn.example/avatars/cp-1.png"))
	assert.Equal(t, "https://cdn.example/avatars/cp-1.png", *p.AvatarURL())
}
