package childprofile

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	maxNameLength       = 50
	maxAppearanceLength = 500
)

// ChildProfile describes a child that stories are personalized for.
type ChildProfile struct {
	id         string
	userID     string
	name       string
	nameKey    string
	nickname   *string
	birthDate  *time.Time
	appearance *string
	avatarURL  *string
	createdAt  time.Time
	updatedAt  time.Time
}

// NameKey folds a name for case-insensitive uniqueness per owner.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func NewChildProfile(id, userID, name string, nickname *string, birthDate *time.Time, appearance *string) (*ChildProfile, error) {
	if id == "" {
		return nil, fmt.Errorf("child profile ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("owner is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	if nickname != nil && utf8.RuneCountInString(*nickname) > maxNameLength {
		return nil, fmt.Errorf("nickname exceeds maximum length of %d characters", maxNameLength)
	}
	if appearance != nil && utf8.RuneCountInString(*appearance) > maxAppearanceLength {
		return nil, fmt.Errorf("appearance exceeds maximum length of %d characters", maxAppearanceLength)
	}

	now := time.Now().UTC()
	if birthDate != nil && birthDate.After(now) {
		return nil, fmt.Errorf("birth date cannot be in the future")
	}

	return &ChildProfile{
		id:         id,
		userID:     userID,
		name:       name,
		nameKey:    NameKey(name),
		nickname:   nickname,
		birthDate:  birthDate,
		appearance: appearance,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructChildProfile rebuilds a profile from persistence.
func ReconstructChildProfile(
	id, userID, name string,
	nickname *string,
	birthDate *time.Time,
	appearance, avatarURL *string,
	createdAt, updatedAt time.Time,
) *ChildProfile {
	return &ChildProfile{
		id:         id,
		userID:     userID,
		name:       name,
		nameKey:    NameKey(name),
		nickname:   nickname,
		birthDate:  birthDate,
		appearance: appearance,
		avatarURL:  avatarURL,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *ChildProfile) ID() string            { return p.id }
func (p *ChildProfile) UserID() string        { return p.userID }
func (p *ChildProfile) Name() string          { return p.name }
func (p *ChildProfile) NameKey() string       { return p.nameKey }
func (p *ChildProfile) Nickname() *string     { return p.nickname }
func (p *ChildProfile) BirthDate() *time.Time { return p.birthDate }
func (p *ChildProfile) Appearance() *string   { return p.appearance }
func (p *ChildProfile) AvatarURL() *string    { return p.avatarURL }
func (p *ChildProfile) CreatedAt() time.Time  { return p.createdAt }
func (p *ChildProfile) UpdatedAt() time.Time  { return p.updatedAt }

func (p *ChildProfile) IsOwnedBy(userID string) bool {
	return p.userID == userID
}

// SetAvatar records the avatar location.
func (p *ChildProfile) SetAvatar(url string) error {
	if url == "" {
		return fmt.Errorf("avatar URL cannot be empty")
	}
	p.avatarURL = &url
	p.updatedAt = time.Now().UTC()
	return nil
}
