package dto

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/childprofile"
)

type ChildProfileDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Nickname   *string   `json:"nickname,omitempty"`
	BirthDate  *string   `json:"birthDate,omitempty"`
	Appearance *string   `json:"appearance,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToChildProfileDTO(p *childprofile.ChildProfile) *ChildProfileDTO {
	out := &ChildProfileDTO{
		ID:         p.ID(),
		Name:       p.Name(),
		Nickname:   p.Nickname(),
		Appearance: p.Appearance(),
		AvatarURL:  p.AvatarURL(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
	if b := p.BirthDate(); b != nil {
		s := b.Format("2006-01-02")
		out.BirthDate = &s
	}
	return out
}
