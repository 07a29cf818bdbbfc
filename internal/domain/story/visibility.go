package story

import "fmt"

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) String() string {
	return string(v)
}

func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

func NewVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return v, nil
}
