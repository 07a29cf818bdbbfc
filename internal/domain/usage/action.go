package usage

import "fmt"

// Action is a user-facing operation subject to tier limits.
type Action string

const (
	ActionCreateStory        Action = "create_story"
	ActionCreateChildProfile Action = "create_child_profile"
	ActionGenerateImage      Action = "generate_image"
)

var validActions = map[Action]bool{
	ActionCreateStory:        true,
	ActionCreateChildProfile: true,
	ActionGenerateImage:      true,
}

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	return validActions[a]
}

func NewAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return a, nil
}
