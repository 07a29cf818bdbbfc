package valueobjects

import "fmt"

// ActionTaken is the moderation outcome recorded when a report is resolved.
type ActionTaken string

const (
	ActionNoAction      ActionTaken = "no_action"
	ActionWarningSent   ActionTaken = "warning_sent"
	ActionStoryHidden   ActionTaken = "story_hidden"
	ActionStoryDeleted  ActionTaken = "story_deleted"
	ActionUserWarned    ActionTaken = "user_warned"
	ActionUserSuspended ActionTaken = "user_suspended"
)

var validActions = map[ActionTaken]bool{
	ActionNoAction:      true,
	ActionWarningSent:   true,
	ActionStoryHidden:   true,
	ActionStoryDeleted:  true,
	ActionUserWarned:    true,
	ActionUserSuspended: true,
}

func (a ActionTaken) String() string {
	return string(a)
}

func (a ActionTaken) IsValid() bool {
	return validActions[a]
}

// MutatesStory reports whether resolving with a mutates the reported story.
func (a ActionTaken) MutatesStory() bool {
	return a == ActionStoryHidden || a == ActionStoryDeleted
}

func NewActionTaken(s string) (ActionTaken, error) {
	a := ActionTaken(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action taken: %s", s)
	}
	return a, nil
}
