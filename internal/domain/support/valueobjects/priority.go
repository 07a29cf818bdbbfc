package valueobjects

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityHigh
}
