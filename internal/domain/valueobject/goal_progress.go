package valueobject

// GoalProgress holds income-to-goal ratios clamped to [0, 1].
type GoalProgress struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
}
