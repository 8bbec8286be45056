package hidden

// +commands:name=hidden
type Hidden struct{}
