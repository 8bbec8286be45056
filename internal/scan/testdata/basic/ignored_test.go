package test

// +commands:name=ignored
type IgnoredCommand struct{}
