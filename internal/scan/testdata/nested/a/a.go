package a

// +commands:name=alpha
type Alpha struct{}
