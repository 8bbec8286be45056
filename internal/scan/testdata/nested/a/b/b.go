package b

// +commands:name=beta
type Beta struct{}
