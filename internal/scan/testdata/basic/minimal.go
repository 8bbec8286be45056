package test

// +commands:name=minimal
type MinimalCommand struct{}

// +commands:name=notatype
func helper() {}
