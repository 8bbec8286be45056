package testdata

// +commands:name=fixture
type Fixture struct{}
