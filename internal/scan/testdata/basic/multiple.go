package test

// FirstCommand is the first command in the file.
// +commands:name=first description="First command in multiple commands file" usage="/first [arg]"
type FirstCommand struct{}

// +commands:name=second description="Second command in multiple commands file"
// +commands:permission=test.second aliases=s aliases=sec
type SecondCommand struct{}

type (
	// +commands:name=third
	ThirdCommand struct{}

	// helperState carries no marker.
	helperState struct{}
)
