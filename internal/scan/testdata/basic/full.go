package test

// FullCommand has every attribute set.
//
// +commands:name=fullcmd description="A command with all attributes specified"
// +commands:permission=test.fullcommand
// +commands:permission-message="You don't have permission to use this command"
// +commands:usage="/fullcmd [player] [action]" aliases=fc,full
type FullCommand struct{}
