package test

// +commands:name=specialcmd
// +commands:description="A command with \"special\" characters & symbols"
// +commands:permission='test.special."quotes"'
// +commands:permissionMessage='You need the "special" permission to use this command'
// +commands:usage="/specialcmd [player] \"quoted text\" & symbols"
// +commands:aliases='special,sp"q"'
type SpecialCharCommand struct{}
