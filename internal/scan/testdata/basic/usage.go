package test

/*
UsageCommand has a custom usage.

+commands:name=usagecmd description="A command with custom usage"
+commands:usage="/usagecmd <required> [optional] [--flag]"
*/
type UsageCommand struct{}
