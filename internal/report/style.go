package report

import (
	"github.com/fatih/color"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
	boldCyan  = color.New(color.Bold, color.FgCyan).SprintFunc()
	boldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
)

// pidColors is a palette for telling processes apart on the Gantt line.
var pidColors = []func(a ...interface{}) string{
	color.New(color.Bold, color.FgMagenta).SprintFunc(),
	color.New(color.Bold, color.FgCyan).SprintFunc(),
	color.New(color.Bold, color.FgYellow).SprintFunc(),
	color.New(color.Bold, color.FgGreen).SprintFunc(),
	color.New(color.Bold, color.FgHiBlue).SprintFunc(),
	color.New(color.Bold, color.FgHiRed).SprintFunc(),
}

func pidColor(pid int64) func(a ...interface{}) string {
	if pid < 0 {
		pid = -pid
	}
	return pidColors[pid%int64(len(pidColors))]
}

// SetColor turns ANSI styling on or off for everything this package writes.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
