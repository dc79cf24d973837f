// Package output prints styled messages for humans and mirrors them into the
// structured log.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetWriters redirects output, mostly for tests. nil keeps the current writer.
func SetWriters(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func PrintHeader(format string, args ...interface{}) {
	fmt.Fprintln(stdout, headerStyle.Render(fmt.Sprintf(format, args...)))
}

func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}

func PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(stdout, infoStyle.Render(fmt.Sprintf(format, args...)))
}

func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(stderr, warningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(stderr, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// LogInfo shows userMsg and logs logMsg with the given key/value pairs.
func LogInfo(userMsg, logMsg string, keysAndValues ...interface{}) {
	PrintInfo("%s", userMsg)
	logWith(log.Info(), logMsg, keysAndValues)
}

// LogWarn shows userMsg as a warning and logs logMsg with the given key/value
// pairs.
func LogWarn(userMsg, logMsg string, keysAndValues ...interface{}) {
	PrintWarning("%s", userMsg)
	logWith(log.Warn(), logMsg, keysAndValues)
}

// LogError shows userMsg as an error and logs logMsg with the given key/value
// pairs.
func LogError(userMsg, logMsg string, keysAndValues ...interface{}) {
	PrintError("%s", userMsg)
	logWith(log.Error(), logMsg, keysAndValues)
}

func logWith(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if err, ok := keysAndValues[i+1].(error); ok {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	event.Msg(msg)
}
