package safe

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

func Run(fn func()) {
	RunWithLog(fn, "safe.Run")
}

// RunWithLog executes fn and logs any panic with a trimmed stack trace
func RunWithLog(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", getStackTrace(3)),
			)
		}
	}()

	fn()
}

// getStackTrace returns a formatted stack trace, skipping the first
// skipFrames frames (defer, RunWithLog and the immediate caller)
func getStackTrace(skipFrames int) string {
	lines := strings.Split(string(debug.Stack()), "\n")

	var formatted []string
	formatted = append(formatted, "Stack trace:")

	startIdx := skipFrames
	for i := startIdx; i < len(lines) && i < startIdx+20; i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			formatted = append(formatted, "  "+line)
		}
	}
	if len(lines) > startIdx+20 {
		formatted = append(formatted, "  ... (truncated)")
	}

	return strings.Join(formatted, "\n")
}
