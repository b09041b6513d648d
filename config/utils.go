package config

import (
	"fmt"
	"strings"
	"time"
)

// FormatPrompt expands %datetime, %date, %time, %counter and %usage in a
// command prompt and guarantees a trailing space.
func FormatPrompt(str string, counter, usage int, now time.Time) string {
	if str == "" {
		return ""
	}

	replacer := strings.NewReplacer(
		"%datetime", now.Format("2006-01-02 15:04:05"),
		"%date", now.Format("2006-01-02"),
		"%time", now.Format("15:04:05"),
		"%counter", fmt.Sprintf("%d", counter),
		"%usage", fmt.Sprintf("%d", usage),
		"\\n", "\n",
	)

	str = replacer.Replace(str)
	if !strings.HasSuffix(str, " ") {
		str += " "
	}

	return str
}
