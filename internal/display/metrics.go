package display

import (
	"fmt"
	"strings"

	"opensye/internal/metrics"
)

func FormatRunMetrics(rm *metrics.RunMetrics) string {
	if rm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s metrics (seed=%d):\n", rm.RunID, rm.Seed))
	sb.WriteString(fmt.Sprintf("- Total: %d ms  (success=%v)\n", rm.DurationMs, rm.Succeeded))
	for _, e := range rm.Exercises {
		sb.WriteString(fmt.Sprintf("  • %-12s %5d ms  [%s]\n", e.Name, e.DurationMs, status(e.Success)))
	}
	for _, c := range rm.Compiles {
		sb.WriteString(fmt.Sprintf("  • %-24s %5d ms  [%s]\n", c.File, c.DurationMs, status(c.Success)))
	}
	return sb.String()
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "err"
}
