package engine

import (
	"fmt"
	"strings"
)

// ParseISODuration converts a YouTube contentDetails duration token
// ("PT4M13S", "PT1H2M10S") into whole seconds. Returns ok=false when the
// "PT" prefix is missing. Unit letters other than H, M and S are ignored;
// absent runs contribute zero.
func ParseISODuration(token string) (int, bool) {
	rest, found := strings.CutPrefix(token, "PT")
	if !found {
		return 0, false
	}

	total := 0
	num := 0
	haveNum := false
	for _, c := range rest {
		if c >= '0' && c <= '9' {
			num = num*10 + int(c-'0')
			haveNum = true
			continue
		}
		if haveNum {
			switch c {
			case 'H':
				total += num * 3600
			case 'M':
				total += num * 60
			case 'S':
				total += num
			}
		}
		num = 0
		haveNum = false
	}
	return total, true
}

// FormatDuration renders seconds as human text using the largest applicable
// units: "1h 2m 10s", "4m 13s" or "13s". Sub-units down to seconds are
// always shown once an hour or minute is shown.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
