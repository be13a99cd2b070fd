package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCountdown renders a duration as "HH:MM:SS", or "Nd HH:MM:SS" once it
// reaches a full day. Negative input clamps to "00:00:00".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		return "00:00:00"
	}
	total := int64(d / time.Second)
	days := total / 86400
	total %= 86400
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatGMTOffset renders signed decimal offset hours as a compact label:
// 9 -> "GMT+9", -5 -> "GMT-5", 5.5 -> "GMT+5.5".
func FormatGMTOffset(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return "GMT" + s
}
