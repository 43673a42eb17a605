package notify

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RenderText produces the chat message for a reminder. The countdown
// scale widens with distance: hours below a day, whole days below a
// week, whole weeks beyond that.
func RenderText(p Payload) string {
	var b strings.Builder
	b.WriteString("Contest reminder\n")
	b.WriteString(p.Title)
	b.WriteString("\nPlatform: ")
	b.WriteString(string(p.Platform))
	b.WriteString("\nStarts: ")
	b.WriteString(p.StartTime.UTC().Format("2006-01-02 15:04 MST"))
	b.WriteString("\nStarts in: ")
	b.WriteString(FormatCountdown(p.Countdown))
	if p.URL != "" {
		b.WriteString("\n")
		b.WriteString(p.URL)
	}
	return b.String()
}

func FormatCountdown(d time.Duration) string {
	hours := d.Hours()
	switch {
	case hours >= 24*7:
		return fmt.Sprintf("%d weeks", int(math.Ceil(hours/(24*7))))
	case hours >= 24:
		return fmt.Sprintf("%d days", int(math.Ceil(hours/24)))
	default:
		return fmt.Sprintf("%.1f hours", hours)
	}
}
