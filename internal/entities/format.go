package entities

import (
	"fmt"
	"time"
)

// FormatCoins renders a coin amount the way scoreboards and info
// displays show it: one decimal place
func FormatCoins(amount float64) string {
	return fmt.Sprintf("%.1f coins", amount)
}

// FormatCountdown renders a duration as m:ss for war countdowns
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
