package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"derivative-pricer/internal/models"
)

// FormatPrice formats a monetary value with appropriate decimal places.
// Small values keep extra decimals so deep out-of-the-money premiums do
// not collapse to zero on screen.
func FormatPrice(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return insertCommas(strconv.FormatFloat(v, 'f', 2, 64))
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 4, 64)
	default:
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
}

// FormatRate formats an annualized rate as a percentage.
func FormatRate(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

// FormatVol formats a volatility as a percentage.
func FormatVol(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatYears formats a year fraction.
func FormatYears(t float64) string {
	return fmt.Sprintf("%.2fy", t)
}

// FormatGreek formats a sensitivity with an explicit sign.
func FormatGreek(v float64) string {
	return fmt.Sprintf("%+.4f", v)
}

// FormatCount formats an integer count with thousands separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

// FormatSeed formats a simulator seed.
func FormatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

// FormatConfidence formats a confidence level such as 0.95 as "95%".
func FormatConfidence(level float64) string {
	pct := strconv.FormatFloat(level*100, 'f', 2, 64)
	pct = strings.TrimRight(pct, "0")
	pct = strings.TrimSuffix(pct, ".")
	return pct + "%"
}

// FormatInterval formats a confidence interval together with its level.
func FormatInterval(ci models.ConfidenceInterval, level float64) string {
	return fmt.Sprintf("[%s, %s] at %s",
		FormatPrice(ci.Lower), FormatPrice(ci.Upper), FormatConfidence(level))
}

// FormatDuration formats an elapsed time, keeping sub-second resolution
// for the fast analytic paths.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// groupThousands inserts commas into a run of digits every three places
// from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// insertCommas adds thousands separators to the integer part of an
// already formatted number.
func insertCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, rest := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}

	out := groupThousands(intPart) + rest
	if neg {
		out = "-" + out
	}
	return out
}
