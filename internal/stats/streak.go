package stats

import "time"

// dayFormat matches the day keys the store writes for practices.
const dayFormat = "2006-01-02"

// Streaks summarizes runs of consecutive practice days.
type Streaks struct {
	Current int // run ending today or yesterday
	Best    int // longest run anywhere in history
}

// ComputeStreaks walks the distinct practice days, newest first as the
// store returns them, and finds the current and best runs of consecutive
// calendar days. The current streak survives through yesterday, so
// practicing every evening does not show zero the next morning.
func ComputeStreaks(days []string, now time.Time) Streaks {
	parsed := parseDays(days)
	if len(parsed) == 0 {
		return Streaks{}
	}

	var s Streaks
	run := 0
	for i, d := range parsed {
		if i > 0 && parsed[i-1].AddDate(0, 0, -1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > s.Best {
			s.Best = run
		}
	}

	// today is the local calendar day as a zone-free midnight, the same
	// domain parseDays yields.
	today, err := time.Parse(dayFormat, now.Format(dayFormat))
	if err != nil {
		return s
	}
	head := parsed[0]
	if !head.Equal(today) && !head.Equal(today.AddDate(0, 0, -1)) {
		return s
	}
	s.Current = 1
	for i := 1; i < len(parsed); i++ {
		if !parsed[i-1].AddDate(0, 0, -1).Equal(parsed[i]) {
			break
		}
		s.Current++
	}
	return s
}

// parseDays drops malformed entries rather than failing the whole
// report over one bad row.
func parseDays(days []string) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(dayFormat, d)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}
