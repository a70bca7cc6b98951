package output

import "fmt"

const secondsPerDay = 86400

var daysPerMonth = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysIn(year int64, month int) int64 {
	if month == 1 && isLeap(year) {
		return 29
	}
	return daysPerMonth[month]
}

// formatTimestamp renders Unix seconds as YYYY-MM-DDTHH:MM:SSZ.
// Negative values are clamped to the epoch.
func formatTimestamp(unix int64) string {
	if unix < 0 {
		unix = 0
	}
	days := unix / secondsPerDay
	rem := unix % secondsPerDay

	year := int64(1970)
	for {
		n := int64(365)
		if isLeap(year) {
			n = 366
		}
		if days < n {
			break
		}
		days -= n
		year++
	}
	month := 0
	for days >= daysIn(year, month) {
		days -= daysIn(year, month)
		month++
	}

	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
		year, month+1, days+1, rem/3600, rem%3600/60, rem%60)
}
