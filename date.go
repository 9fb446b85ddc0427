package wiivff

import (
	"time"
)

// ParseDate decodes a FAT directory entry date stamp: bits 0-4 day of
// month, bits 5-8 month, bits 9-15 years since 1980. Day or month 0 is
// unspecified; time.Time{} is returned for those so that IsZero works.
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := input & 0x1E0 >> 5
	year := input & 0xFE00 >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a FAT directory entry time stamp: bits 0-4 two-second
// count, bits 5-10 minutes, bits 11-15 hours. The result always has a date
// of January 1, year 1.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := input & 0x7E0 >> 5
	hours := input & 0xF800 >> 11

	result := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)
	// Out-of-range fields would roll the date over; clamp instead.
	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}
	return result
}

// modTime combines the write date and time stamps of a directory entry.
func modTime(date, tod uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}
	t := ParseTime(tod)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
