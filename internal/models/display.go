package models

import (
	"time"
	_ "time/tzdata"
)

// DisplayTimeLayout is the German date format used in messages and emails.
const DisplayTimeLayout = "02.01.2006 15:04"

// DisplayLocation is the timezone times are shown in.
var DisplayLocation = loadLocation("Europe/Berlin")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatDisplayTime renders t as "02.01.2006 15:04" in DisplayLocation.
func FormatDisplayTime(t time.Time) string {
	return t.In(DisplayLocation).Format(DisplayTimeLayout)
}
