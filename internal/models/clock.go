package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
)

// MinutesPerDay bounds a Clock; 24:00 is allowed as a window end.
const MinutesPerDay = 24 * 60

// Clock is a local time of day expressed as minutes after midnight.
type Clock int

// ParseClock parses HH:MM. "24:00" parses to MinutesPerDay so a window can
// run to the end of the day.
func ParseClock(s string) (Clock, error) {
	if s == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	v, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
