package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Schedule holds one weekday's operating window for a pitch. Open/close are
// hour-of-day integers with a half-open window [OpenTime, CloseTime).
// PeakHours and OffPeakHours are disjoint sets of hour indices inside the
// window, stored as JSON arrays.
type Schedule struct {
	gorm.Model
	PitchID      uint           `json:"pitchID" gorm:"not null;index:idx_pitch_weekday,unique"`
	Weekday      int            `json:"weekday" gorm:"index:idx_pitch_weekday,unique"` // 0 = Sunday
	OpenTime     int            `json:"openTime"`
	CloseTime    int            `json:"closeTime"`
	PeakHours    datatypes.JSON `json:"peakHours"`
	OffPeakHours datatypes.JSON `json:"offPeakHours"`

	Pitch *Pitch `json:"pitch,omitempty" gorm:"foreignKey:PitchID"`
}

// IsOpenAt reports whether the given hour falls inside the operating window.
func (s *Schedule) IsOpenAt(hour int) bool {
	return hour >= s.OpenTime && hour < s.CloseTime
}

func (s *Schedule) PeakHourSet() map[int]bool {
	return decodeHourSet(s.PeakHours)
}

func (s *Schedule) OffPeakHourSet() map[int]bool {
	return decodeHourSet(s.OffPeakHours)
}

func decodeHourSet(raw datatypes.JSON) map[int]bool {
	set := map[int]bool{}
	if len(raw) == 0 {
		return set
	}
	var hours []int
	if err := json.Unmarshal(raw, &hours); err != nil {
		return set
	}
	for _, h := range hours {
		set[h] = true
	}
	return set
}

// EncodeHourSet builds the JSON column value from a list of hour indices.
func EncodeHourSet(hours []int) datatypes.JSON {
	if hours == nil {
		hours = []int{}
	}
	raw, _ := json.Marshal(hours)
	return datatypes.JSON(raw)
}

// WeekdayOf maps a timestamp to the schedule weekday index (0 = Sunday).
func WeekdayOf(t time.Time) int {
	return int(t.Weekday())
}
