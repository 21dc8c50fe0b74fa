package models

// Weekday keys in display order. Weekends are carried but rarely active.
var WeekdayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Weekdays captures the seven independent day-of-week activity flags of a
// recurring session.
type Weekdays struct {
	Mon bool `json:"mon"`
	Tue bool `json:"tue"`
	Wed bool `json:"wed"`
	Thu bool `json:"thu"`
	Fri bool `json:"fri"`
	Sat bool `json:"sat"`
	Sun bool `json:"sun"`
}

// Active reports whether the given day key ("mon".."sun") is set.
func (w Weekdays) Active(day string) bool {
	switch day {
	case "mon":
		return w.Mon
	case "tue":
		return w.Tue
	case "wed":
		return w.Wed
	case "thu":
		return w.Thu
	case "fri":
		return w.Fri
	case "sat":
		return w.Sat
	case "sun":
		return w.Sun
	}
	return false
}

// Shares reports whether both flag sets have at least one day in common.
func (w Weekdays) Shares(other Weekdays) bool {
	for _, day := range WeekdayKeys {
		if w.Active(day) && other.Active(day) {
			return true
		}
	}
	return false
}

// Any reports whether at least one day is active.
func (w Weekdays) Any() bool {
	return w.Shares(w)
}

// Session is one recurring weekly meeting occurrence of a section.
// Immutable once constructed; StartMin/EndMin are nil when the source time
// could not be parsed, in which case the session does not constrain the
// schedule.
type Session struct {
	CourseCode string   `json:"courseCode"`
	Section    string   `json:"section"`
	Term       string   `json:"term"`
	Days       Weekdays `json:"days"`
	StartMin   *int     `json:"startMin"`
	EndMin     *int     `json:"endMin"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Venue      string   `json:"venue"`
	Instructor string   `json:"instructor"`
}

// HasTimes reports whether both boundary times parsed successfully.
func (s Session) HasTimes() bool {
	return s.StartMin != nil && s.EndMin != nil
}
