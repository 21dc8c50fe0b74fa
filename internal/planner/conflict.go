package planner

import "github.com/unicourse/planner-api/internal/models"

// SessionsConflict reports whether two sessions collide: they share at
// least one active weekday and their [start, end) minute intervals overlap.
// Sessions with unparseable times never constrain the schedule.
func SessionsConflict(a, b models.Session) bool {
	if !a.HasTimes() || !b.HasTimes() {
		return false
	}
	if !a.Days.Shares(b.Days) {
		return false
	}
	return *a.StartMin < *b.EndMin && *b.StartMin < *a.EndMin
}

// sectionsConflict checks every session pair across two chosen sections.
func sectionsConflict(a, b []models.Session) bool {
	for _, sessionA := range a {
		for _, sessionB := range b {
			if SessionsConflict(sessionA, sessionB) {
				return true
			}
		}
	}
	return false
}

// SessionHitsBlockout reports whether the session is active on the
// blockout's day with an overlapping minute interval.
func SessionHitsBlockout(session models.Session, blockout models.Blockout) bool {
	if !session.HasTimes() {
		return false
	}
	if !session.Days.Active(blockout.Day) {
		return false
	}
	return *session.StartMin < blockout.EndMin && blockout.StartMin < *session.EndMin
}
