package models

// PlanCourse is one assigned (course, section, term) triple carrying its
// resolved session list.
type PlanCourse struct {
	CourseCode  string    `json:"courseCode"`
	CourseTitle string    `json:"courseTitle"`
	Department  string    `json:"department"`
	Term        string    `json:"term"`
	Section     string    `json:"section"`
	Sessions    []Session `json:"sessions"`
}

// Plan is one complete, conflict-free schedule candidate: exactly one
// section per selected course across both terms. Produced fresh per
// generation call and never mutated afterward.
type Plan struct {
	Courses    []PlanCourse `json:"courses"`
	Term1Count int          `json:"term1Count"`
	Term2Count int          `json:"term2Count"`
	DayOffs    int          `json:"dayOffs"`
}
