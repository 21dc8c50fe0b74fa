package dto

// SelectedCourseRequest is one course the student wants scheduled, with
// the section labels they would accept.
type SelectedCourseRequest struct {
	Code     string   `json:"code" validate:"required"`
	Title    string   `json:"title"`
	Sections []string `json:"sections" validate:"required,min=1"`
}

// BlockoutRequest is a recurring weekly unavailability window. Times must
// stay within the 08:00-20:00 teaching day. ApplyTo values other than
// term1/term2 fall back to both terms.
type BlockoutRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Day      string `json:"day" validate:"required,oneof=mon tue wed thu fri sat sun"`
	StartMin int    `json:"startMin" validate:"min=480,max=1200"`
	EndMin   int    `json:"endMin" validate:"min=480,max=1200,gtfield=StartMin"`
	ApplyTo  string `json:"applyTo" validate:"omitempty,oneof=both term1 term2"`
}

// GeneratePlansRequest asks the engine for every feasible schedule of the
// selection against an uploaded dataset's catalog.
type GeneratePlansRequest struct {
	DatasetID         string                  `json:"datasetId" validate:"required"`
	Term1             string                  `json:"term1" validate:"required"`
	Term2             string                  `json:"term2"`
	Courses           []SelectedCourseRequest `json:"courses" validate:"required,min=1,dive"`
	Blockouts         []BlockoutRequest       `json:"blockouts" validate:"omitempty,dive"`
	MaxCoursesPerTerm int                     `json:"maxCoursesPerTerm" validate:"omitempty,min=1,max=12"`
	Limit             int                     `json:"limit" validate:"omitempty,min=1,max=1000"`
}

// SessionItem is one weekly meeting of a scheduled section. Nil time
// bounds mean the source export carried no parseable time.
type SessionItem struct {
	Days       map[string]bool `json:"days"`
	StartMin   *int            `json:"startMin"`
	EndMin     *int            `json:"endMin"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Venue      string          `json:"venue"`
	Instructor string          `json:"instructor"`
}

// PlanCourseItem is one (course, term, section) assignment in a plan.
type PlanCourseItem struct {
	CourseCode  string        `json:"courseCode"`
	CourseTitle string        `json:"courseTitle"`
	Department  string        `json:"department"`
	Term        string        `json:"term"`
	Section     string        `json:"section"`
	Sessions    []SessionItem `json:"sessions"`
}

// PlanItem is one complete conflict-free schedule candidate.
type PlanItem struct {
	Courses    []PlanCourseItem `json:"courses"`
	Term1Count int              `json:"term1Count"`
	Term2Count int              `json:"term2Count"`
	DayOffs    int              `json:"dayOffs"`
}

// GenerationStats summarises the search effort behind one response.
type GenerationStats struct {
	AssignmentsTested  int `json:"assignmentsTested"`
	CombinationsTested int `json:"combinationsTested"`
	ConflictRejections int `json:"conflictRejections"`
	TotalPlans         int `json:"totalPlans"`
}

// GeneratePlansResponse returns the ranked feasible plans. An empty list
// is a successful result meaning no conflict-free schedule exists.
type GeneratePlansResponse struct {
	Plans []PlanItem      `json:"plans"`
	Stats GenerationStats `json:"stats"`
}
