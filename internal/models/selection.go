package models

// SelectedCourse is one student choice: a course plus the set of section
// labels the student would accept.
type SelectedCourse struct {
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
	Terms    []string `json:"terms"`
}

// Selection is the ordered set of the student's selected courses.
type Selection []SelectedCourse

// CourseCodes returns the codes in selection order.
func (s Selection) CourseCodes() []string {
	codes := make([]string, 0, len(s))
	for _, course := range s {
		codes = append(codes, course.Code)
	}
	return codes
}
