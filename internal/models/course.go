package models

// Course merges all (course, term) section groups sharing a course code.
// Section labels may repeat across terms; the catalog disambiguates them by
// the (code, term) pair.
type Course struct {
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Department    string   `json:"department"`
	Terms         []string `json:"terms"`
	Sections      []string `json:"sections"`
	SectionCount  int      `json:"sectionCount"`
	CommonCore    bool     `json:"commonCore"`
	WeeklySummary string   `json:"weeklySummary"`
}

// OfferedIn reports whether the course has a section group in the term.
func (c Course) OfferedIn(term string) bool {
	for _, t := range c.Terms {
		if t == term {
			return true
		}
	}
	return false
}
