package models

// CourseTermKey addresses a section group inside the catalog.
type CourseTermKey struct {
	Code string
	Term string
}

// SectionGroup holds all sections of one course within one term, each with
// its parsed session list.
type SectionGroup struct {
	CourseCode  string               `json:"courseCode"`
	CourseTitle string               `json:"courseTitle"`
	Department  string               `json:"department"`
	Term        string               `json:"term"`
	Sections    map[string][]Session `json:"sections"`
}

// Catalog is the engine's primary lookup structure: (course, term) to
// section group, then section label to sessions. Built once per data load
// and read-only thereafter.
type Catalog struct {
	Groups map[CourseTermKey]*SectionGroup
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Groups: make(map[CourseTermKey]*SectionGroup)}
}

// Group looks up the section group for a (course, term) pair.
func (c *Catalog) Group(code, term string) (*SectionGroup, bool) {
	group, ok := c.Groups[CourseTermKey{Code: code, Term: term}]
	return group, ok
}

// SectionSessions resolves a section label within a (course, term) group.
func (c *Catalog) SectionSessions(code, term, label string) ([]Session, bool) {
	group, ok := c.Group(code, term)
	if !ok {
		return nil, false
	}
	sessions, ok := group.Sections[label]
	return sessions, ok
}

// HasSection reports whether the label exists in the (course, term) group.
func (c *Catalog) HasSection(code, term, label string) bool {
	_, ok := c.SectionSessions(code, term, label)
	return ok
}
