package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/unicourse/planner-api/internal/models"
)

// Careers admitted into the catalog. Everything else (postgraduate,
// exchange-only codes) is filtered out before grouping.
var undergraduateCareers = map[string]struct{}{
	"UG":   {},
	"UGME": {},
	"UGDE": {},
}

const fullYearSuffix = "FY"

// Result bundles the outputs of one normalization pass. The caller owns the
// catalog for the lifetime of the dataset; nothing else is retained.
type Result struct {
	Catalog *models.Catalog
	Courses []models.Course
	Terms   []string
}

// IsUndergraduate reports whether the academic career code is in the
// undergraduate allow-set.
func IsUndergraduate(career string) bool {
	_, ok := undergraduateCareers[strings.TrimSpace(career)]
	return ok
}

// IsSummerTerm reports whether the term names a summer semester.
func IsSummerTerm(term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(lower, "summer") || strings.Contains(lower, "sum sem")
}

// IsFullYearCourse reports whether the course code carries the reserved
// full-year suffix.
func IsFullYearCourse(code string) bool {
	return strings.HasSuffix(strings.TrimSpace(code), fullYearSuffix)
}

// NormalizeInstructor converts the export's "surname,given-names" form to a
// "given-names surname" display form.
func NormalizeInstructor(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	surname, given, found := strings.Cut(trimmed, ",")
	if !found {
		return trimmed
	}
	given = strings.TrimSpace(given)
	surname = strings.TrimSpace(surname)
	if given == "" {
		return surname
	}
	return given + " " + surname
}

// Fingerprint returns a stable content hash over the raw rows, used to key
// persisted carts so a re-upload of identical data restores prior choices.
func Fingerprint(rows []RawRow) string {
	digest := sha256.New()
	encoder := json.NewEncoder(digest)
	for i := range rows {
		_ = encoder.Encode(rows[i])
	}
	return hex.EncodeToString(digest.Sum(nil))
}

// Normalize filters, groups, and derives course records from raw timetable
// rows. Rows without a course code cannot be grouped and are dropped
// silently.
func Normalize(rows []RawRow) *Result {
	catalog := models.NewCatalog()
	termSet := make(map[string]struct{})

	for i := range rows {
		row := &rows[i]
		code := strings.TrimSpace(row.CourseCode)
		if code == "" {
			continue
		}
		if !IsUndergraduate(row.Career) || IsSummerTerm(row.Term) || IsFullYearCourse(code) {
			continue
		}

		term := strings.TrimSpace(row.Term)
		label := strings.TrimSpace(row.Section)
		key := models.CourseTermKey{Code: code, Term: term}

		group, ok := catalog.Groups[key]
		if !ok {
			group = &models.SectionGroup{
				CourseCode:  code,
				CourseTitle: strings.TrimSpace(row.CourseTitle),
				Department:  strings.TrimSpace(row.Department),
				Term:        term,
				Sections:    make(map[string][]models.Session),
			}
			catalog.Groups[key] = group
		}

		group.Sections[label] = append(group.Sections[label], parseSession(row, code, label, term))
		termSet[term] = struct{}{}
	}

	terms := make([]string, 0, len(termSet))
	for term := range termSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return &Result{
		Catalog: catalog,
		Courses: deriveCourses(catalog),
		Terms:   terms,
	}
}

func parseSession(row *RawRow, code, label, term string) models.Session {
	return models.Session{
		CourseCode: code,
		Section:    label,
		Term:       term,
		Days: models.Weekdays{
			Mon: dayActive(row.Mon),
			Tue: dayActive(row.Tue),
			Wed: dayActive(row.Wed),
			Thu: dayActive(row.Thu),
			Fri: dayActive(row.Fri),
			Sat: dayActive(row.Sat),
			Sun: dayActive(row.Sun),
		},
		StartMin:   ParseTimeOfDay(row.StartTime),
		EndMin:     ParseTimeOfDay(row.EndTime),
		StartDate:  strings.TrimSpace(row.StartDate),
		EndDate:    strings.TrimSpace(row.EndDate),
		Venue:      strings.TrimSpace(row.Venue),
		Instructor: NormalizeInstructor(row.Instructor),
	}
}

func dayActive(cell string) bool {
	return strings.TrimSpace(cell) != ""
}

// deriveCourses merges all (course, term) groups sharing a course code into
// one record: union of terms, union of section labels, combined count.
func deriveCourses(catalog *models.Catalog) []models.Course {
	byCode := make(map[string]*models.Course)

	for key, group := range catalog.Groups {
		course, ok := byCode[key.Code]
		if !ok {
			course = &models.Course{
				Code:       key.Code,
				Title:      group.CourseTitle,
				Department: group.Department,
				CommonCore: isCommonCore(key.Code),
			}
			byCode[key.Code] = course
		}

		if !course.OfferedIn(key.Term) {
			course.Terms = append(course.Terms, key.Term)
		}
		for label := range group.Sections {
			if !containsString(course.Sections, label) {
				course.Sections = append(course.Sections, label)
			}
		}
	}

	courses := make([]models.Course, 0, len(byCode))
	for _, course := range byCode {
		sort.Strings(course.Terms)
		sort.Strings(course.Sections)
		course.SectionCount = len(course.Sections)
		course.WeeklySummary = weeklySummary(catalog, course)
		courses = append(courses, *course)
	}

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].Code < courses[j].Code
	})
	return courses
}

func isCommonCore(code string) bool {
	return strings.HasPrefix(code, "CC")
}

// weeklySummary renders the distinct weekly meeting slots of a course as a
// compact display string, e.g. "Mon 09:30-10:20, Thu 13:30-14:20".
func weeklySummary(catalog *models.Catalog, course *models.Course) string {
	type slot struct {
		dayIndex int
		start    int
		text     string
	}

	seen := make(map[string]struct{})
	var slots []slot

	for _, term := range course.Terms {
		group, ok := catalog.Group(course.Code, term)
		if !ok {
			continue
		}
		for _, sessions := range group.Sections {
			for _, session := range sessions {
				if !session.HasTimes() {
					continue
				}
				for dayIndex, day := range models.WeekdayKeys {
					if !session.Days.Active(day) {
						continue
					}
					text := displayDay(day) + " " + MinutesToClock(*session.StartMin) + "-" + MinutesToClock(*session.EndMin)
					if _, dup := seen[text]; dup {
						continue
					}
					seen[text] = struct{}{}
					slots = append(slots, slot{dayIndex: dayIndex, start: *session.StartMin, text: text})
				}
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].dayIndex != slots[j].dayIndex {
			return slots[i].dayIndex < slots[j].dayIndex
		}
		return slots[i].start < slots[j].start
	})

	texts := make([]string, 0, len(slots))
	for _, s := range slots {
		texts = append(texts, s.text)
	}
	return strings.Join(texts, ", ")
}

func displayDay(key string) string {
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
