package planner

import (
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/models"
)

// sectionChoice is one acceptable section of a course resolved to its
// session list within the target term.
type sectionChoice struct {
	label    string
	sessions []models.Session
}

// termCourse pairs a selected course with its resolvable sections for one
// term.
type termCourse struct {
	code       string
	title      string
	department string
	term       string
	sections   []sectionChoice
}

// resolveTermCourses intersects each course's acceptable section labels
// with those available in the target term. A course with zero resolvable
// sections is dropped from this term's fragment; the plan assembler's
// completeness filter catches any plan that loses a course this way.
func resolveTermCourses(courses []models.SelectedCourse, catalog *models.Catalog, term string, logger *zap.Logger) []termCourse {
	resolved := make([]termCourse, 0, len(courses))

	for _, course := range courses {
		group, ok := catalog.Group(course.Code, term)
		if !ok {
			logger.Debug("course not offered in term, skipping",
				zap.String("course", course.Code), zap.String("term", term))
			continue
		}

		var sections []sectionChoice
		for _, label := range course.Sections {
			if sessions, exists := group.Sections[label]; exists {
				sections = append(sections, sectionChoice{label: label, sessions: sessions})
			}
		}
		if len(sections) == 0 {
			logger.Debug("no chosen section available in term, skipping course",
				zap.String("course", course.Code), zap.String("term", term))
			continue
		}

		resolved = append(resolved, termCourse{
			code:       course.Code,
			title:      group.CourseTitle,
			department: group.Department,
			term:       term,
			sections:   sections,
		})
	}

	return resolved
}

// enumerateSectionCombos backtracks over one-section-per-course choices and
// keeps every complete combination that survives the time-conflict and
// blockout checks. Conflicts are validated once per complete combination,
// matching the accepted output set of an incremental check. An empty course
// list yields exactly one empty combination.
func enumerateSectionCombos(courses []termCourse, blockouts []models.Blockout, stats *Stats) [][]models.PlanCourse {
	if len(courses) == 0 {
		return [][]models.PlanCourse{{}}
	}

	var combos [][]models.PlanCourse

	var recurse func(index int, partial []models.PlanCourse)
	recurse = func(index int, partial []models.PlanCourse) {
		if index == len(courses) {
			stats.CombinationsTested++
			if comboHasConflict(partial, blockouts) {
				stats.ConflictRejections++
				return
			}
			combos = append(combos, partial)
			return
		}

		course := courses[index]
		for _, section := range course.sections {
			recurse(index+1, appendPlanCourse(partial, models.PlanCourse{
				CourseCode:  course.code,
				CourseTitle: course.title,
				Department:  course.department,
				Term:        course.term,
				Section:     section.label,
				Sessions:    section.sessions,
			}))
		}
	}

	recurse(0, nil)
	return combos
}

// appendPlanCourse copies before appending so branches of the choice tree
// never alias the same backing array.
func appendPlanCourse(list []models.PlanCourse, course models.PlanCourse) []models.PlanCourse {
	next := make([]models.PlanCourse, len(list), len(list)+1)
	copy(next, list)
	return append(next, course)
}

func comboHasConflict(combo []models.PlanCourse, blockouts []models.Blockout) bool {
	for i := 0; i < len(combo)-1; i++ {
		for j := i + 1; j < len(combo); j++ {
			if sectionsConflict(combo[i].Sessions, combo[j].Sessions) {
				return true
			}
		}
	}

	for _, course := range combo {
		for _, session := range course.Sessions {
			for _, blockout := range blockouts {
				if SessionHitsBlockout(session, blockout) {
					return true
				}
			}
		}
	}

	return false
}
