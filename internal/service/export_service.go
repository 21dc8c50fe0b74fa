package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/catalog"
	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/models"
	"github.com/unicourse/planner-api/pkg/export"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

const (
	defaultTitleTemplate       = "%COURSE_CODE%"
	defaultDescriptionTemplate = "Title: %COURSE_NAME%\nInstructor: %INSTRUCTOR%"
)

var exportWeekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type icsRenderer interface {
	Render(events []export.Event) ([]byte, error)
}

// ExportResult is one rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders a generated plan as an ICS calendar, CSV table,
// or PDF timetable.
type ExportService struct {
	csv       csvRenderer
	pdf       pdfRenderer
	ics       icsRenderer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(csv csvRenderer, pdf pdfRenderer, ics icsRenderer, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, ics: ics, validator: validate, logger: logger}
}

// Render produces the download for the requested format.
func (s *ExportService) Render(req dto.ExportPlanRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"invalid export request")
	}
	if len(req.Plan.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "plan has no courses to export")
	}

	switch req.Format {
	case "ics":
		return s.renderICS(req)
	case "csv":
		payload, err := s.csv.Render(planDataset(req.Plan))
		if err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		return &ExportResult{Filename: "timetable.csv", ContentType: "text/csv", Payload: payload}, nil
	case "pdf":
		title := req.Title
		if title == "" {
			title = "Course Timetable"
		}
		payload, err := s.pdf.Render(planDataset(req.Plan), title)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return &ExportResult{Filename: "timetable.pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", req.Format))
	}
}

func (s *ExportService) renderICS(req dto.ExportPlanRequest) (*ExportResult, error) {
	if s.ics == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "calendar export is disabled")
	}

	titleTemplate := req.TitleTemplate
	if titleTemplate == "" {
		titleTemplate = defaultTitleTemplate
	}
	descriptionTemplate := req.DescriptionTemplate
	if descriptionTemplate == "" {
		descriptionTemplate = defaultDescriptionTemplate
	}
	includeLocation := req.IncludeLocation == nil || *req.IncludeLocation

	var events []export.Event
	var rangeStart, rangeEnd time.Time

	for _, course := range req.Plan.Courses {
		for sessionIndex, session := range course.Sessions {
			if session.StartMin == nil || session.EndMin == nil {
				continue
			}
			startDate, err := parsePlanDate(session.StartDate)
			if err != nil {
				s.logger.Warn("session skipped: bad start date",
					zap.String("course", course.CourseCode), zap.String("date", session.StartDate))
				continue
			}
			endDate, err := parsePlanDate(session.EndDate)
			if err != nil {
				s.logger.Warn("session skipped: bad end date",
					zap.String("course", course.CourseCode), zap.String("date", session.EndDate))
				continue
			}
			if rangeStart.IsZero() || startDate.Before(rangeStart) {
				rangeStart = startDate
			}
			if rangeEnd.IsZero() || endDate.After(rangeEnd) {
				rangeEnd = endDate
			}

			for day, active := range session.Days {
				if !active {
					continue
				}
				weekday, ok := exportWeekdays[day]
				if !ok {
					continue
				}
				events = append(events, export.Event{
					UID:         fmt.Sprintf("%s-%s-%s-%d@planner", course.CourseCode, course.Section, day, sessionIndex),
					Summary:     substitutePlaceholders(titleTemplate, course, session, includeLocation),
					Description: substitutePlaceholders(descriptionTemplate, course, session, includeLocation),
					Location:    sessionLocation(session, includeLocation),
					Weekday:     weekday,
					StartMin:    roundMinutes(*session.StartMin, req.RoundToHalfHour),
					EndMin:      roundMinutes(*session.EndMin, req.RoundToHalfHour),
					StartDate:   startDate,
					EndDate:     endDate,
				})
			}
		}
	}

	if req.IncludeBlockouts && !rangeStart.IsZero() {
		for i, blockout := range req.Blockouts {
			weekday, ok := exportWeekdays[blockout.Day]
			if !ok {
				continue
			}
			name := blockout.Name
			if name == "" {
				name = "Blockout"
			}
			events = append(events, export.Event{
				UID:       fmt.Sprintf("blockout-%d@planner", i),
				Summary:   name,
				Weekday:   weekday,
				StartMin:  roundMinutes(blockout.StartMin, req.RoundToHalfHour),
				EndMin:    roundMinutes(blockout.EndMin, req.RoundToHalfHour),
				StartDate: rangeStart,
				EndDate:   rangeEnd,
			})
		}
	}

	if len(events) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"plan has no sessions with both times and dates; nothing to export")
	}

	payload, err := s.ics.Render(events)
	if err != nil {
		return nil, fmt.Errorf("render ics: %w", err)
	}
	return &ExportResult{Filename: "timetable.ics", ContentType: "text/calendar", Payload: payload}, nil
}

func substitutePlaceholders(template string, course dto.PlanCourseItem, session dto.SessionItem, includeLocation bool) string {
	replacer := strings.NewReplacer(
		"%COURSE_CODE%", course.CourseCode,
		"%COURSE_NAME%", course.CourseTitle,
		"%LOCATION%", sessionLocation(session, includeLocation),
		"%DEPARTMENT%", course.Department,
		"%SUBCLASS%", course.Section,
		"%INSTRUCTOR%", session.Instructor,
	)
	return replacer.Replace(template)
}

func sessionLocation(session dto.SessionItem, includeLocation bool) string {
	if !includeLocation {
		return ""
	}
	return session.Venue
}

func roundMinutes(minutes int, enabled bool) int {
	if !enabled {
		return minutes
	}
	return int(math.Round(float64(minutes)/30)) * 30
}

// parsePlanDate accepts the export's DD/MM/YYYY form and ISO YYYY-MM-DD.
func parsePlanDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", trimmed)
}

// planDataset lays a plan out as one table per term, ordered as generated.
func planDataset(plan dto.PlanItem) export.Dataset {
	headers := []string{"Course", "Title", "Section", "Schedule", "Venue", "Instructor"}
	sections := make([]export.Section, 0, 2)
	byTerm := make(map[string]int)

	for _, course := range plan.Courses {
		index, ok := byTerm[course.Term]
		if !ok {
			sections = append(sections, export.Section{Title: course.Term})
			index = len(sections) - 1
			byTerm[course.Term] = index
		}
		sections[index].Rows = append(sections[index].Rows, map[string]string{
			"Course":     course.CourseCode,
			"Title":      course.CourseTitle,
			"Section":    course.Section,
			"Schedule":   courseSchedule(course),
			"Venue":      firstVenue(course),
			"Instructor": firstInstructor(course),
		})
	}
	return export.Dataset{Headers: headers, Sections: sections}
}

func courseSchedule(course dto.PlanCourseItem) string {
	var slots []string
	for _, session := range course.Sessions {
		if session.StartMin == nil || session.EndMin == nil {
			continue
		}
		window := catalog.MinutesToClock(*session.StartMin) + "-" + catalog.MinutesToClock(*session.EndMin)
		for _, day := range models.WeekdayKeys {
			if session.Days[day] {
				slots = append(slots, strings.ToUpper(day[:1])+day[1:]+" "+window)
			}
		}
	}
	return strings.Join(slots, "; ")
}

func firstVenue(course dto.PlanCourseItem) string {
	for _, session := range course.Sessions {
		if session.Venue != "" {
			return session.Venue
		}
	}
	return ""
}

func firstInstructor(course dto.PlanCourseItem) string {
	for _, session := range course.Sessions {
		if session.Instructor != "" {
			return session.Instructor
		}
	}
	return ""
}
