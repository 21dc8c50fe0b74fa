package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/pkg/export"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

func newTestExportService() *ExportService {
	return NewExportService(nil, nil, export.NewICSExporter("-//Course Planner//EN"), nil, zap.NewNop())
}

func exportTestPlan() dto.PlanItem {
	start, end := 570, 620
	return dto.PlanItem{
		Term1Count: 1,
		Courses: []dto.PlanCourseItem{{
			CourseCode:  "COMP1001",
			CourseTitle: "Introduction to Programming",
			Department:  "Computer Science",
			Term:        "2025-26 Semester 1",
			Section:     "1A",
			Sessions: []dto.SessionItem{{
				Days:       map[string]bool{"mon": true},
				StartMin:   &start,
				EndMin:     &end,
				StartDate:  "01/09/2025",
				EndDate:    "30/11/2025",
				Venue:      "CB-A",
				Instructor: "Tai Man Chan",
			}},
		}},
	}
}

func TestExportServiceRenderICS(t *testing.T) {
	svc := newTestExportService()

	result, err := svc.Render(dto.ExportPlanRequest{Format: "ics", Plan: exportTestPlan()})

	require.NoError(t, err)
	assert.Equal(t, "timetable.ics", result.Filename)
	assert.Equal(t, "text/calendar", result.ContentType)
	text := string(result.Payload)
	assert.Contains(t, text, "SUMMARY:COMP1001")
	assert.Contains(t, text, "DESCRIPTION:Title: Introduction to Programming\\nInstructor: Tai Man Chan")
	assert.Contains(t, text, "LOCATION:CB-A")
	// 01/09/2025 is a Monday, so the event starts that day.
	assert.Contains(t, text, "DTSTART:20250901T093000Z")
	assert.Contains(t, text, "RRULE:FREQ=WEEKLY;UNTIL=20251130T102000Z")
}

func TestExportServiceICSCustomTemplates(t *testing.T) {
	svc := newTestExportService()

	result, err := svc.Render(dto.ExportPlanRequest{
		Format:              "ics",
		Plan:                exportTestPlan(),
		TitleTemplate:       "%COURSE_CODE% (%SUBCLASS%) @ %LOCATION%",
		DescriptionTemplate: "%DEPARTMENT%",
	})

	require.NoError(t, err)
	text := string(result.Payload)
	assert.Contains(t, text, "SUMMARY:COMP1001 (1A) @ CB-A")
	assert.Contains(t, text, "DESCRIPTION:Computer Science")
}

func TestExportServiceICSExcludesLocation(t *testing.T) {
	svc := newTestExportService()
	includeLocation := false

	result, err := svc.Render(dto.ExportPlanRequest{
		Format:          "ics",
		Plan:            exportTestPlan(),
		IncludeLocation: &includeLocation,
	})

	require.NoError(t, err)
	assert.NotContains(t, string(result.Payload), "LOCATION:")
}

func TestExportServiceICSRoundsToHalfHour(t *testing.T) {
	svc := newTestExportService()
	plan := exportTestPlan()
	start, end := 565, 625
	plan.Courses[0].Sessions[0].StartMin = &start
	plan.Courses[0].Sessions[0].EndMin = &end

	result, err := svc.Render(dto.ExportPlanRequest{
		Format:          "ics",
		Plan:            plan,
		RoundToHalfHour: true,
	})

	require.NoError(t, err)
	text := string(result.Payload)
	assert.Contains(t, text, "DTSTART:20250901T093000Z")
	assert.Contains(t, text, "DTEND:20250901T103000Z")
}

func TestExportServiceICSIncludesBlockouts(t *testing.T) {
	svc := newTestExportService()

	result, err := svc.Render(dto.ExportPlanRequest{
		Format:           "ics",
		Plan:             exportTestPlan(),
		IncludeBlockouts: true,
		Blockouts: []dto.BlockoutRequest{
			{Name: "part-time job", Day: "wed", StartMin: 840, EndMin: 1020},
		},
	})

	require.NoError(t, err)
	text := string(result.Payload)
	assert.Contains(t, text, "SUMMARY:part-time job")
	assert.Contains(t, text, "UID:blockout-0@planner")
}

func TestExportServiceICSSkipsUntimedSessions(t *testing.T) {
	svc := newTestExportService()
	plan := exportTestPlan()
	plan.Courses[0].Sessions[0].StartMin = nil
	plan.Courses[0].Sessions[0].EndMin = nil

	_, err := svc.Render(dto.ExportPlanRequest{Format: "ics", Plan: plan})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := newTestExportService()

	result, err := svc.Render(dto.ExportPlanRequest{Format: "csv", Plan: exportTestPlan()})

	require.NoError(t, err)
	assert.Equal(t, "timetable.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	text := string(result.Payload)
	assert.Contains(t, text, "2025-26 Semester 1")
	assert.Contains(t, text, "COMP1001,Introduction to Programming,1A,Mon 09:30-10:20,CB-A,Tai Man Chan")
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := newTestExportService()

	result, err := svc.Render(dto.ExportPlanRequest{Format: "pdf", Plan: exportTestPlan(), Title: "My Plan"})

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceRejectsEmptyPlan(t *testing.T) {
	svc := newTestExportService()

	_, err := svc.Render(dto.ExportPlanRequest{Format: "csv"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
