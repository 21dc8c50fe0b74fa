package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Course", "Section", "Slot"},
		Sections: []Section{
			{
				Title: "Semester 1",
				Rows: []map[string]string{
					{"Course": "COMP1001", "Section": "1A", "Slot": "Mon 09:30-10:20"},
				},
			},
			{
				Title: "Semester 2",
				Rows: []map[string]string{
					{"Course": "ECON1210", "Section": "2A", "Slot": "Thu 13:30-14:20"},
				},
			},
		},
	}

	out, err := exporter.Render(data)

	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Semester 1\n")
	assert.Contains(t, text, "Course,Section,Slot\n")
	assert.Contains(t, text, "COMP1001,1A,Mon 09:30-10:20\n")
	assert.Contains(t, text, "Semester 2\n")
	assert.Contains(t, text, "ECON1210,2A,Thu 13:30-14:20\n")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})

	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"Course", "Section"},
		Sections: []Section{
			{Title: "Semester 1", Rows: []map[string]string{{"Course": "COMP1001", "Section": "1A"}}},
		},
	}

	out, err := exporter.Render(data, "My Timetable")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{}, "")

	assert.Error(t, err)
}

func TestICSExporterRender(t *testing.T) {
	exporter := NewICSExporter("-//Course Planner//EN")
	events := []Event{{
		UID:         "COMP1001-1A-mon-0@planner",
		Summary:     "COMP1001",
		Description: "Title: Intro, to Programming\nInstructor: Tai Man Chan",
		Location:    "CB-A",
		Weekday:     time.Monday,
		StartMin:    570,
		EndMin:      620,
		StartDate:   time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}}

	out, err := exporter.Render(events)

	require.NoError(t, err)
	lines := strings.Split(string(out), "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Contains(t, lines, "PRODID:-//Course Planner//EN")
	assert.Contains(t, lines, "UID:COMP1001-1A-mon-0@planner")
	// Sep 3 2025 is a Wednesday; the first Monday after is Sep 8.
	assert.Contains(t, lines, "DTSTART:20250908T093000Z")
	assert.Contains(t, lines, "DTEND:20250908T102000Z")
	assert.Contains(t, lines, "RRULE:FREQ=WEEKLY;UNTIL=20251130T102000Z")
	assert.Contains(t, lines, `SUMMARY:COMP1001`)
	assert.Contains(t, lines, `DESCRIPTION:Title: Intro\, to Programming\nInstructor: Tai Man Chan`)
	assert.Contains(t, lines, "LOCATION:CB-A")
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-2])
}

func TestICSExporterEventOnStartWeekday(t *testing.T) {
	exporter := NewICSExporter("-//Course Planner//EN")
	// Sep 1 2025 is itself a Monday.
	events := []Event{{
		UID:       "x@planner",
		Summary:   "X",
		Weekday:   time.Monday,
		StartMin:  540,
		EndMin:    600,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}}

	out, err := exporter.Render(events)

	require.NoError(t, err)
	assert.Contains(t, string(out), "DTSTART:20250901T090000Z")
}

func TestICSExporterFoldsLongLines(t *testing.T) {
	exporter := NewICSExporter("-//Course Planner//EN")
	description := strings.Repeat("lecture notes and readings ", 8)
	events := []Event{{
		UID:         "fold@planner",
		Summary:     "COMP1001",
		Description: description,
		Weekday:     time.Monday,
		StartMin:    540,
		EndMin:      600,
		StartDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}}

	out, err := exporter.Render(events)

	require.NoError(t, err)
	text := string(out)
	lines := strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n")
	folded := false
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 75)
		if strings.HasPrefix(line, " ") {
			folded = true
		}
	}
	assert.True(t, folded)
	// Unfolding restores the original content line.
	assert.Contains(t, strings.ReplaceAll(text, "\r\n ", ""), "DESCRIPTION:"+description)
}

func TestICSExporterRejectsMissingDates(t *testing.T) {
	exporter := NewICSExporter("-//Course Planner//EN")

	_, err := exporter.Render([]Event{{UID: "bad@planner"}})

	assert.Error(t, err)
}
