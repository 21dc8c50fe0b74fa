package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(overrides func(*RawRow)) RawRow {
	row := RawRow{
		Term:        "2025-26 Semester 1",
		Career:      "UG",
		CourseCode:  "COMP1001",
		Section:     "1A",
		ClassNumber: "1001",
		StartDate:   "01/09/2025",
		EndDate:     "30/11/2025",
		Mon:         "Y",
		Venue:       "CB-A",
		StartTime:   "09:30",
		EndTime:     "10:20",
		CourseTitle: "Introduction to Programming",
		Department:  "Computer Science",
		Instructor:  "Chan, Tai Man",
	}
	if overrides != nil {
		overrides(&row)
	}
	return row
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"09:30", minutesOf(570)},
		{"09:30:00", minutesOf(570)},
		{"00:00", minutesOf(0)},
		{"23:59", minutesOf(1439)},
		{" 13:05 ", minutesOf(785)},
		{"", nil},
		{"TBA", nil},
		{"9", nil},
		{"24:00", nil},
		{"12:60", nil},
		{"ab:cd", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseTimeOfDay(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func minutesOf(v int) *int {
	return &v
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "09:30", MinutesToClock(570))
	assert.Equal(t, "00:00", MinutesToClock(0))
	assert.Equal(t, "23:59", MinutesToClock(1439))
}

func TestNormalizeInstructor(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Chan, Tai Man", "Tai Man Chan"},
		{"Chan,Tai Man", "Tai Man Chan"},
		{"Smith", "Smith"},
		{"Smith,", "Smith"},
		{"  ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeInstructor(tt.raw))
	}
}

func TestNormalizeFilters(t *testing.T) {
	rows := []RawRow{
		sampleRow(nil),
		sampleRow(func(r *RawRow) { r.CourseCode = "PGRD9001"; r.Career = "TPG" }),
		sampleRow(func(r *RawRow) { r.CourseCode = "COMP2002"; r.Term = "2025-26 Summer Semester" }),
		sampleRow(func(r *RawRow) { r.CourseCode = "LANG1001FY" }),
		sampleRow(func(r *RawRow) { r.CourseCode = "" }),
		sampleRow(func(r *RawRow) { r.CourseCode = "EXCH1001"; r.Career = "UGDE" }),
	}

	result := Normalize(rows)

	require.Len(t, result.Courses, 2)
	assert.Equal(t, "COMP1001", result.Courses[0].Code)
	assert.Equal(t, "EXCH1001", result.Courses[1].Code)
	assert.Equal(t, []string{"2025-26 Semester 1"}, result.Terms)
}

func TestNormalizeGroupsSectionsAndSessions(t *testing.T) {
	rows := []RawRow{
		sampleRow(nil),
		sampleRow(func(r *RawRow) { r.Mon = ""; r.Thu = "Y"; r.StartTime = "13:30"; r.EndTime = "14:20" }),
		sampleRow(func(r *RawRow) { r.Section = "1B"; r.Mon = ""; r.Tue = "Y" }),
		sampleRow(func(r *RawRow) { r.Term = "2025-26 Semester 2"; r.Section = "2A" }),
	}

	result := Normalize(rows)

	group, ok := result.Catalog.Group("COMP1001", "2025-26 Semester 1")
	require.True(t, ok)
	assert.Len(t, group.Sections, 2)
	require.Len(t, group.Sections["1A"], 2)
	require.Len(t, group.Sections["1B"], 1)

	session := group.Sections["1A"][0]
	assert.True(t, session.Days.Mon)
	require.True(t, session.HasTimes())
	assert.Equal(t, 570, *session.StartMin)
	assert.Equal(t, 620, *session.EndMin)
	assert.Equal(t, "Tai Man Chan", session.Instructor)
	assert.Equal(t, "CB-A", session.Venue)

	require.Len(t, result.Courses, 1)
	course := result.Courses[0]
	assert.Equal(t, []string{"2025-26 Semester 1", "2025-26 Semester 2"}, course.Terms)
	assert.Equal(t, []string{"1A", "1B", "2A"}, course.Sections)
	assert.Equal(t, 3, course.SectionCount)
}

func TestNormalizeUnparseableTimesYieldNilBounds(t *testing.T) {
	rows := []RawRow{
		sampleRow(func(r *RawRow) { r.StartTime = "TBA"; r.EndTime = "" }),
	}

	result := Normalize(rows)

	sessions, ok := result.Catalog.SectionSessions("COMP1001", "2025-26 Semester 1", "1A")
	require.True(t, ok)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].HasTimes())
	assert.True(t, sessions[0].Days.Mon, "day flags survive even without times")
}

func TestNormalizeCommonCoreAndWeeklySummary(t *testing.T) {
	rows := []RawRow{
		sampleRow(func(r *RawRow) { r.CourseCode = "CCHU9001"; r.CourseTitle = "Food and Values" }),
		sampleRow(func(r *RawRow) {
			r.CourseCode = "CCHU9001"
			r.CourseTitle = "Food and Values"
			r.Mon = ""
			r.Thu = "Y"
			r.StartTime = "13:30"
			r.EndTime = "14:20"
		}),
	}

	result := Normalize(rows)

	require.Len(t, result.Courses, 1)
	course := result.Courses[0]
	assert.True(t, course.CommonCore)
	assert.Equal(t, "Mon 09:30-10:20, Thu 13:30-14:20", course.WeeklySummary)
}

func TestFingerprintStability(t *testing.T) {
	rowsA := []RawRow{sampleRow(nil), sampleRow(func(r *RawRow) { r.Section = "1B" })}
	rowsB := []RawRow{sampleRow(nil), sampleRow(func(r *RawRow) { r.Section = "1B" })}
	rowsC := []RawRow{sampleRow(nil)}

	assert.Equal(t, Fingerprint(rowsA), Fingerprint(rowsB))
	assert.NotEqual(t, Fingerprint(rowsA), Fingerprint(rowsC))
}

func TestDecodeCSV(t *testing.T) {
	input := strings.Join([]string{
		`TERM, ACAD_CAREER,COURSE CODE,CLASS SECTION,CLASS NUMBER,START DATE,END DATE,MON,TUE,WED,THU,FRI,SAT,SUN,VENUE,START TIME,END TIME,COURSE TITLE,OFFER DEPT,INSTRUCTOR`,
		`2025-26 Semester 1,UG,COMP1001,1A,1001,01/09/2025,30/11/2025,Y,,,,,,,CB-A,09:30,10:20,"Introduction, to Programming",Computer Science,"Chan, Tai Man"`,
		`2025-26 Semester 1,UG,MATH1011,1A,1002,01/09/2025,30/11/2025,,Y,,,,,,KK-201,10:30,11:20,University Mathematics,Mathematics,"Lee, Siu Ming"`,
	}, "\n")

	rows, err := DecodeCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "COMP1001", rows[0].CourseCode)
	assert.Equal(t, "Introduction, to Programming", rows[0].CourseTitle)
	assert.Equal(t, "UG", rows[0].Career, "headers with stray spaces still bind")
	assert.Equal(t, "MATH1011", rows[1].CourseCode)
}
