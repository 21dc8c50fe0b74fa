package catalog

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// RawRow mirrors one row of the university timetable export. Column names
// are a fixed external contract; some exports prefix each header with a
// space, which the header normalizer strips before matching.
type RawRow struct {
	Term        string `csv:"TERM" json:"term"`
	Career      string `csv:"ACAD_CAREER" json:"career"`
	CourseCode  string `csv:"COURSE CODE" json:"courseCode"`
	Section     string `csv:"CLASS SECTION" json:"section"`
	ClassNumber string `csv:"CLASS NUMBER" json:"classNumber"`
	StartDate   string `csv:"START DATE" json:"startDate"`
	EndDate     string `csv:"END DATE" json:"endDate"`
	Mon         string `csv:"MON" json:"mon"`
	Tue         string `csv:"TUE" json:"tue"`
	Wed         string `csv:"WED" json:"wed"`
	Thu         string `csv:"THU" json:"thu"`
	Fri         string `csv:"FRI" json:"fri"`
	Sat         string `csv:"SAT" json:"sat"`
	Sun         string `csv:"SUN" json:"sun"`
	Venue       string `csv:"VENUE" json:"venue"`
	StartTime   string `csv:"START TIME" json:"startTime"`
	EndTime     string `csv:"END TIME" json:"endTime"`
	CourseTitle string `csv:"COURSE TITLE" json:"courseTitle"`
	Department  string `csv:"OFFER DEPT" json:"department"`
	Instructor  string `csv:"INSTRUCTOR" json:"instructor"`
}

func init() {
	gocsv.SetHeaderNormalizer(strings.TrimSpace)
}

// DecodeCSV parses a timetable CSV export into raw rows.
func DecodeCSV(r io.Reader) ([]RawRow, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		reader := csv.NewReader(in)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		return reader
	})

	var rows []RawRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
