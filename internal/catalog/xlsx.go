package catalog

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX parses the first worksheet of a timetable workbook into raw
// rows. The first row must carry the same column names as the CSV export;
// unknown columns are ignored.
func DecodeXLSX(r io.Reader) ([]RawRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns := make(map[string]int, len(cells[0]))
	for i, header := range cells[0] {
		columns[strings.TrimSpace(header)] = i
	}

	rows := make([]RawRow, 0, len(cells)-1)
	for _, record := range cells[1:] {
		cell := func(name string) string {
			index, ok := columns[name]
			if !ok || index >= len(record) {
				return ""
			}
			return record[index]
		}

		rows = append(rows, RawRow{
			Term:        cell("TERM"),
			Career:      cell("ACAD_CAREER"),
			CourseCode:  cell("COURSE CODE"),
			Section:     cell("CLASS SECTION"),
			ClassNumber: cell("CLASS NUMBER"),
			StartDate:   cell("START DATE"),
			EndDate:     cell("END DATE"),
			Mon:         cell("MON"),
			Tue:         cell("TUE"),
			Wed:         cell("WED"),
			Thu:         cell("THU"),
			Fri:         cell("FRI"),
			Sat:         cell("SAT"),
			Sun:         cell("SUN"),
			Venue:       cell("VENUE"),
			StartTime:   normalizeTimeCell(cell("START TIME")),
			EndTime:     normalizeTimeCell(cell("END TIME")),
			CourseTitle: cell("COURSE TITLE"),
			Department:  cell("OFFER DEPT"),
			Instructor:  cell("INSTRUCTOR"),
		})
	}
	return rows, nil
}

// normalizeTimeCell maps spreadsheet time values to "HH:MM". Cells stored
// as Excel serial times arrive as day fractions; formatted cells arrive as
// text and pass through unchanged.
func normalizeTimeCell(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.Contains(trimmed, ":") {
		return trimmed
	}

	fraction, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || fraction < 0 || fraction >= 1 {
		return trimmed
	}
	minute := int(math.Round(fraction * 24 * 60))
	return MinutesToClock(minute)
}
