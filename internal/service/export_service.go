package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
)

var (
	ErrExportNoClasses         = errors.New("no classes in this semester's schedule")
	ErrExportUnknownFormat     = errors.New("unsupported export format")
	ErrExportTermNotConfigured = errors.New("semester dates are not configured")
	ErrExportGenerateFail      = errors.New("failed to generate export file")
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatICS  = "ics"
)

// ExportFile a generated download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a student's schedule as a spreadsheet or calendar.
type ExportService interface {
	Export(ctx context.Context, userID, semester, format string) (*ExportFile, error)
}

type exportService struct {
	cfg      *config.ScheduleConfig
	schedule ScheduleService
	logger   *zap.Logger
}

func NewExportService(cfg *config.ScheduleConfig, schedule ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, schedule: schedule, logger: logger}
}

func (s *exportService) Export(ctx context.Context, userID, semester, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatICS {
		return nil, ErrExportUnknownFormat
	}

	semester = s.schedule.Semester(semester)
	classes, err := s.schedule.Enrolled(ctx, userID, semester)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, ErrExportNoClasses
	}

	if format == FormatICS {
		return s.scheduleICS(semester, classes)
	}
	return s.scheduleXLSX(semester, classes)
}

// ═══════════════════════════════════════════════════════════
// xlsx: title row, header row, one row per class
// ═══════════════════════════════════════════════════════════

var xlsxHeaders = []string{"Course ID", "Name", "Professor", "Location", "Days", "Start", "End"}

func (s *exportService) scheduleXLSX(semester string, classes []model.Course) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "B", 32)
	_ = f.SetColWidth(sheetName, "C", "D", 24)
	_ = f.SetColWidth(sheetName, "E", "G", 14)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	lastCol := colName(len(xlsxHeaders) - 1)
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s Schedule", semester))
	_ = f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	for i, h := range xlsxHeaders {
		_ = f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	_ = f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)

	row := 3
	for _, c := range classes {
		values := []string{c.CourseID, c.Name, c.Professor, c.Location, strings.Join(c.Days, ", "), c.Start, c.End}
		for i, v := range values {
			_ = f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	return &ExportFile{
		Filename:    exportFilename(semester, FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ics: one weekly recurring event per class over the term
// ═══════════════════════════════════════════════════════════

func (s *exportService) scheduleICS(semester string, classes []model.Course) (*ExportFile, error) {
	term, ok := s.cfg.Term(semester)
	if !ok {
		return nil, ErrExportTermNotConfigured
	}
	loc, err := s.cfg.Location()
	if err != nil {
		s.logger.Error("load schedule timezone failed", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	termStart, err := time.ParseInLocation(config.TermDateLayout, term.Start, loc)
	if err != nil {
		return nil, ErrExportTermNotConfigured
	}
	termEnd, err := time.ParseInLocation(config.TermDateLayout, term.End, loc)
	if err != nil {
		return nil, ErrExportTermNotConfigured
	}
	until := termEnd.Add(24*time.Hour - time.Second)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studyplan//schedule export//EN")
	cal.SetXWRCalName(semester + " Schedule")

	stamp := time.Now().UTC()
	written := 0
	for _, c := range classes {
		weekdays, byDay := parseMeetingDays(c.Days)
		startClock, errStart := parseClock(c.Start)
		endClock, errEnd := parseClock(c.End)
		if len(weekdays) == 0 || errStart != nil || errEnd != nil {
			s.logger.Warn("course skipped in calendar export",
				zap.String("course_id", c.CourseID),
				zap.Strings("days", c.Days),
				zap.String("start", c.Start),
				zap.String("end", c.End),
			)
			continue
		}

		first := firstMeeting(termStart, weekdays)
		if first.After(termEnd) {
			continue
		}
		start := atClock(first, startClock, loc)
		end := atClock(first, endClock, loc)
		if !end.After(start) {
			end = start.Add(time.Hour)
		}

		evt := cal.AddEvent(eventUID(c.CourseID, semester))
		evt.SetDtStampTime(stamp)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(strings.TrimSpace(c.CourseID + " " + c.Name))
		evt.SetLocation(c.Location)
		if c.Professor != "" {
			evt.SetDescription("Professor: " + c.Professor)
		}
		evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
			strings.Join(byDay, ","), until.UTC().Format("20060102T150405Z")))
		written++
	}

	if written == 0 {
		return nil, ErrExportGenerateFail
	}

	return &ExportFile{
		Filename:    exportFilename(semester, FormatICS),
		ContentType: "text/calendar; charset=utf-8",
		Data:        []byte(cal.Serialize()),
	}, nil
}

// ── helpers ──

var weekdayByPrefix = map[string]struct {
	day   time.Weekday
	rrule string
}{
	"su": {time.Sunday, "SU"},
	"mo": {time.Monday, "MO"},
	"tu": {time.Tuesday, "TU"},
	"we": {time.Wednesday, "WE"},
	"th": {time.Thursday, "TH"},
	"fr": {time.Friday, "FR"},
	"sa": {time.Saturday, "SA"},
}

// parseMeetingDays accepts "Mon", "monday", "Thurs" and similar spellings.
func parseMeetingDays(days []string) ([]time.Weekday, []string) {
	seen := make(map[time.Weekday]bool)
	var weekdays []time.Weekday
	var byDay []string
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 2 {
			continue
		}
		wd, ok := weekdayByPrefix[d[:2]]
		if !ok || seen[wd.day] {
			continue
		}
		seen[wd.day] = true
		weekdays = append(weekdays, wd.day)
		byDay = append(byDay, wd.rrule)
	}
	return weekdays, byDay
}

var clockLayouts = []string{"3:04 PM", "3:04PM", "3:04 pm", "3:04pm", "15:04", "3 PM", "3PM"}

// parseClock returns minutes since midnight.
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time %q", s)
}

func firstMeeting(from time.Time, weekdays []time.Weekday) time.Time {
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		for _, wd := range weekdays {
			if d.Weekday() == wd {
				return d
			}
		}
	}
	return from
}

func atClock(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
}

func eventUID(courseID, semester string) string {
	return fmt.Sprintf("%s-%s@studyplan", strings.ReplaceAll(courseID, " ", ""), slug(semester))
}

func exportFilename(semester, ext string) string {
	return fmt.Sprintf("schedule_%s.%s", slug(semester), ext)
}

func slug(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
