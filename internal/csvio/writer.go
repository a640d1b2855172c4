package csvio

import (
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// ScheduleCSVRow is one meeting of the solved schedule, resolved to
// display names.
type ScheduleCSVRow struct {
	Course   string `csv:"course"`
	Lecturer string `csv:"lecturer"`
	Room     string `csv:"room"`
	Day      int    `csv:"day"`
	Period   int    `csv:"period"`
	Duration int    `csv:"duration"`
	Groups   string `csv:"groups"`
}

// ExportSchedule formats the schedule into CSV rows and writes them to
// the file at the given path.
func ExportSchedule(schedule *model.Schedule, instance *model.Instance, path string) error {
	rows := formatSchedule(schedule, instance)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&rows, out)
}

// ExportScheduleString returns the CSV document as a string.
func ExportScheduleString(schedule *model.Schedule, instance *model.Instance) (string, error) {
	rows := formatSchedule(schedule, instance)
	return gocsv.MarshalString(&rows)
}

func formatSchedule(schedule *model.Schedule, instance *model.Instance) []*ScheduleCSVRow {
	rows := lo.Map(schedule.Assignments, func(a model.Assignment, _ int) *ScheduleCSVRow {
		course := instance.Courses[a.CourseId]
		groupNames := lo.Map(course.GroupIds, func(groupId int, _ int) string {
			return instance.Groups[groupId].Name
		})

		return &ScheduleCSVRow{
			Course:   course.Name,
			Lecturer: instance.Lecturers[course.LecturerId].Name,
			Room:     instance.Rooms[a.RoomId].Name,
			Day:      a.TimeSlot.Day,
			Period:   a.TimeSlot.Period,
			Duration: course.Duration,
			Groups:   strings.Join(groupNames, "|"),
		}
	})

	slices.SortFunc(rows, func(r1, r2 *ScheduleCSVRow) int {
		if day := r1.Day - r2.Day; day != 0 {
			return day
		}
		if period := r1.Period - r2.Period; period != 0 {
			return period
		}
		return strings.Compare(r1.Course, r2.Course)
	})

	return rows
}
