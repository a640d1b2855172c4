package cpls

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// GenerateInitialSolution builds a starting schedule greedily: courses
// are placed hardest first (more groups, more students), each meeting
// takes the most desirable assignment that passes the hard checks
// against the partial schedule. A meeting with no feasible assignment is
// logged and skipped; local search may or may not recover it.
func (scheduler *Scheduler) GenerateInitialSolution() *model.Schedule {
	scheduler.checker.ClearCache()
	schedule := model.NewSchedule()

	order := make([]int, len(scheduler.order))
	copy(order, scheduler.order)

	// Stable sort keeps the shuffled restart order as tie-breaker
	slices.SortStableFunc(order, func(a, b int) int {
		difficultyA := len(scheduler.courses[a].GroupIds) * scheduler.courses[a].TotalStudents(scheduler.groups)
		difficultyB := len(scheduler.courses[b].GroupIds) * scheduler.courses[b].TotalStudents(scheduler.groups)
		return difficultyB - difficultyA
	})

	for _, courseIdx := range order {
		course := scheduler.courses[courseIdx]

		for meeting := 0; meeting < course.WeeklyMeetings; meeting++ {
			validAssignments := make([]model.Assignment, 0)

			for r := range scheduler.rooms {
				for d := 0; d < scheduler.days; d++ {
					for p := 0; p <= scheduler.periodsPerDay-course.Duration; p++ {
						a := model.Assignment{CourseId: courseIdx, RoomId: r, TimeSlot: model.TimeSlot{Day: d, Period: p}}
						if scheduler.checker.IsValidAssignment(a, schedule) {
							validAssignments = append(validAssignments, a)
						}
					}
				}
			}

			if len(validAssignments) == 0 {
				logrus.Warnf("no valid assignment for course %v", course.Name)
				continue
			}

			// Value ordering: keep the first minimum, so ties fall back
			// to enumeration order
			best := validAssignments[0]
			bestScore := scheduler.desirability(course, best)
			for _, candidate := range validAssignments[1:] {
				if score := scheduler.desirability(course, candidate); score < bestScore {
					best, bestScore = candidate, score
				}
			}

			schedule.AddAssignment(best)
		}
	}

	scheduler.evaluateFitness(schedule)
	return schedule
}

// desirability scores a candidate assignment, lower is better: 100 if the
// lecturer finds the slot undesirable, plus 50 per group that does, plus 5
// per period, minus the room capacity.
func (scheduler *Scheduler) desirability(course model.Course, a model.Assignment) int {
	score := 0

	if scheduler.lecturers[course.LecturerId].IsUndesirableSlot(a.TimeSlot) {
		score += 100
	}

	for _, groupId := range course.GroupIds {
		if scheduler.groups[groupId].IsUndesirableSlot(a.TimeSlot) {
			score += 50
		}
	}

	score += a.TimeSlot.Period * 5
	score -= scheduler.rooms[a.RoomId].Capacity

	return score
}
