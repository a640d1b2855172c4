package cpls

import (
	"slices"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// ConstraintChecker validates candidate assignments against the hard
// constraints and scores the soft-preference penalty of a schedule.
// Validation results are memoized under a (course, room, day, period)
// key; the key is agnostic to the surrounding schedule, so the cache
// must be cleared whenever the rest of the schedule changes out from
// under it (construction start, perturbation, restart).
type ConstraintChecker struct {
	courses   []model.Course
	rooms     []model.Room
	lecturers []model.Lecturer
	groups    []model.StudentGroup

	indexer cacheIndexer
	cache   map[int]bool
}

func NewConstraintChecker(instance *model.Instance, days, periodsPerDay int) *ConstraintChecker {
	return &ConstraintChecker{
		courses:   instance.Courses,
		rooms:     instance.Rooms,
		lecturers: instance.Lecturers,
		groups:    instance.Groups,
		indexer:   cacheIndexer{rooms: len(instance.Rooms), days: days, periods: periodsPerDay},
		cache:     make(map[int]bool),
	}
}

func (checker *ConstraintChecker) ClearCache() {
	checker.cache = make(map[int]bool)
}

// IsValidAssignment decides whether inserting the assignment into the
// schedule would violate a hard constraint. Assignments of the same
// course are exempt from the conflict checks, so a schedule that already
// contains the assignment can be re-validated in place.
func (checker *ConstraintChecker) IsValidAssignment(a model.Assignment, schedule *model.Schedule) bool {
	key := checker.indexer.Index(a.CourseId, a.RoomId, a.TimeSlot.Day, a.TimeSlot.Period)
	if valid, ok := checker.cache[key]; ok {
		return valid
	}

	course := checker.courses[a.CourseId]
	room := checker.rooms[a.RoomId]

	// Room capacity
	if room.Capacity < course.TotalStudents(checker.groups) {
		checker.cache[key] = false
		return false
	}

	// Room features
	if !room.HasFeatures(course.RequiredFeatures) {
		checker.cache[key] = false
		return false
	}

	// Time slot conflicts
	for _, other := range schedule.Assignments {
		if other.CourseId == a.CourseId {
			continue
		}

		// Room conflict
		if other.RoomId == a.RoomId && other.TimeSlot == a.TimeSlot {
			checker.cache[key] = false
			return false
		}

		// Lecturer conflict
		if checker.courses[other.CourseId].LecturerId == course.LecturerId &&
			other.TimeSlot == a.TimeSlot {
			checker.cache[key] = false
			return false
		}

		// Student group conflict: any shared group in the same slot
		if other.TimeSlot == a.TimeSlot {
			for _, groupId := range course.GroupIds {
				if slices.Contains(checker.courses[other.CourseId].GroupIds, groupId) {
					checker.cache[key] = false
					return false
				}
			}
		}
	}

	checker.cache[key] = true
	return true
}

// EvaluateSoftConstraints returns the total soft penalty of the schedule:
// same-day gaps for lecturers (10/period) and groups (8/period),
// undesirable-slot penalties, a penalty on afternoon periods, same-day
// meeting bunching and per-day group overload.
func (checker *ConstraintChecker) EvaluateSoftConstraints(schedule *model.Schedule) float64 {
	penalty := 0.0

	// Gaps between same-day classes for lecturers
	lecturerSlots := make(map[int][]model.TimeSlot)
	for _, a := range schedule.Assignments {
		lecturerId := checker.courses[a.CourseId].LecturerId
		lecturerSlots[lecturerId] = append(lecturerSlots[lecturerId], a.TimeSlot)
	}
	for _, slots := range lecturerSlots {
		slices.SortFunc(slots, model.TimeSlot.Compare)
		for i := 1; i < len(slots); i++ {
			if slots[i].Day == slots[i-1].Day {
				// Coinciding slots (gap -1) are not a gap
				if gap := slots[i].Period - slots[i-1].Period - 1; gap > 0 {
					penalty += float64(gap * 10)
				}
			}
		}
	}

	// Gaps between same-day classes for student groups
	groupSlots := make(map[int][]model.TimeSlot)
	for _, a := range schedule.Assignments {
		for _, groupId := range checker.courses[a.CourseId].GroupIds {
			groupSlots[groupId] = append(groupSlots[groupId], a.TimeSlot)
		}
	}
	for _, slots := range groupSlots {
		slices.SortFunc(slots, model.TimeSlot.Compare)
		for i := 1; i < len(slots); i++ {
			if slots[i].Day == slots[i-1].Day {
				if gap := slots[i].Period - slots[i-1].Period - 1; gap > 0 {
					penalty += float64(gap * 8)
				}
			}
		}
	}

	// Undesirable time slots
	for _, a := range schedule.Assignments {
		course := checker.courses[a.CourseId]

		lecturer := checker.lecturers[course.LecturerId]
		if lecturer.IsUndesirableSlot(a.TimeSlot) {
			penalty += lecturer.UndesirablePenalty
		}

		for _, groupId := range course.GroupIds {
			group := checker.groups[groupId]
			if group.IsUndesirableSlot(a.TimeSlot) {
				penalty += group.UndesirablePenalty
			}
		}
	}

	// Morning preference
	for _, a := range schedule.Assignments {
		if a.TimeSlot.Period > 4 {
			penalty += 3
		}
	}

	// Meetings of a course bunched on the same day
	for _, positions := range schedule.CourseAssignments {
		days := make(map[int]bool)
		for _, position := range positions {
			days[schedule.Assignments[position].TimeSlot.Day] = true
		}
		if len(days) < len(positions) {
			penalty += float64((len(positions) - len(days)) * 20)
		}
	}

	// Too many classes per day for a group
	for _, slots := range groupSlots {
		classesPerDay := make(map[int]int)
		for _, ts := range slots {
			classesPerDay[ts.Day]++
		}
		for _, count := range classesPerDay {
			if count > 4 {
				penalty += float64((count - 4) * 15)
			}
		}
	}

	return penalty
}
