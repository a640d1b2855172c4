package cpls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// twoCourseInstance: two single-meeting courses taught by separate
// lecturers to separate groups, two feature-less rooms.
func twoCourseInstance() model.Instance {
	return model.Instance{
		Lecturers: []model.Lecturer{
			{Id: 0, Name: "Dr. James Smith", UndesirablePenalty: 20},
			{Id: 1, Name: "Prof. Mary Jones", UndesirablePenalty: 25},
		},
		Groups: []model.StudentGroup{
			{Id: 0, Name: "CS-10", Size: 20, UndesirablePenalty: 15},
			{Id: 1, Name: "CS-11", Size: 30, UndesirablePenalty: 15},
		},
		Rooms: []model.Room{
			{Id: 0, Name: "Room A", Capacity: 40},
			{Id: 1, Name: "Room B", Capacity: 40},
		},
		Courses: []model.Course{
			{Id: 0, Name: "Fundamentals of Algorithms", LecturerId: 0, GroupIds: []int{0}, Duration: 1, WeeklyMeetings: 1},
			{Id: 1, Name: "Applied Statistics", LecturerId: 1, GroupIds: []int{1}, Duration: 1, WeeklyMeetings: 1},
		},
	}
}

func TestIsValidAssignmentHardConstraints(t *testing.T) {
	t.Run("Room capacity", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Rooms[0].Capacity = 10
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()

		// Assert: 20 students do not fit into capacity 10
		assert.False(t, checker.IsValidAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 0, RoomId: 1, TimeSlot: model.TimeSlot{}}, schedule))
	})

	t.Run("Room features", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Courses[0].RequiredFeatures = []int{2}
		instance.Rooms[1].Features = []int{1, 2}
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()

		// Assert
		assert.False(t, checker.IsValidAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 0, RoomId: 1, TimeSlot: model.TimeSlot{}}, schedule))
	})

	t.Run("Room conflict", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

		// Assert: same room and slot collides, other room or slot is fine
		assert.False(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 0}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 1}}, schedule))
	})

	t.Run("Lecturer conflict", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Courses[1].LecturerId = 0
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

		// Assert: same lecturer cannot teach two rooms at once
		assert.False(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 0}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 1}}, schedule))
	})

	t.Run("Group conflict", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Courses[1].GroupIds = []int{0, 1}
		instance.Rooms[1].Capacity = 50 // seats both groups (20 + 30)
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

		// Assert: group 0 is shared
		assert.False(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 0}}, schedule))
		assert.True(t, checker.IsValidAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 1, Period: 0}}, schedule))
	})

	t.Run("Same-course assignments are exempt", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Courses[0].WeeklyMeetings = 2
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

		// Assert: a schedule containing the assignment can re-validate it
		assert.True(t, checker.IsValidAssignment(schedule.Assignments[0], schedule))
	})
}

func TestValidationCache(t *testing.T) {
	// Arrange
	instance := twoCourseInstance()
	checker := NewConstraintChecker(&instance, 5, 8)
	schedule := model.NewSchedule()
	a := model.Assignment{CourseId: 1, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}}

	// Act: validate against the empty schedule, then change the schedule
	assert.True(t, checker.IsValidAssignment(a, schedule))
	schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

	// Assert: the key ignores the surrounding schedule until cleared
	assert.True(t, checker.IsValidAssignment(a, schedule))
	checker.ClearCache()
	assert.False(t, checker.IsValidAssignment(a, schedule))
}

func TestEvaluateSoftConstraints(t *testing.T) {
	t.Run("Empty schedule has no penalty", func(t *testing.T) {
		instance := twoCourseInstance()
		checker := NewConstraintChecker(&instance, 5, 8)
		assert.Zero(t, checker.EvaluateSoftConstraints(model.NewSchedule()))
	})

	t.Run("Lecturer gap", func(t *testing.T) {
		// Arrange: one lecturer, same day, periods 0 and 3
		instance := twoCourseInstance()
		instance.Courses[1].LecturerId = 0
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})
		schedule.AddAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 3}})

		// Assert: 10 * (3 - 0 - 1)
		assert.Equal(t, 20.0, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("Group gap", func(t *testing.T) {
		// Arrange: shared group, same day, periods 0 and 2
		instance := twoCourseInstance()
		instance.Courses[1].GroupIds = []int{0}
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})
		schedule.AddAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 2}})

		// Assert: 8 * (2 - 0 - 1)
		assert.Equal(t, 8.0, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("No gap penalty across days", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		instance.Courses[1].LecturerId = 0
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})
		schedule.AddAssignment(model.Assignment{CourseId: 1, RoomId: 1, TimeSlot: model.TimeSlot{Day: 1, Period: 3}})

		// Assert
		assert.Zero(t, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("Undesirable slots", func(t *testing.T) {
		// Arrange: lecturer dislikes the slot (20) and both groups do too
		// (15 each)
		instance := twoCourseInstance()
		instance.Lecturers[0].AddUndesirableSlot(model.TimeSlot{Day: 0, Period: 0})
		instance.Groups[0].AddUndesirableSlot(model.TimeSlot{Day: 0, Period: 0})
		instance.Groups[1].AddUndesirableSlot(model.TimeSlot{Day: 0, Period: 0})
		instance.Courses[0].GroupIds = []int{0, 1}
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})

		// Assert
		assert.Equal(t, 50.0, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("Afternoon preference", func(t *testing.T) {
		// Arrange
		instance := twoCourseInstance()
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 5}})

		// Assert: period > 4 adds 3
		assert.Equal(t, 3.0, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("Same-day meeting bunching", func(t *testing.T) {
		// Arrange: two meetings of one course on the same day, far enough
		// apart that no gap penalty applies to lecturer or group
		instance := twoCourseInstance()
		instance.Courses[0].WeeklyMeetings = 2
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: 0}})
		schedule.AddAssignment(model.Assignment{CourseId: 0, RoomId: 1, TimeSlot: model.TimeSlot{Day: 0, Period: 1}})

		// Assert: (2 meetings - 1 distinct day) * 20
		assert.Equal(t, 20.0, checker.EvaluateSoftConstraints(schedule))
	})

	t.Run("Group overload", func(t *testing.T) {
		// Arrange: five consecutive classes for group 0 in one day, from
		// five distinct courses with distinct lecturers
		instance := model.Instance{
			Lecturers: make([]model.Lecturer, 5),
			Groups:    []model.StudentGroup{{Id: 0, Name: "CS-10", Size: 10, UndesirablePenalty: 15}},
			Rooms:     []model.Room{{Id: 0, Name: "Room A", Capacity: 40}},
			Courses:   make([]model.Course, 5),
		}
		for i := range 5 {
			instance.Lecturers[i] = model.Lecturer{Id: i, Name: "Dr. Lee", UndesirablePenalty: 20}
			instance.Courses[i] = model.Course{Id: i, Name: "Topics in Calculus", LecturerId: i, GroupIds: []int{0}, Duration: 1, WeeklyMeetings: 1}
		}
		checker := NewConstraintChecker(&instance, 5, 8)
		schedule := model.NewSchedule()
		for i := range 5 {
			schedule.AddAssignment(model.Assignment{CourseId: i, RoomId: 0, TimeSlot: model.TimeSlot{Day: 0, Period: i}})
		}

		// Assert: (5 - 4) * 15, consecutive periods leave no gaps
		assert.Equal(t, 15.0, checker.EvaluateSoftConstraints(schedule))
	})
}
