package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInstanceDeterminism(t *testing.T) {
	// Arrange
	options := DefaultGeneratorOptions()

	// Act
	first := NewDataGenerator(7).GenerateInstance(10, 12, 8, 20, options)
	second := NewDataGenerator(7).GenerateInstance(10, 12, 8, 20, options)
	different := NewDataGenerator(8).GenerateInstance(10, 12, 8, 20, options)

	// Assert
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, different)
}

func TestGenerateInstanceShape(t *testing.T) {
	// Arrange
	options := DefaultGeneratorOptions()

	// Act
	instance := NewDataGenerator(3).GenerateInstance(15, 20, 10, 30, options)

	// Assert
	assert.Len(t, instance.Lecturers, 15)
	assert.Len(t, instance.Groups, 20)
	assert.Len(t, instance.Rooms, 10)
	assert.Len(t, instance.Courses, 30)
	assert.Nil(t, instance.Validate())

	for _, lecturer := range instance.Lecturers {
		assert.NotEmpty(t, lecturer.Name)
		if strings.Contains(lecturer.Name, "Prof.") && len(lecturer.UndesirableSlots) > 0 {
			assert.Equal(t, 25.0, lecturer.UndesirablePenalty)
		} else {
			assert.Equal(t, 20.0, lecturer.UndesirablePenalty)
		}
		for _, ts := range lecturer.UndesirableSlots {
			assert.Less(t, ts.Day, options.Days)
			assert.Less(t, ts.Period, options.PeriodsPerDay)
		}
	}

	for _, group := range instance.Groups {
		assert.GreaterOrEqual(t, group.Size, 15)
		assert.LessOrEqual(t, group.Size, 35)
		assert.Equal(t, 15.0, group.UndesirablePenalty)
	}

	for _, course := range instance.Courses {
		assert.GreaterOrEqual(t, course.Duration, 1)
		assert.LessOrEqual(t, course.Duration, 3)
		assert.GreaterOrEqual(t, course.WeeklyMeetings, 1)
		assert.LessOrEqual(t, course.WeeklyMeetings, 3)
		if course.Duration == 3 {
			assert.LessOrEqual(t, course.WeeklyMeetings, 2)
		}
		assert.NotEmpty(t, course.GroupIds)
		assert.LessOrEqual(t, len(course.GroupIds), 3)
	}
}

func TestGenerateCourseNamesAreUnique(t *testing.T) {
	// Arrange
	generator := NewDataGenerator(11)

	// Act: more names than prefix-subject combinations forces suffixes
	names := generator.generateCourseNames(350)

	// Assert
	assert.Len(t, names, 350)
	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], "duplicate course name %v", name)
		seen[name] = true
	}
}
