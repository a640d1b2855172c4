package model

import (
	"slices"

	"github.com/samber/lo"
)

// TimeSlot is a (day, period) pair ordered lexicographically.
type TimeSlot struct {
	Day    int `mapstructure:"day" json:"day"`
	Period int `mapstructure:"period" json:"period"`
}

func (ts TimeSlot) Compare(other TimeSlot) int {
	if ts.Day != other.Day {
		return ts.Day - other.Day
	}
	return ts.Period - other.Period
}

func (ts TimeSlot) Before(other TimeSlot) bool {
	return ts.Compare(other) < 0
}

type Lecturer struct {
	Id                 int        `mapstructure:"id" json:"id"`
	Name               string     `mapstructure:"name" json:"name"`
	UndesirableSlots   []TimeSlot `mapstructure:"undesirable_slots" json:"undesirable_slots"`
	UndesirablePenalty float64    `mapstructure:"undesirable_penalty" json:"undesirable_penalty"`
}

func (lecturer *Lecturer) AddUndesirableSlot(ts TimeSlot) {
	if !slices.Contains(lecturer.UndesirableSlots, ts) {
		lecturer.UndesirableSlots = append(lecturer.UndesirableSlots, ts)
	}
}

func (lecturer Lecturer) IsUndesirableSlot(ts TimeSlot) bool {
	return slices.Contains(lecturer.UndesirableSlots, ts)
}

type StudentGroup struct {
	Id                 int        `mapstructure:"id" json:"id"`
	Name               string     `mapstructure:"name" json:"name"`
	Size               int        `mapstructure:"size" json:"size"`
	UndesirableSlots   []TimeSlot `mapstructure:"undesirable_slots" json:"undesirable_slots"`
	UndesirablePenalty float64    `mapstructure:"undesirable_penalty" json:"undesirable_penalty"`
}

func (group *StudentGroup) AddUndesirableSlot(ts TimeSlot) {
	if !slices.Contains(group.UndesirableSlots, ts) {
		group.UndesirableSlots = append(group.UndesirableSlots, ts)
	}
}

func (group StudentGroup) IsUndesirableSlot(ts TimeSlot) bool {
	return slices.Contains(group.UndesirableSlots, ts)
}

type Room struct {
	Id       int    `mapstructure:"id" json:"id"`
	Name     string `mapstructure:"name" json:"name"`
	Capacity int    `mapstructure:"capacity" json:"capacity"`
	Features []int  `mapstructure:"features" json:"features"`
}

// HasFeatures reports whether the room provides every required feature tag.
func (room Room) HasFeatures(required []int) bool {
	return !lo.SomeBy(required, func(feature int) bool {
		return !slices.Contains(room.Features, feature)
	})
}

type Course struct {
	Id               int    `mapstructure:"id" json:"id"`
	Name             string `mapstructure:"name" json:"name"`
	LecturerId       int    `mapstructure:"lecturer_id" json:"lecturer_id"`
	GroupIds         []int  `mapstructure:"group_ids" json:"group_ids"`
	Duration         int    `mapstructure:"duration" json:"duration"`
	RequiredFeatures []int  `mapstructure:"required_features" json:"required_features"`
	WeeklyMeetings   int    `mapstructure:"weekly_meetings" json:"weekly_meetings"`
}

func (course *Course) AddGroup(groupId int) {
	course.GroupIds = append(course.GroupIds, groupId)
}

// TotalStudents sums the sizes of the course's participating groups.
func (course Course) TotalStudents(groups []StudentGroup) int {
	return lo.SumBy(course.GroupIds, func(groupId int) int {
		if groupId < 0 || groupId >= len(groups) {
			return 0
		}
		return groups[groupId].Size
	})
}

// Assignment is one meeting of a course scheduled into a room and a
// starting time slot. Duration lives on the course, not here.
type Assignment struct {
	CourseId int      `mapstructure:"course_id" json:"course_id"`
	RoomId   int      `mapstructure:"room_id" json:"room_id"`
	TimeSlot TimeSlot `mapstructure:"time_slot" json:"time_slot"`
}
