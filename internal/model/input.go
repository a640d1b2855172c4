package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Instance is the immutable problem catalogue: entity tables indexed by
// the dense ids embedded in assignments.
type Instance struct {
	Lecturers []Lecturer     `mapstructure:"lecturers" json:"lecturers"`
	Groups    []StudentGroup `mapstructure:"groups" json:"groups"`
	Rooms     []Room         `mapstructure:"rooms" json:"rooms"`
	Courses   []Course       `mapstructure:"courses" json:"courses"`
}

// Validate checks that every id embedded in the tables indexes a valid
// row and that the numeric fields are in range, so the engine can use
// bare array indexing on its hot paths.
func (instance Instance) Validate() error {
	for _, room := range instance.Rooms {
		if room.Capacity <= 0 {
			return fmt.Errorf("room %v must have capacity > 0 (got %v)", room.Id, room.Capacity)
		}
	}
	for _, group := range instance.Groups {
		if group.Size <= 0 {
			return fmt.Errorf("group %v must have size > 0 (got %v)", group.Id, group.Size)
		}
	}
	for _, course := range instance.Courses {
		if course.LecturerId < 0 || course.LecturerId >= len(instance.Lecturers) {
			return fmt.Errorf("course %v references unknown lecturer %v", course.Id, course.LecturerId)
		}
		if len(course.GroupIds) == 0 {
			return fmt.Errorf("course %v must have at least one group", course.Id)
		}
		for _, groupId := range course.GroupIds {
			if groupId < 0 || groupId >= len(instance.Groups) {
				return fmt.Errorf("course %v references unknown group %v", course.Id, groupId)
			}
		}
		if course.Duration < 1 {
			return fmt.Errorf("course %v must have duration >= 1 (got %v)", course.Id, course.Duration)
		}
		if course.WeeklyMeetings < 1 {
			return fmt.Errorf("course %v must have weekly_meetings >= 1 (got %v)", course.Id, course.WeeklyMeetings)
		}
	}
	return nil
}

func InstanceFromJson(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, err
	}

	var instanceJson map[string]any
	if err := json.Unmarshal(bytes, &instanceJson); err != nil {
		return Instance{}, err
	}

	var instance Instance
	if err := mapstructure.Decode(instanceJson, &instance); err != nil {
		return Instance{}, err
	}

	return instance, nil
}

func (instance Instance) SaveJson(file string) error {
	bytes, err := json.MarshalIndent(instance, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0666)
}

// scheduleDocument is the persisted form of a solved schedule.
type scheduleDocument struct {
	Assignments    []Assignment `mapstructure:"assignments" json:"assignments"`
	Fitness        float64      `mapstructure:"fitness" json:"fitness"`
	HardViolations int          `mapstructure:"hard_violations" json:"hard_violations"`
	SoftViolations int          `mapstructure:"soft_violations" json:"soft_violations"`
}

func ScheduleFromJson(file string) (*Schedule, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var documentJson map[string]any
	if err := json.Unmarshal(bytes, &documentJson); err != nil {
		return nil, err
	}

	var document scheduleDocument
	if err := mapstructure.Decode(documentJson, &document); err != nil {
		return nil, err
	}

	schedule := NewSchedule()
	for _, a := range document.Assignments {
		schedule.AddAssignment(a)
	}
	schedule.Fitness = document.Fitness
	schedule.HardViolations = document.HardViolations
	schedule.SoftViolations = document.SoftViolations
	return schedule, nil
}

func (schedule *Schedule) SaveJson(file string) error {
	document := scheduleDocument{
		Assignments:    schedule.Assignments,
		Fitness:        schedule.Fitness,
		HardViolations: schedule.HardViolations,
		SoftViolations: schedule.SoftViolations,
	}
	bytes, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0666)
}
