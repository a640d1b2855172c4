package cpls

import (
	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// Neighborhood operators. Each mutates the given schedule in place and
// reports whether the move produced a feasible neighbor; on false the
// schedule has been restored and the caller discards the attempt.

func (scheduler *Scheduler) swapRooms(schedule *model.Schedule) bool {
	if len(schedule.Assignments) < 2 {
		return false
	}

	idx1 := scheduler.rng.Intn(len(schedule.Assignments))
	idx2 := scheduler.rng.Intn(len(schedule.Assignments))
	if idx1 == idx2 {
		return false
	}

	assignments := schedule.Assignments
	assignments[idx1].RoomId, assignments[idx2].RoomId = assignments[idx2].RoomId, assignments[idx1].RoomId

	if !scheduler.checker.IsValidAssignment(assignments[idx1], schedule) ||
		!scheduler.checker.IsValidAssignment(assignments[idx2], schedule) {
		assignments[idx1].RoomId, assignments[idx2].RoomId = assignments[idx2].RoomId, assignments[idx1].RoomId
		return false
	}

	return true
}

func (scheduler *Scheduler) swapTimes(schedule *model.Schedule) bool {
	if len(schedule.Assignments) < 2 {
		return false
	}

	idx1 := scheduler.rng.Intn(len(schedule.Assignments))
	idx2 := scheduler.rng.Intn(len(schedule.Assignments))
	if idx1 == idx2 {
		return false
	}

	assignments := schedule.Assignments
	assignments[idx1].TimeSlot, assignments[idx2].TimeSlot = assignments[idx2].TimeSlot, assignments[idx1].TimeSlot

	if !scheduler.checker.IsValidAssignment(assignments[idx1], schedule) ||
		!scheduler.checker.IsValidAssignment(assignments[idx2], schedule) {
		assignments[idx1].TimeSlot, assignments[idx2].TimeSlot = assignments[idx2].TimeSlot, assignments[idx1].TimeSlot
		return false
	}

	return true
}

func (scheduler *Scheduler) moveAssignment(schedule *model.Schedule) bool {
	if len(schedule.Assignments) == 0 {
		return false
	}

	idx := scheduler.rng.Intn(len(schedule.Assignments))
	old := schedule.Assignments[idx]
	duration := scheduler.courses[old.CourseId].Duration

	schedule.Assignments[idx].RoomId = scheduler.rng.Intn(len(scheduler.rooms))
	schedule.Assignments[idx].TimeSlot = model.TimeSlot{
		Day:    scheduler.rng.Intn(scheduler.days),
		Period: scheduler.rng.Intn(scheduler.periodsPerDay - duration + 1),
	}

	if !scheduler.checker.IsValidAssignment(schedule.Assignments[idx], schedule) {
		schedule.Assignments[idx] = old
		return false
	}

	return true
}

// chainSwap rotates the time slots of 3-4 distinct assignments by one
// position; any invalid position reverts the whole chain.
func (scheduler *Scheduler) chainSwap(schedule *model.Schedule) bool {
	if len(schedule.Assignments) < 3 {
		return false
	}

	maxChain := min(4, len(schedule.Assignments))
	chainSize := 3 + scheduler.rng.Intn(maxChain-3+1)

	chain := make([]int, 0, chainSize)
	used := make(map[int]bool, chainSize)
	for len(chain) < chainSize {
		idx := scheduler.rng.Intn(len(schedule.Assignments))
		if !used[idx] {
			chain = append(chain, idx)
			used[idx] = true
		}
	}

	originalSlots := make([]model.TimeSlot, len(chain))
	for i, idx := range chain {
		originalSlots[i] = schedule.Assignments[idx].TimeSlot
	}

	for i, idx := range chain {
		schedule.Assignments[idx].TimeSlot = originalSlots[(i+1)%len(chain)]
	}

	for _, idx := range chain {
		if !scheduler.checker.IsValidAssignment(schedule.Assignments[idx], schedule) {
			for i, revertIdx := range chain {
				schedule.Assignments[revertIdx].TimeSlot = originalSlots[i]
			}
			return false
		}
	}

	return true
}
