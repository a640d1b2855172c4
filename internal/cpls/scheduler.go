package cpls

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

const (
	eliteSize        = 10
	maxNoImprovement = 100
)

// Scheduler is the hybrid engine: a greedy constructive phase seeds a
// simulated-annealing local search with adaptive neighborhood selection,
// intensified through an elite pool and path relinking, restarted
// multiple times from permuted construction orders.
//
// A Scheduler owns every piece of mutable state of a run (the random
// generator, the constraint cache, the selector statistics and the elite
// pool) and must not be shared across goroutines.
type Scheduler struct {
	courses   []model.Course
	rooms     []model.Room
	lecturers []model.Lecturer
	groups    []model.StudentGroup

	days          int
	periodsPerDay int
	cfg           Config

	rng      *rand.Rand
	checker  *ConstraintChecker
	selector *AdaptiveNeighborhoodSelector

	// Construction order, permuted between restarts; course ids stay
	// table indices throughout
	order []int

	elite []*model.Schedule
}

func New(instance *model.Instance, cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := instance.Validate(); err != nil {
		return nil, err
	}
	for _, course := range instance.Courses {
		if course.Duration > cfg.PeriodsPerDay {
			return nil, fmt.Errorf("course %v duration %v does not fit into %v periods per day", course.Id, course.Duration, cfg.PeriodsPerDay)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	order := make([]int, len(instance.Courses))
	for i := range order {
		order[i] = i
	}

	return &Scheduler{
		courses:       instance.Courses,
		rooms:         instance.Rooms,
		lecturers:     instance.Lecturers,
		groups:        instance.Groups,
		days:          cfg.Days,
		periodsPerDay: cfg.PeriodsPerDay,
		cfg:           cfg,
		rng:           rng,
		checker:       NewConstraintChecker(instance, cfg.Days, cfg.PeriodsPerDay),
		selector:      NewAdaptiveNeighborhoodSelector(rng),
		order:         order,
		elite:         make([]*model.Schedule, 0, eliteSize),
	}, nil
}

// Solve runs the multi-start loop: construct, local-search, keep the
// best, permute the construction order, repeat. The global best starts
// from a +Inf fitness sentinel; a restart that places no assignment still
// yields an empty schedule of fitness 0, which replaces it.
func (scheduler *Scheduler) Solve() Result {
	start := time.Now()

	best := model.NewSchedule()
	best.Fitness = math.Inf(1)

	for i := 0; i < scheduler.cfg.CpIterations; i++ {
		logrus.Infof("restart %v/%v", i+1, scheduler.cfg.CpIterations)

		current := scheduler.GenerateInitialSolution()
		logrus.Infof("initial solution: hard=%v soft=%v fitness=%v", current.HardViolations, current.SoftViolations, current.Fitness)

		current = scheduler.LocalSearch(current, scheduler.cfg.LsIterations)
		logrus.Infof("after local search: hard=%v soft=%v fitness=%v", current.HardViolations, current.SoftViolations, current.Fitness)

		if current.Fitness < best.Fitness {
			best = current
		}

		// Explore a different construction tie-breaking order next time
		scheduler.rng.Shuffle(len(scheduler.order), func(a, b int) {
			scheduler.order[a], scheduler.order[b] = scheduler.order[b], scheduler.order[a]
		})
	}

	return Result{
		Schedule:       best,
		Fitness:        best.Fitness,
		HardViolations: best.HardViolations,
		SoftViolations: best.SoftViolations,
		Duration:       time.Since(start),
	}
}

// LocalSearch improves the schedule for maxIterations and returns the
// best schedule observed. Acceptance is simulated annealing on a linear
// temperature ramp; stagnation triggers a perturbation, and every 1000th
// iteration attempts path relinking against a random elite.
func (scheduler *Scheduler) LocalSearch(schedule *model.Schedule, maxIterations int) *model.Schedule {
	best := schedule.Clone()
	noImprovementCount := 0

	for iter := 0; iter < maxIterations; iter++ {
		// The memo key ignores the surrounding schedule, so entries from
		// the previous iteration's candidate are stale now
		scheduler.checker.ClearCache()

		neighborhood := scheduler.selector.SelectNeighborhood()
		neighbor := schedule.Clone()

		valid := false
		switch neighborhood {
		case NeighborhoodSwapRooms:
			valid = scheduler.swapRooms(neighbor)
		case NeighborhoodSwapTimes:
			valid = scheduler.swapTimes(neighbor)
		case NeighborhoodMoveAssignment:
			valid = scheduler.moveAssignment(neighbor)
		case NeighborhoodChainSwap:
			valid = scheduler.chainSwap(neighbor)
		}

		if valid {
			scheduler.evaluateFitness(neighbor)
			improvement := schedule.Fitness - neighbor.Fitness
			improved := improvement > 0

			temperature := 100.0 * (1.0 - float64(iter)/float64(maxIterations))
			if improved || scheduler.acceptWorse(improvement, temperature) {
				schedule = neighbor
				if improved {
					noImprovementCount = 0
					if schedule.Fitness < best.Fitness {
						best = schedule.Clone()
						scheduler.updateEliteSolutions(schedule)
					}
				}
			} else {
				noImprovementCount++
			}

			scheduler.selector.UpdateStats(neighborhood, improved, math.Abs(improvement))
		}

		// Diversification
		if noImprovementCount >= maxNoImprovement {
			scheduler.perturbSolution(schedule)
			noImprovementCount = 0
		}

		// Intensification
		if iter%1000 == 0 && len(scheduler.elite) > 0 {
			relinked := scheduler.pathRelinking(schedule)
			if relinked.Fitness < schedule.Fitness {
				schedule = relinked
			}
		}
	}

	return best
}

// evaluateFitness recomputes the aggregates: hard violations weighted at
// 1000 dominate the soft penalty, and the soft total is truncated for
// reporting.
func (scheduler *Scheduler) evaluateFitness(schedule *model.Schedule) {
	schedule.HardViolations = 0
	for _, a := range schedule.Assignments {
		if !scheduler.checker.IsValidAssignment(a, schedule) {
			schedule.HardViolations++
		}
	}

	softPenalty := scheduler.checker.EvaluateSoftConstraints(schedule)
	schedule.SoftViolations = int(softPenalty)
	schedule.Fitness = float64(schedule.HardViolations)*1000 + softPenalty
}

func (scheduler *Scheduler) acceptWorse(delta, temperature float64) bool {
	if temperature <= 0 {
		return false
	}
	probability := math.Exp(-math.Abs(delta) / temperature)
	return scheduler.rng.Float64() < probability
}

// perturbSolution randomly reassigns about 10% of the assignments.
// Failed moves count against the budget; there is no retry.
func (scheduler *Scheduler) perturbSolution(schedule *model.Schedule) {
	perturbationSize := max(1, len(schedule.Assignments)/10)
	for i := 0; i < perturbationSize; i++ {
		// Each accepted move changes the state the next one is checked
		// against
		scheduler.checker.ClearCache()
		scheduler.moveAssignment(schedule)
	}

	scheduler.evaluateFitness(schedule)
}

// updateEliteSolutions appends while there is room, then replaces the
// worst elite when the candidate beats it.
func (scheduler *Scheduler) updateEliteSolutions(schedule *model.Schedule) {
	if len(scheduler.elite) < eliteSize {
		scheduler.elite = append(scheduler.elite, schedule.Clone())
		return
	}

	worst := 0
	for i, elite := range scheduler.elite {
		if elite.Fitness > scheduler.elite[worst].Fitness {
			worst = i
		}
	}
	if schedule.Fitness < scheduler.elite[worst].Fitness {
		scheduler.elite[worst] = schedule.Clone()
	}
}

// pathRelinking walks the current schedule toward a random elite,
// overwriting room and time position by position where the same course
// sits on both sides, and returns the best feasible schedule seen along
// the path.
func (scheduler *Scheduler) pathRelinking(source *model.Schedule) *model.Schedule {
	if len(scheduler.elite) == 0 {
		return source
	}

	target := scheduler.elite[scheduler.rng.Intn(len(scheduler.elite))]

	current := source.Clone()
	best := source.Clone()

	limit := min(len(source.Assignments), len(target.Assignments))
	for i := 0; i < limit; i++ {
		// Positions holding different courses (possible for elites from
		// earlier restarts) are left alone to keep the course index
		// consistent
		if source.Assignments[i].CourseId != target.Assignments[i].CourseId {
			continue
		}
		if source.Assignments[i].RoomId == target.Assignments[i].RoomId &&
			source.Assignments[i].TimeSlot == target.Assignments[i].TimeSlot {
			continue
		}

		old := current.Assignments[i]
		current.Assignments[i].RoomId = target.Assignments[i].RoomId
		current.Assignments[i].TimeSlot = target.Assignments[i].TimeSlot

		scheduler.checker.ClearCache()
		if scheduler.checker.IsValidAssignment(current.Assignments[i], current) {
			scheduler.evaluateFitness(current)
			if current.Fitness < best.Fitness {
				best = current.Clone()
			}
		} else {
			current.Assignments[i] = old
		}
	}

	return best
}
