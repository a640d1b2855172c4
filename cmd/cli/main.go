package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/cpls"
	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/csvio"
	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the instance JSON file; if empty a synthetic instance is generated")
	lecturersPtr := flag.Int("lecturers", 10, "Number of lecturers in the generated instance")
	groupsPtr := flag.Int("groups", 12, "Number of student groups in the generated instance")
	roomsPtr := flag.Int("rooms", 8, "Number of rooms in the generated instance")
	coursesPtr := flag.Int("courses", 20, "Number of courses in the generated instance")
	daysPtr := flag.Int("days", 5, "Number of days in the weekly grid")
	periodsPtr := flag.Int("periods", 8, "Number of periods per day")
	cpPtr := flag.Int("cp", 5, "Number of multi-start restarts")
	lsPtr := flag.Int("ls", 10000, "Number of local-search iterations per restart")
	seedPtr := flag.Int64("seed", 0, "Random seed; 0 draws a time-based seed")
	savePathPtr := flag.String("save", "", "Path to write the generated instance as JSON; if empty it is not persisted")
	outFilePathPtr := flag.String("out", "", "Path to write the solved schedule as JSON; if empty it is not persisted")
	csvFilePathPtr := flag.String("csv", "", "Path to write the solved schedule as CSV; if empty it is not exported")
	verbosePtr := flag.Bool("verbose", false, "Log per-restart engine progress")
	flag.Parse()

	if *verbosePtr {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	// Validate arguments
	if *daysPtr <= 0 || *periodsPtr <= 0 {
		log.Fatalf("days and periods must be positive: %v, %v", *daysPtr, *periodsPtr)
	} else if *cpPtr <= 0 || *lsPtr <= 0 {
		log.Fatalf("cp and ls iteration counts must be positive: %v, %v", *cpPtr, *lsPtr)
	}

	seed := *seedPtr
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Extract or generate the instance
	var instance model.Instance
	if *filePathPtr != "" {
		var err error
		instance, err = model.InstanceFromJson(*filePathPtr)
		if err != nil {
			log.Fatalf("cannot parse instance file: %v", err)
		}
	} else {
		generator := model.NewDataGenerator(seed)
		options := model.DefaultGeneratorOptions()
		options.Days = *daysPtr
		options.PeriodsPerDay = *periodsPtr
		instance = generator.GenerateInstance(*lecturersPtr, *groupsPtr, *roomsPtr, *coursesPtr, options)
	}

	if *savePathPtr != "" {
		if err := instance.SaveJson(*savePathPtr); err != nil {
			log.Fatalf("cannot save instance file: %v", err)
		}
	}

	// Initialize the engine
	scheduler, err := cpls.New(&instance, cpls.Config{
		Days:          *daysPtr,
		PeriodsPerDay: *periodsPtr,
		CpIterations:  *cpPtr,
		LsIterations:  *lsPtr,
		Seed:          seed,
	})
	if err != nil {
		log.Fatalf("cannot initialize scheduler: %v", err)
	}

	fmt.Printf("Courses: %v, Rooms: %v, Lecturers: %v, Groups: %v\n",
		len(instance.Courses), len(instance.Rooms), len(instance.Lecturers), len(instance.Groups))

	result := scheduler.Solve()

	fmt.Printf("Hard violations: %v\n", result.HardViolations)
	fmt.Printf("Soft violations: %v\n", result.SoftViolations)
	fmt.Printf("Total fitness: %v\n", result.Fitness)
	fmt.Printf("Time taken: %v ms\n", result.Duration.Milliseconds())

	if *outFilePathPtr != "" {
		if err := result.Schedule.SaveJson(*outFilePathPtr); err != nil {
			log.Fatalf("cannot write schedule file: %v", err)
		}
	}

	if *csvFilePathPtr != "" {
		if err := csvio.ExportSchedule(result.Schedule, &instance, *csvFilePathPtr); err != nil {
			log.Fatalf("cannot export schedule csv: %v", err)
		}
	}
}
