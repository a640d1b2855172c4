package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/cpls"
	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// Benchmark sizes follow the reference large-campus scenario.
const (
	numLecturers = 150
	numGroups    = 200
	numRooms     = 120
	numCourses   = 300
)

func main() {
	seedPtr := flag.Int64("seed", 42, "Random seed for the synthetic instance and the engine")
	cpPtr := flag.Int("cp", 3, "Number of multi-start restarts")
	lsPtr := flag.Int("ls", 5000, "Number of local-search iterations per restart")
	flag.Parse()

	logrus.SetLevel(logrus.InfoLevel)

	generator := model.NewDataGenerator(*seedPtr)
	instance := generator.GenerateInstance(numLecturers, numGroups, numRooms, numCourses, model.DefaultGeneratorOptions())

	scheduler, err := cpls.New(&instance, cpls.Config{
		Days:          5,
		PeriodsPerDay: 8,
		CpIterations:  *cpPtr,
		LsIterations:  *lsPtr,
		Seed:          *seedPtr,
	})
	if err != nil {
		log.Fatalf("cannot initialize scheduler: %v", err)
	}

	fmt.Printf("Courses: %v, Rooms: %v, Lecturers: %v, Groups: %v\n",
		len(instance.Courses), len(instance.Rooms), len(instance.Lecturers), len(instance.Groups))

	result := scheduler.Solve()

	fmt.Println("=== Final Solution ===")
	fmt.Printf("Hard violations: %v\n", result.HardViolations)
	fmt.Printf("Soft violations: %v\n", result.SoftViolations)
	fmt.Printf("Total fitness: %v\n", result.Fitness)
	fmt.Printf("Time taken: %v ms\n", result.Duration.Milliseconds())
}
