package model

import (
	"fmt"
	"math/rand"
	"strings"
)

// Name tables for synthetic instances.
var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
		"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White",
	}

	// More Dr. than Prof.
	titles = []string{"Dr.", "Prof.", "Dr.", "Prof.", "Dr."}

	coursePrefixes = []string{
		"Introduction to", "Advanced", "Fundamentals of", "Applied", "Theoretical",
		"Practical", "Modern", "Contemporary", "Principles of", "Topics in",
	}

	courseSubjects = []string{
		"Algorithms", "Data Structures", "Database Systems", "Computer Networks",
		"Operating Systems", "Software Engineering", "Artificial Intelligence",
		"Machine Learning", "Computer Graphics", "Web Development", "Mobile Computing",
		"Cloud Computing", "Cybersecurity", "Distributed Systems", "Compiler Design",
		"Computer Architecture", "Human-Computer Interaction", "Data Mining",
		"Natural Language Processing", "Computer Vision", "Robotics", "Game Development",
		"Quantum Computing", "Blockchain", "Internet of Things", "Parallel Computing",
		"Discrete Mathematics", "Linear Algebra", "Calculus", "Statistics",
	}

	roomTypes = []string{"Room", "Lab", "Lecture Hall", "Seminar Room", "Tutorial Room"}
)

// GeneratorOptions tunes the synthetic instance shape.
type GeneratorOptions struct {
	Days                       int
	PeriodsPerDay              int
	UndesirableSlotProbability float64
	CourseFeatureProbability   float64
	RoomFeatureProbability     float64
}

func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Days:                       5,
		PeriodsPerDay:              8,
		UndesirableSlotProbability: 0.15,
		CourseFeatureProbability:   0.3,
		RoomFeatureProbability:     0.4,
	}
}

// DataGenerator produces random but realistic problem instances.
// All randomness flows through the injected generator, so a fixed seed
// yields the same instance.
type DataGenerator struct {
	rng *rand.Rand
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (generator *DataGenerator) GenerateInstance(numLecturers, numGroups, numRooms, numCourses int, options GeneratorOptions) Instance {
	return Instance{
		Lecturers: generator.generateLecturers(numLecturers, options),
		Groups:    generator.generateStudentGroups(numGroups, options),
		Rooms:     generator.generateRooms(numRooms, numGroups, options),
		Courses:   generator.generateCourses(numCourses, numLecturers, numGroups, options),
	}
}

func (generator *DataGenerator) generateLecturers(count int, options GeneratorOptions) []Lecturer {
	lecturers := make([]Lecturer, 0, count)
	usedNames := make(map[string]bool)

	for i := 0; i < count; i++ {
		var fullName string
		for {
			first := firstNames[generator.rng.Intn(len(firstNames))]
			last := lastNames[generator.rng.Intn(len(lastNames))]
			title := titles[generator.rng.Intn(len(titles))]
			fullName = title + " " + first + " " + last
			if !usedNames[fullName] {
				break
			}
		}
		usedNames[fullName] = true

		lecturer := Lecturer{Id: i, Name: fullName, UndesirablePenalty: 20.0}

		if generator.rng.Float64() < options.UndesirableSlotProbability {
			numSlots := 2 + generator.rng.Intn(5)
			for j := 0; j < numSlots; j++ {
				lecturer.AddUndesirableSlot(TimeSlot{
					Day:    generator.rng.Intn(options.Days),
					Period: generator.rng.Intn(options.PeriodsPerDay),
				})
			}

			// Seniority raises the penalty
			if strings.Contains(lecturer.Name, "Prof.") {
				lecturer.UndesirablePenalty = 25.0
			}
		}

		lecturers = append(lecturers, lecturer)
	}

	return lecturers
}

func (generator *DataGenerator) generateStudentGroups(count int, options GeneratorOptions) []StudentGroup {
	groups := make([]StudentGroup, 0, count)

	currentYear := 1
	groupsPerYear := (count + 3) / 4

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("CS-%d%d", currentYear, i)
		size := 15 + generator.rng.Intn(21)

		group := StudentGroup{Id: i, Name: name, Size: size, UndesirablePenalty: 15.0}

		if generator.rng.Float64() < options.UndesirableSlotProbability {
			if currentYear == 1 {
				// First years avoid late Friday classes
				for p := options.PeriodsPerDay - 2; p < options.PeriodsPerDay; p++ {
					group.AddUndesirableSlot(TimeSlot{Day: options.Days - 1, Period: p})
				}
			} else if currentYear >= 3 {
				// Senior years avoid early Monday classes
				group.AddUndesirableSlot(TimeSlot{Day: 0, Period: 0})
				group.AddUndesirableSlot(TimeSlot{Day: 0, Period: 1})
			}

			numRandom := 1 + generator.rng.Intn(3)
			for j := 0; j < numRandom; j++ {
				group.AddUndesirableSlot(TimeSlot{
					Day:    generator.rng.Intn(options.Days),
					Period: generator.rng.Intn(options.PeriodsPerDay),
				})
			}
		}

		groups = append(groups, group)

		if (i+1)%groupsPerYear == 0 && currentYear < 4 {
			currentYear++
		}
	}

	return groups
}

func (generator *DataGenerator) generateRooms(count, numGroups int, options GeneratorOptions) []Room {
	rooms := make([]Room, 0, count)

	// Keep enough total capacity for an average group size of 25
	minTotalCapacity := numGroups * 25
	currentCapacity := 0

	for i := 0; i < count; i++ {
		roomType := roomTypes[generator.rng.Intn(len(roomTypes))]
		name := roomType + " " + string(rune('A'+i%26))
		if i >= 26 {
			name += fmt.Sprint(i/26 + 1)
		}

		var capacity int
		switch roomType {
		case "Lecture Hall":
			capacity = 60 + generator.rng.Intn(61)
		case "Lab":
			capacity = 20 + generator.rng.Intn(11)
		case "Seminar Room":
			capacity = 15 + generator.rng.Intn(11)
		default:
			capacity = 20 + generator.rng.Intn(81)
		}

		if i == count-1 && currentCapacity < minTotalCapacity {
			capacity = max(capacity, minTotalCapacity-currentCapacity)
		}
		currentCapacity += capacity

		room := Room{Id: i, Name: name, Capacity: capacity}

		if generator.rng.Float64() < options.RoomFeatureProbability {
			// Feature 1: projector (common)
			if generator.rng.Float64() < 0.7 {
				room.Features = append(room.Features, 1)
			}
			// Feature 2: lab equipment
			if roomType == "Lab" || generator.rng.Float64() < 0.3 {
				room.Features = append(room.Features, 2)
			}
			// Feature 3: special equipment (rare)
			if generator.rng.Float64() < 0.1 {
				room.Features = append(room.Features, 3)
			}
		}

		rooms = append(rooms, room)
	}

	return rooms
}

func (generator *DataGenerator) generateCourses(count, numLecturers, numGroups int, options GeneratorOptions) []Course {
	courses := make([]Course, 0, count)

	names := generator.generateCourseNames(count)
	lecturerLoad := make([]int, numLecturers)

	for i := 0; i < count; i++ {
		lecturerId := generator.rng.Intn(numLecturers)
		// Rebalance toward the least-loaded lecturer every 10 courses
		if i%10 == 0 {
			minLecturer := 0
			for l := 1; l < numLecturers; l++ {
				if lecturerLoad[l] < lecturerLoad[minLecturer] {
					minLecturer = l
				}
			}
			if lecturerLoad[lecturerId] > lecturerLoad[minLecturer]+5 {
				lecturerId = minLecturer
			}
		}

		duration := 1 + generator.rng.Intn(3)
		meetings := 1 + generator.rng.Intn(3)
		if duration == 3 {
			meetings = min(meetings, 2)
		}

		course := Course{
			Id:             i,
			Name:           names[i],
			LecturerId:     lecturerId,
			Duration:       duration,
			WeeklyMeetings: meetings,
		}
		lecturerLoad[lecturerId] += duration * meetings

		if generator.rng.Float64() < options.CourseFeatureProbability {
			if strings.Contains(names[i], "Graphics") ||
				strings.Contains(names[i], "Vision") ||
				strings.Contains(names[i], "Intelligence") ||
				generator.rng.Float64() < 0.5 {
				course.RequiredFeatures = append(course.RequiredFeatures, 1)
			}
			if strings.Contains(names[i], "Programming") ||
				strings.Contains(names[i], "Networks") ||
				strings.Contains(names[i], "Operating") ||
				generator.rng.Float64() < 0.2 {
				course.RequiredFeatures = append(course.RequiredFeatures, 2)
			}
		}

		numGroupsForCourse := 1 + generator.rng.Intn(min(3, numGroups))
		selected := make(map[int]bool)
		for len(selected) < numGroupsForCourse {
			groupId := generator.rng.Intn(numGroups)
			if !selected[groupId] {
				selected[groupId] = true
				course.AddGroup(groupId)
			}
		}

		courses = append(courses, course)
	}

	return courses
}

func (generator *DataGenerator) generateCourseNames(needed int) []string {
	combinations := make([][2]int, 0, len(coursePrefixes)*len(courseSubjects))
	for p := range coursePrefixes {
		for s := range courseSubjects {
			combinations = append(combinations, [2]int{p, s})
		}
	}
	generator.rng.Shuffle(len(combinations), func(i, j int) {
		combinations[i], combinations[j] = combinations[j], combinations[i]
	})

	names := make([]string, 0, needed)
	for i := 0; i < needed && i < len(combinations); i++ {
		names = append(names, coursePrefixes[combinations[i][0]]+" "+courseSubjects[combinations[i][1]])
	}

	// Numbered variants once the combinations run out
	suffix := 2
	baseSize := len(names)
	for len(names) < needed {
		for i := 0; i < baseSize && len(names) < needed; i++ {
			names = append(names, fmt.Sprintf("%v %d", names[i], suffix))
		}
		suffix++
	}

	return names
}
