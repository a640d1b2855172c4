package cpls

import "fmt"

// Config carries the engine parameters: the time grid, the number of
// multi-start restarts and the local-search budget per restart. Seed
// drives the engine's single random generator; equal seeds over equal
// instances reproduce the run exactly.
type Config struct {
	Days          int
	PeriodsPerDay int
	CpIterations  int
	LsIterations  int
	Seed          int64
}

func DefaultConfig() Config {
	return Config{
		Days:          5,
		PeriodsPerDay: 8,
		CpIterations:  5,
		LsIterations:  10000,
		Seed:          1,
	}
}

func (c Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be > 0 (got %v)", c.Days)
	}
	if c.PeriodsPerDay <= 0 {
		return fmt.Errorf("periods per day must be > 0 (got %v)", c.PeriodsPerDay)
	}
	if c.CpIterations <= 0 {
		return fmt.Errorf("cp iterations must be > 0 (got %v)", c.CpIterations)
	}
	if c.LsIterations <= 0 {
		return fmt.Errorf("ls iterations must be > 0 (got %v)", c.LsIterations)
	}
	return nil
}
