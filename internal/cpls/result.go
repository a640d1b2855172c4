package cpls

import (
	"time"

	"github.com/OlehZanevych/utp-cp-ls-hybrid/internal/model"
)

// Result is the run summary handed back by Solve.
type Result struct {
	Schedule       *model.Schedule
	Fitness        float64
	HardViolations int
	SoftViolations int
	Duration       time.Duration
}
