package fuzzing

import (
	"fmt"
	"time"

	"github.com/crytic/clif/fuzzing/executor"
)

// FuzzerMetrics represents a struct tracking metrics for a Fuzzer run.
type FuzzerMetrics struct {
	// Invocations describes how many times the target was invoked.
	Invocations uint64

	// Successes, Failures and SpawnErrors count the invocations per outcome kind.
	Successes   uint64
	Failures    uint64
	SpawnErrors uint64

	// ArgumentSplitErrors counts candidates whose argument template could not be split.
	ArgumentSplitErrors uint64

	// TargetDuration describes the time spent running the target, summed over all invocations.
	TargetDuration time.Duration
}

// record updates the metrics with a classified outcome.
func (m *FuzzerMetrics) record(outcome executor.InvocationOutcome) {
	m.Invocations++
	m.TargetDuration += outcome.Duration
	switch outcome.Kind {
	case executor.OutcomeSuccess:
		m.Successes++
	case executor.OutcomeFailure:
		m.Failures++
	case executor.OutcomeSpawnError:
		m.SpawnErrors++
	}
}

// String summarizes the metrics.
func (m FuzzerMetrics) String() string {
	return fmt.Sprintf("%d invocation(s): %d ok, %d failed, %d could not be executed",
		m.Invocations, m.Successes, m.Failures, m.SpawnErrors)
}
