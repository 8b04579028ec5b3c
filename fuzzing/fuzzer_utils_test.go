package fuzzing

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/crytic/clif/fuzzing/config"
	"github.com/crytic/clif/fuzzing/executor"
	"github.com/stretchr/testify/assert"
)

// recordingRunner is a ProcessRunner which never spawns a process. It records every invocation and answers with the
// result produced by respond.
type recordingRunner struct {
	mu      sync.Mutex
	calls   [][]string
	respond func(executable string, args []string) (*executor.ProcessResult, error)
}

// Run records a copy of the argument list, keeping an empty list distinct from a nil one, and returns the configured
// response. Without a response function, the joined arguments
// are echoed on stdout with a success status.
func (r *recordingRunner) Run(executable string, args []string) (*executor.ProcessResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, slices.Clone(args))
	r.mu.Unlock()

	if r.respond != nil {
		return r.respond(executable, args)
	}
	return &executor.ProcessResult{Stdout: []byte(strings.Join(args, " ")), Status: "exit status 0"}, nil
}

// invocations returns the argument lists the runner was called with, in order.
func (r *recordingRunner) invocations() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

// fuzzerTestingContext collects the events published by a Fuzzer under test.
type fuzzerTestingContext struct {
	fuzzer   *Fuzzer
	runner   *recordingRunner
	started  []ExecutionStartingEvent
	finished []ExecutionFinishedEvent
	stopping []FuzzerStoppingEvent
}

// newFuzzerTestContext creates a Fuzzer for the provided fuzzing configuration, replaces its process runner with a
// recordingRunner and subscribes to its events.
func newFuzzerTestContext(t *testing.T, fuzzingConfig config.FuzzingConfig) *fuzzerTestingContext {
	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Fuzzing = fuzzingConfig

	fuzzer, err := NewFuzzer(*projectConfig)
	assert.NoError(t, err)

	fctx := &fuzzerTestingContext{
		fuzzer: fuzzer,
		runner: &recordingRunner{},
	}
	fuzzer.Hooks.ProcessRunner = fctx.runner
	fuzzer.Events.ExecutionStarting.Subscribe(func(event ExecutionStartingEvent) error {
		fctx.started = append(fctx.started, event)
		return nil
	})
	fuzzer.Events.ExecutionFinished.Subscribe(func(event ExecutionFinishedEvent) error {
		fctx.finished = append(fctx.finished, event)
		return nil
	})
	fuzzer.Events.FuzzerStopping.Subscribe(func(event FuzzerStoppingEvent) error {
		fctx.stopping = append(fctx.stopping, event)
		return nil
	})
	return fctx
}

// candidates returns the candidates the Fuzzer executed, in order.
func (fctx *fuzzerTestingContext) candidates() []string {
	candidates := make([]string, 0, len(fctx.started))
	for _, event := range fctx.started {
		candidates = append(candidates, event.Candidate)
	}
	return candidates
}

// outcomeKinds returns the kinds of the outcomes the Fuzzer reported, in order.
func (fctx *fuzzerTestingContext) outcomeKinds() []executor.OutcomeKind {
	kinds := make([]executor.OutcomeKind, 0, len(fctx.finished))
	for _, event := range fctx.finished {
		kinds = append(kinds, event.Outcome.Kind)
	}
	return kinds
}
