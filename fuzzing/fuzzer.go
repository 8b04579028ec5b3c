package fuzzing

import (
	"os"

	"github.com/crytic/clif/fuzzing/config"
	"github.com/crytic/clif/fuzzing/executor"
	"github.com/crytic/clif/fuzzing/valuegeneration"
	"github.com/crytic/clif/logging"
	"github.com/crytic/clif/logging/colors"
	"github.com/crytic/clif/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrFuzzerAborted matches, through errors.Is, every error which stopped a fuzzing run after it started consuming
// candidates.
var ErrFuzzerAborted = errors.New("fuzzing run aborted")

// abortedError wraps the cause of an aborted run so that it matches both ErrFuzzerAborted and the cause itself.
type abortedError struct {
	cause error
}

func (e *abortedError) Error() string {
	return ErrFuzzerAborted.Error() + ": " + e.cause.Error()
}

func (e *abortedError) Unwrap() error {
	return e.cause
}

func (e *abortedError) Is(target error) bool {
	return target == ErrFuzzerAborted
}

// Fuzzer invokes a target executable once per candidate of a value source, sequentially, and publishes the outcome of
// every invocation.
type Fuzzer struct {
	// config describes the validated project configuration.
	config config.ProjectConfig

	// runID uniquely identifies this run in structured logs.
	runID uuid.UUID

	// metrics tracks the outcome counts of the run.
	metrics FuzzerMetrics

	// logger describes the Fuzzer's sub-logger
	logger *logging.Logger

	// logFile describes the structured log file of the run, if a log directory is configured. It is closed once Start
	// returns.
	logFile *os.File

	// Events describes the event system for the Fuzzer.
	Events FuzzerEvents

	// Hooks describes the replaceable functions used by the Fuzzer.
	Hooks FuzzerHooks
}

// NewFuzzer returns an instance of a new Fuzzer provided a project configuration, or an error if the configuration is
// invalid.
func NewFuzzer(config config.ProjectConfig) (*Fuzzer, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	var logFile *os.File

	// Create our logger, with a structured log file for this run if a log directory is provided
	logging.GlobalLogger = logging.NewLogger(config.Logging.Level)
	if config.Logging.LogDirectory != "" {
		file, err := utils.CreateFile(config.Logging.LogDirectory, "clif-"+runID.String()+".log")
		if err != nil {
			return nil, err
		}
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED, false)
		logFile = file
	}

	// Add stdout as an unstructured, colorized output stream
	logging.GlobalLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, !config.Logging.NoColor)

	fuzzer := &Fuzzer{
		config:  config,
		runID:   runID,
		logger:  logging.GlobalLogger.NewSubLogger("module", logging.FUZZING_SERVICE),
		logFile: logFile,
		Hooks: FuzzerHooks{
			NewValueSourceFunc: defaultNewValueSourceFunc,
			ProcessRunner:      executor.NewExecRunner(),
		},
	}
	return fuzzer, nil
}

// RunID returns the identifier of this Fuzzer's run.
func (f *Fuzzer) RunID() uuid.UUID {
	return f.runID
}

// Metrics returns the metrics of the run so far.
func (f *Fuzzer) Metrics() FuzzerMetrics {
	return f.metrics
}

// Start creates the value source and invokes the target once per candidate, in order. It does not return until every
// candidate was processed or a fatal error occurred. Failing invocations are not fatal: they are reported and the next
// candidate is processed. Fatal errors are a value source that cannot be created or read, an argument template that
// cannot be split while StrictArguments is set, and an event handler failing.
// The structured log file of the run, if any, is closed before Start returns.
func (f *Fuzzer) Start() (err error) {
	defer func() {
		closeErr := f.closeLogFile()
		if err == nil {
			err = closeErr
		}
	}()

	fuzzingConfig := f.config.Fuzzing

	source, err := f.Hooks.NewValueSourceFunc(fuzzingConfig)
	if err != nil {
		return err
	}

	f.metrics = FuzzerMetrics{}
	f.logger.Debug("Fuzzing ", colors.Bold, fuzzingConfig.Executable, colors.Reset, " with ", source.String(),
		logging.StructuredLogInfo{"runID": f.runID.String()})

	err = f.Events.FuzzerStarting.Publish(FuzzerStartingEvent{Fuzzer: f})
	if err != nil {
		return err
	}

	err = f.run(source)

	fuzzerStoppingErr := f.Events.FuzzerStopping.Publish(FuzzerStoppingEvent{Fuzzer: f, Err: err})
	if err == nil {
		err = fuzzerStoppingErr
	}

	f.logger.Info("Fuzzer stopped: ", f.metrics.String(), logging.StructuredLogInfo{
		"runID":               f.runID.String(),
		"invocations":         f.metrics.Invocations,
		"successes":           f.metrics.Successes,
		"failures":            f.metrics.Failures,
		"spawnErrors":         f.metrics.SpawnErrors,
		"argumentSplitErrors": f.metrics.ArgumentSplitErrors,
		"targetDuration":      f.metrics.TargetDuration.String(),
	})
	return err
}

// closeLogFile detaches the structured log file of the run from the loggers and closes it.
func (f *Fuzzer) closeLogFile() error {
	if f.logFile == nil {
		return nil
	}
	logFile := f.logFile
	f.logFile = nil

	f.logger.RemoveWriter(logFile, logging.STRUCTURED, false)
	logging.GlobalLogger.RemoveWriter(logFile, logging.STRUCTURED, false)
	return errors.WithStack(logFile.Close())
}

// run is the main loop: one invocation per candidate, no backtracking.
func (f *Fuzzer) run(source valuegeneration.ValueSource) error {
	fuzzingConfig := f.config.Fuzzing

	for candidate, err := range source.Values() {
		if err != nil {
			return &abortedError{cause: errors.Wrapf(err, "failed to read the next candidate from %v", source)}
		}

		args, err := BuildArgumentList(fuzzingConfig.Arguments, candidate)
		if err != nil {
			var splitErr *ArgumentSplitError
			if !errors.As(err, &splitErr) {
				return err
			}
			f.metrics.ArgumentSplitErrors++
			if fuzzingConfig.StrictArguments {
				return &abortedError{cause: splitErr}
			}
			f.logger.Warn("Invoking ", fuzzingConfig.Executable, " without arguments for candidate ", candidate, ": ", splitErr.Error())
		}

		err = f.execute(fuzzingConfig.Executable, candidate, args)
		if err != nil {
			return err
		}
	}
	return nil
}

// execute runs the target once, classifies the outcome and publishes the execution events.
func (f *Fuzzer) execute(executable string, candidate string, args []string) error {
	started := ExecutionStartingEvent{
		Executable: executable,
		Candidate:  candidate,
		Args:       args,
	}
	err := f.Events.ExecutionStarting.Publish(started)
	if err != nil {
		return err
	}

	result, runErr := f.Hooks.ProcessRunner.Run(executable, args)
	outcome := executor.Classify(result, runErr, f.config.Fuzzing.LossyOutputDecoding)
	f.metrics.record(outcome)

	f.logger.Debug("Invocation finished with ", outcome.Kind.String(), logging.StructuredLogInfo{
		"runID":     f.runID.String(),
		"candidate": candidate,
		"args":      args,
		"outcome":   outcome.Kind.String(),
		"status":    outcome.Status,
		"exitCode":  outcome.ExitCode,
		"duration":  outcome.Duration.String(),
	})

	return f.Events.ExecutionFinished.Publish(ExecutionFinishedEvent{
		ExecutionStartingEvent: started,
		Outcome:                outcome,
	})
}
