package fuzzing

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/crytic/clif/fuzzing/config"
	"github.com/crytic/clif/fuzzing/executor"
	"github.com/crytic/clif/fuzzing/valuegeneration"
	"github.com/crytic/clif/logging"
	"github.com/crytic/clif/logging/colors"
	"github.com/crytic/clif/utils/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failOn returns a response function for a recordingRunner which fails the invocation whose first argument is
// candidate and succeeds otherwise.
func failOn(candidate string) func(string, []string) (*executor.ProcessResult, error) {
	return func(_ string, args []string) (*executor.ProcessResult, error) {
		if len(args) > 0 && args[0] == candidate {
			return &executor.ProcessResult{Stderr: []byte("bad input"), ExitCode: 1, Status: "exit status 1"}, nil
		}
		return &executor.ProcessResult{Stdout: []byte("fine"), Status: "exit status 0"}, nil
	}
}

// TestFuzzerNumberRange runs a stepped number range and checks every candidate is passed as the only argument.
func TestFuzzerNumberRange(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "1..10",
		Increment:   3,
	})

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, []string{"1", "4", "7"}, fctx.candidates())
	assert.EqualValues(t, [][]string{{"1"}, {"4"}, {"7"}}, fctx.runner.invocations())
	assert.EqualValues(t, 3, fctx.fuzzer.Metrics().Invocations)
	assert.EqualValues(t, 3, fctx.fuzzer.Metrics().Successes)
	assert.Len(t, fctx.stopping, 1)
	assert.NoError(t, fctx.stopping[0].Err)
}

// TestFuzzerContinuesAfterFailure checks that a failing invocation is reported and the run goes on.
func TestFuzzerContinuesAfterFailure(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "1..4",
	})
	fctx.runner.respond = failOn("2")

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, []executor.OutcomeKind{
		executor.OutcomeSuccess,
		executor.OutcomeFailure,
		executor.OutcomeSuccess,
	}, fctx.outcomeKinds())
	assert.EqualValues(t, "bad input", fctx.finished[1].Outcome.Payload)
	assert.EqualValues(t, "fine", fctx.finished[0].Outcome.Payload)

	metrics := fctx.fuzzer.Metrics()
	assert.EqualValues(t, 2, metrics.Successes)
	assert.EqualValues(t, 1, metrics.Failures)
}

// TestFuzzerContinuesAfterSpawnError checks that a target which cannot be started is reported per candidate.
func TestFuzzerContinuesAfterSpawnError(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "missing-target",
		StringRange: "1..3",
	})
	fctx.runner.respond = func(string, []string) (*executor.ProcessResult, error) {
		return nil, errors.New("executable file not found")
	}

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, []string{"AA", "AAA"}, fctx.candidates())
	assert.EqualValues(t, []executor.OutcomeKind{executor.OutcomeSpawnError, executor.OutcomeSpawnError}, fctx.outcomeKinds())
	assert.Contains(t, fctx.finished[0].Outcome.Payload, "executable file not found")
	assert.EqualValues(t, 2, fctx.fuzzer.Metrics().SpawnErrors)
}

// TestFuzzerArgumentTemplate checks the candidate is substituted into the argument template before splitting.
func TestFuzzerArgumentTemplate(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "5..7",
		Arguments:   `--id FUZZ --name "user FUZZ"`,
	})

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, [][]string{
		{"--id", "5", "--name", "user 5"},
		{"--id", "6", "--name", "user 6"},
	}, fctx.runner.invocations())
}

// TestFuzzerArgumentSplitError checks that an unsplittable template invokes the target without arguments.
func TestFuzzerArgumentSplitError(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "0..2",
		Arguments:   `"FUZZ`,
	})

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, [][]string{{}, {}}, fctx.runner.invocations())
	for _, event := range fctx.started {
		assert.NotNil(t, event.Args)
		assert.Empty(t, event.Args)
	}
	assert.EqualValues(t, 2, fctx.fuzzer.Metrics().ArgumentSplitErrors)
	assert.EqualValues(t, 2, fctx.fuzzer.Metrics().Invocations)
}

// TestFuzzerStrictArguments checks that an unsplittable template aborts the run when arguments are strict.
func TestFuzzerStrictArguments(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:      "target",
		NumberRange:     "0..2",
		Arguments:       `FUZZ\`,
		StrictArguments: true,
	})

	err := fctx.fuzzer.Start()
	assert.ErrorIs(t, err, ErrFuzzerAborted)

	var splitErr *ArgumentSplitError
	assert.True(t, errors.As(err, &splitErr))
	assert.Empty(t, fctx.runner.invocations())
	assert.Len(t, fctx.stopping, 1)
	assert.ErrorIs(t, fctx.stopping[0].Err, ErrFuzzerAborted)
}

// TestFuzzerMissingWordlist checks that a missing wordlist fails before any invocation and is not an aborted run.
func TestFuzzerMissingWordlist(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable: "target",
		Wordlist:   filepath.Join(t.TempDir(), "missing.txt"),
	})

	err := fctx.fuzzer.Start()
	assert.ErrorIs(t, err, valuegeneration.ErrWordlistNotFound)
	assert.NotErrorIs(t, err, ErrFuzzerAborted)
	assert.Empty(t, fctx.runner.invocations())
	assert.Empty(t, fctx.stopping)
}

// TestFuzzerWordlistDecodeError checks that a wordlist line which is not valid UTF-8 aborts the run after the lines
// preceding it were executed.
func TestFuzzerWordlistDecodeError(t *testing.T) {
	path := testutils.WriteTestFile(t, "words.txt", []byte("admin\r\n\xff\xfe\nroot\n"))

	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable: "target",
		Wordlist:   path,
	})

	err := fctx.fuzzer.Start()
	assert.ErrorIs(t, err, ErrFuzzerAborted)
	assert.ErrorIs(t, err, valuegeneration.ErrInvalidWordlistEncoding)
	assert.EqualValues(t, []string{"admin"}, fctx.candidates())
}

// TestFuzzerInvalidOutputEncoding checks output which is not valid UTF-8 is a per-candidate spawn error, or is
// replaced when lossy decoding is enabled.
func TestFuzzerInvalidOutputEncoding(t *testing.T) {
	respond := func(string, []string) (*executor.ProcessResult, error) {
		return &executor.ProcessResult{Stdout: []byte("ok\xff"), Status: "exit status 0"}, nil
	}

	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "0..2",
	})
	fctx.runner.respond = respond
	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, []executor.OutcomeKind{executor.OutcomeSpawnError, executor.OutcomeSpawnError}, fctx.outcomeKinds())

	fctx = newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:          "target",
		NumberRange:         "0..1",
		LossyOutputDecoding: true,
	})
	fctx.runner.respond = respond
	err = fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, []executor.OutcomeKind{executor.OutcomeSuccess}, fctx.outcomeKinds())
	assert.EqualValues(t, "ok\uFFFD", fctx.finished[0].Outcome.Payload)
}

// TestFuzzerEmptySource checks that a source without candidates never invokes the target.
func TestFuzzerEmptySource(t *testing.T) {
	fctx := newFuzzerTestContext(t, config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "3..3",
	})

	err := fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.Empty(t, fctx.runner.invocations())

	fctx.fuzzer.Hooks.NewValueSourceFunc = func(config.FuzzingConfig) (valuegeneration.ValueSource, error) {
		return valuegeneration.EmptySource{}, nil
	}
	err = fctx.fuzzer.Start()
	assert.NoError(t, err)
	assert.Empty(t, fctx.runner.invocations())
	assert.EqualValues(t, 0, fctx.fuzzer.Metrics().Invocations)
}

// TestFuzzerDeterministic checks that two runs over the same configuration invoke the target identically.
func TestFuzzerDeterministic(t *testing.T) {
	fuzzingConfig := config.FuzzingConfig{
		Executable:  "target",
		NumberRange: "10..-10",
		Increment:   4,
		Arguments:   "-n FUZZ",
	}

	first := newFuzzerTestContext(t, fuzzingConfig)
	second := newFuzzerTestContext(t, fuzzingConfig)
	assert.NoError(t, first.fuzzer.Start())
	assert.NoError(t, second.fuzzer.Start())
	assert.NotEmpty(t, first.runner.invocations())
	assert.EqualValues(t, first.runner.invocations(), second.runner.invocations())
	assert.NotEqual(t, first.fuzzer.RunID(), second.fuzzer.RunID())
}

// TestFuzzerInvalidConfig checks that NewFuzzer refuses a configuration without an executable or a value source.
func TestFuzzerInvalidConfig(t *testing.T) {
	projectConfig := config.GetDefaultProjectConfig()
	_, err := NewFuzzer(*projectConfig)
	assert.Error(t, err)

	projectConfig.Fuzzing.Executable = "target"
	_, err = NewFuzzer(*projectConfig)
	assert.Error(t, err)
}

// TestFuzzerEcho runs the real echo executable over a string range and checks the console report.
func TestFuzzerEcho(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo is a shell builtin on Windows")
	}
	colors.DisableColor()

	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Fuzzing.Executable = "echo"
	projectConfig.Fuzzing.StringRange = "1..4"

	fuzzer, err := NewFuzzer(*projectConfig)
	assert.NoError(t, err)

	var out bytes.Buffer
	NewConsoleReporter(&out).Attach(fuzzer)

	err = fuzzer.Start()
	assert.NoError(t, err)
	assert.EqualValues(t, ""+
		"[+] Executing: \"echo AA\"\n"+
		"[OK] AA\n\n"+
		"[+] Executing: \"echo AAA\"\n"+
		"[OK] AAA\n\n"+
		"[+] Executing: \"echo AAAA\"\n"+
		"[OK] AAAA\n\n", out.String())
	assert.EqualValues(t, 3, fuzzer.Metrics().Successes)
}

// TestFuzzerLogDirectory checks the structured log file of a run is named after its run ID.
func TestFuzzerLogDirectory(t *testing.T) {
	logDirectory := filepath.Join(t.TempDir(), "logs")

	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Fuzzing.Executable = "target"
	projectConfig.Fuzzing.NumberRange = "0..2"
	projectConfig.Logging.LogDirectory = logDirectory
	projectConfig.Logging.NoColor = true

	fuzzer, err := NewFuzzer(*projectConfig)
	assert.NoError(t, err)
	fuzzer.Hooks.ProcessRunner = &recordingRunner{}
	logFile := fuzzer.logFile
	require.NotNil(t, logFile)
	assert.NoError(t, fuzzer.Start())

	data, err := os.ReadFile(filepath.Join(logDirectory, "clif-"+fuzzer.RunID().String()+".log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"runID":"`+fuzzer.RunID().String()+`"`)
	assert.Contains(t, string(data), `"module":"fuzzing"`)
	assert.Contains(t, string(data), "Fuzzer stopped")

	// The file is closed and no longer receives log events once the run is over
	_, err = logFile.Write([]byte("{}\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Nil(t, fuzzer.logFile)

	logging.GlobalLogger.Info("after the run")
	after, err := os.ReadFile(filepath.Join(logDirectory, "clif-"+fuzzer.RunID().String()+".log"))
	assert.NoError(t, err)
	assert.Equal(t, data, after)
}

// TestFuzzerLogDirectoryClosedOnError checks the log file is closed when the run fails before invoking the target.
func TestFuzzerLogDirectoryClosedOnError(t *testing.T) {
	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Fuzzing.Executable = "target"
	projectConfig.Fuzzing.Wordlist = filepath.Join(t.TempDir(), "missing.txt")
	projectConfig.Logging.LogDirectory = t.TempDir()

	fuzzer, err := NewFuzzer(*projectConfig)
	require.NoError(t, err)
	logFile := fuzzer.logFile
	require.NotNil(t, logFile)

	err = fuzzer.Start()
	assert.ErrorIs(t, err, valuegeneration.ErrWordlistNotFound)

	_, err = logFile.Write([]byte("{}\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
