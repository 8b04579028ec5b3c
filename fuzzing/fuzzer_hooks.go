package fuzzing

import (
	"github.com/crytic/clif/fuzzing/config"
	"github.com/crytic/clif/fuzzing/executor"
	"github.com/crytic/clif/fuzzing/valuegeneration"
)

// FuzzerHooks defines the replaceable functions and capabilities used by the Fuzzer.
type FuzzerHooks struct {
	// NewValueSourceFunc describes the function used to create the candidate source from the fuzzing configuration.
	NewValueSourceFunc NewValueSourceFunc

	// ProcessRunner describes the capability used to spawn the target for each candidate.
	ProcessRunner executor.ProcessRunner
}

// NewValueSourceFunc describes a function which creates the ValueSource a Fuzzer consumes.
// Returns the ValueSource, or an error if one occurred.
type NewValueSourceFunc func(fuzzingConfig config.FuzzingConfig) (valuegeneration.ValueSource, error)

// defaultNewValueSourceFunc selects the value source from whichever of the wordlist, number range or string range is
// set. If none is set, the source is empty and the target is never invoked.
func defaultNewValueSourceFunc(fuzzingConfig config.FuzzingConfig) (valuegeneration.ValueSource, error) {
	increment := uint64(fuzzingConfig.Increment)

	switch {
	case fuzzingConfig.Wordlist != "":
		return valuegeneration.NewWordlistSource(fuzzingConfig.Wordlist)
	case fuzzingConfig.NumberRange != "":
		bounds, err := fuzzingConfig.ParsedNumberRange()
		if err != nil {
			return nil, err
		}
		return valuegeneration.NewNumberRangeSource(bounds, increment, fuzzingConfig.StepwiseDescent), nil
	case fuzzingConfig.StringRange != "":
		bounds, err := fuzzingConfig.ParsedStringRange()
		if err != nil {
			return nil, err
		}
		return valuegeneration.NewStringRangeSource(bounds, increment), nil
	default:
		return valuegeneration.EmptySource{}, nil
	}
}
