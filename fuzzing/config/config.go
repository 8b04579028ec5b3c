package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/crytic/clif/fuzzing/valuegeneration"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// PlaceholderToken is the marker in the argument template which is replaced by each candidate.
const PlaceholderToken = "FUZZ"

// ProjectConfig describes the full configuration of a clif run.
type ProjectConfig struct {
	// Fuzzing describes the configuration used by the fuzzing.Fuzzer.
	Fuzzing FuzzingConfig `json:"fuzzing" yaml:"fuzzing"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// FuzzingConfig describes the configuration options used by the fuzzing.Fuzzer. Exactly one of Wordlist, NumberRange
// and StringRange must be set.
type FuzzingConfig struct {
	// Executable describes the path of the target program to invoke for every candidate.
	Executable string `json:"executable" yaml:"executable"`

	// Wordlist describes the path of a file whose lines are used as candidates.
	Wordlist string `json:"wordlist,omitempty" yaml:"wordlist,omitempty"`

	// NumberRange describes a "<int>..<int>" range of integer candidates.
	NumberRange string `json:"numberRange,omitempty" yaml:"numberRange,omitempty"`

	// StringRange describes a "<uint>..<uint>" range of repeated-character string candidates.
	StringRange string `json:"stringRange,omitempty" yaml:"stringRange,omitempty"`

	// Increment describes the step used by number and string ranges. Zero is treated as one.
	Increment uint `json:"increment" yaml:"increment"`

	// Arguments describes the argument template. Every PlaceholderToken occurrence is replaced by the candidate and
	// the result is split using shell word rules. If empty, or if the template has no placeholder, the candidate is
	// passed as the only argument.
	Arguments string `json:"arguments" yaml:"arguments"`

	// StepwiseDescent makes descending number ranges count down from the start by Increment instead of reversing the
	// ascending stepped sequence.
	StepwiseDescent bool `json:"stepwiseDescent" yaml:"stepwiseDescent"`

	// StrictArguments makes the fuzzer stop when the argument template cannot be split after substitution, instead of
	// invoking the target with an empty argument list.
	StrictArguments bool `json:"strictArguments" yaml:"strictArguments"`

	// LossyOutputDecoding replaces invalid UTF-8 sequences in the captured output of the target instead of reporting
	// the invocation as an error.
	LossyOutputDecoding bool `json:"lossyOutputDecoding" yaml:"lossyOutputDecoding"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level" yaml:"level"`

	// LogDirectory describes the directory where structured log files will be written. If empty, no log files are
	// kept.
	LogDirectory string `json:"logDirectory" yaml:"logDirectory"`

	// NoColor indicates whether console output should be colorized.
	NoColor bool `json:"noColor" yaml:"noColor"`
}

// isYAMLPath reports whether path names a YAML configuration file. Any other file is treated as JSON.
func isYAMLPath(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	return extension == ".yaml" || extension == ".yml"
}

// ReadProjectConfigFromFile reads a ProjectConfig from a provided file path, serialized as YAML if the file has a
// .yaml or .yml extension and as JSON otherwise. Fields absent from the file keep their default values.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	projectConfig := GetDefaultProjectConfig()
	if isYAMLPath(path) {
		err = yaml.Unmarshal(b, projectConfig)
	} else {
		err = json.Unmarshal(b, projectConfig)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse the configuration file %q", path)
	}
	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path, in YAML if the path has a .yaml or .yml extension and
// in JSON otherwise.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	var b []byte
	var err error
	if isYAMLPath(path) {
		b, err = yaml.Marshal(p)
	} else {
		b, err = json.MarshalIndent(p, "", "\t")
	}
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Validate validates that the ProjectConfig meets certain requirements and normalizes the increment.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	if p.Fuzzing.Executable == "" {
		return errors.New("an executable to fuzz must be provided")
	}

	// Exactly one value source may be set
	sources := 0
	for _, source := range []string{p.Fuzzing.Wordlist, p.Fuzzing.NumberRange, p.Fuzzing.StringRange} {
		if source != "" {
			sources++
		}
	}
	if sources == 0 {
		return errors.New("one of wordlist, number range or string range must be provided")
	}
	if sources > 1 {
		return errors.New("only one of wordlist, number range or string range can be provided")
	}

	if p.Fuzzing.NumberRange != "" {
		if _, err := p.Fuzzing.ParsedNumberRange(); err != nil {
			return err
		}
	}
	if p.Fuzzing.StringRange != "" {
		if _, err := p.Fuzzing.ParsedStringRange(); err != nil {
			return err
		}
	}

	if p.Fuzzing.Increment == 0 {
		p.Fuzzing.Increment = 1
	}
	return nil
}

// ParsedNumberRange parses the NumberRange field.
func (c *FuzzingConfig) ParsedNumberRange() (valuegeneration.Range[int64], error) {
	r, err := valuegeneration.ParseNumberRange(c.NumberRange)
	if err != nil {
		return r, errors.Wrap(err, "problems with processing the number range")
	}
	return r, nil
}

// ParsedStringRange parses the StringRange field.
func (c *FuzzingConfig) ParsedStringRange() (valuegeneration.Range[uint64], error) {
	r, err := valuegeneration.ParseStringRange(c.StringRange)
	if err != nil {
		return r, errors.Wrap(err, "problems with processing the string range")
	}
	return r, nil
}
