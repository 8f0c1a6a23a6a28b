// Package conformance loads YAML case suites describing expected script
// outcomes and runs them against a hashclass engine.
package conformance

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suite is a named group of cases loaded from a single YAML document.
type Suite struct {
	Path        string `yaml:"-"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// Case is a single script with its expected outcome.
type Case struct {
	Name   string      `yaml:"name"`
	Source string      `yaml:"source"`
	Expect Expectation `yaml:"expect"`
	Skip   string      `yaml:"skip"`
}

// Expectation describes how a case must finish. When Error is set the
// script must fail with that error type; otherwise it must complete and,
// if Value is set, produce a completion value rendering to it.
type Expectation struct {
	Value   *string `yaml:"value"`
	Output  *string `yaml:"output"`
	Error   string  `yaml:"error"`
	Message string  `yaml:"message"`
}

// ValidationError reports every problem found in a suite document.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "conformance: invalid suite"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "conformance: invalid suite %s:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

var knownErrorTypes = map[string]struct{}{
	"SyntaxError":    {},
	"TypeError":      {},
	"ReferenceError": {},
	"RuntimeError":   {},
	"AssertionError": {},
	"InternalError":  {},
}

// LoadSuite parses and validates the suite stored at path.
func LoadSuite(path string) (*Suite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: open %s: %w", path, err)
	}
	defer file.Close()

	suite, err := DecodeSuite(file)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return nil, verr
		}
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}
	suite.Path = path
	return suite, nil
}

// DecodeSuite reads one suite document from r. Unknown keys are rejected.
func DecodeSuite(r io.Reader) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var suite Suite
	if err := decoder.Decode(&suite); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("suite document is empty")
		}
		return nil, err
	}
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return &suite, nil
}

// LoadSuites loads every .yaml or .yml file below dir in lexical order.
func LoadSuites(dir string) ([]*Suite, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conformance: scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("conformance: no suites found in %s", dir)
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func (s *Suite) validate() error {
	var issues []string
	if strings.TrimSpace(s.Name) == "" {
		issues = append(issues, "name is required")
	}
	if len(s.Cases) == 0 {
		issues = append(issues, "at least one case is required")
	}
	seen := make(map[string]struct{}, len(s.Cases))
	for idx, c := range s.Cases {
		label := fmt.Sprintf("cases[%d]", idx)
		if c.Name == "" {
			issues = append(issues, label+": name is required")
		} else {
			label = fmt.Sprintf("cases[%d] (%s)", idx, c.Name)
			if _, dup := seen[c.Name]; dup {
				issues = append(issues, label+": duplicate case name")
			}
			seen[c.Name] = struct{}{}
		}
		if strings.TrimSpace(c.Source) == "" {
			issues = append(issues, label+": source is required")
		}
		if c.Expect.Error != "" {
			if _, ok := knownErrorTypes[c.Expect.Error]; !ok {
				issues = append(issues, fmt.Sprintf("%s: unknown error type %q", label, c.Expect.Error))
			}
			if c.Expect.Value != nil {
				issues = append(issues, label+": value and error are mutually exclusive")
			}
		} else if c.Expect.Message != "" {
			issues = append(issues, label+": message requires error")
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
