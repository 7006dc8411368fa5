package main

import (
	"os"
	"path/filepath"
	"strings"

	confetti "github.com/confetti-lang/confetti-go"
)

// fixture is one discovered *.conf conformance test, together with the
// sidecar files that describe how it should be parsed (.ext_* markers)
// and what the expected outcome is (.pass snapshot or .fail marker).
type fixture struct {
	name     string
	confPath string
	baseName string
}

func discoverFixtures(dir string) ([]fixture, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.conf"))
	if err != nil {
		return nil, err
	}
	fixtures := make([]fixture, 0, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(m, ".conf")
		fixtures = append(fixtures, fixture{
			name:     filepath.Base(base),
			confPath: m,
			baseName: base,
		})
	}
	return fixtures, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// requestedOptions builds the Options a fixture's .ext_* sidecars ask
// for. A punctuator-extension fixture lists one punctuator per
// whitespace-separated token in its .ext_punctuator_arguments sidecar.
func (f fixture) requestedOptions() (confetti.Options, bool) {
	opts := confetti.Options{}
	extended := false

	if fileExists(f.baseName + ".ext_c_style_comments") {
		opts.CStyleComments = true
		extended = true
	}
	if fileExists(f.baseName + ".ext_expression_arguments") {
		opts.ExpressionArguments = true
		extended = true
	}
	if body, err := os.ReadFile(f.baseName + ".ext_punctuator_arguments"); err == nil {
		opts.Punctuators = strings.Fields(string(body))
		extended = true
	}

	return opts, extended
}

func (f fixture) expectsFailure() bool {
	return fileExists(f.baseName + ".fail")
}

func (f fixture) passSnapshot() (string, bool) {
	body, err := os.ReadFile(f.baseName + ".pass")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(body)), true
}
