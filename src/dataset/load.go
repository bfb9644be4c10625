package dataset

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/go-faster/errors"
)

// stripJSONC reads a JSONC file (full-line // comments) and returns raw JSON
// bytes suitable for unmarshalling. Inline // is NOT stripped so values may
// contain slashes.
func stripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// Load reads a JSONC dataset file containing an array of samples, e.g.
//
//	// measured on the 16-core bench host
//	[
//	  {"players": 1, "tick_ms": 0.24},
//	  {"players": 10, "tick_ms": 0.30}
//	]
//
// and returns the validated Dataset.
func Load(path string) (Dataset, error) {
	b, err := stripJSONC(path)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "read dataset %s", path)
	}
	var samples []Sample
	if err := json.Unmarshal(b, &samples); err != nil {
		return Dataset{}, errors.Wrapf(err, "parse dataset %s", path)
	}
	return New(samples)
}
