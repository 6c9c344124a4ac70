// Package loadshape reads base loadshape definitions from engine script files.
//
// Each definition is one line of the form
//
//	New Loadshape.Residential npts=8760 interval=1 mult=(0.31, 0.29, ...)
//
// Lines that define anything else, and comments, are skipped.
package loadshape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
)

// maxLineBytes bounds one definition line. A yearly hourly shape is ~100 KiB of text.
const maxLineBytes = 16 << 20

var (
	// ErrNoMultipliers is returned when a definition has no inline mult array.
	ErrNoMultipliers = errors.New("loadshape has no inline mult array")
	// ErrPointCount is returned when npts disagrees with the number of multipliers.
	ErrPointCount = errors.New("loadshape npts does not match mult length")
	// ErrDuplicate is returned when a loadshape name is defined twice.
	ErrDuplicate = errors.New("loadshape defined more than once")
)

// Set holds parsed loadshapes in file order.
type Set struct {
	names  []string
	shapes map[string][]float64
}

// Names returns the loadshape names in definition order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns the multipliers of a loadshape.
func (s *Set) Get(name string) ([]float64, bool) {
	v, ok := s.shapes[name]
	return v, ok
}

// Len returns the number of loadshapes.
func (s *Set) Len() int {
	return len(s.names)
}

// Map returns the loadshapes keyed by name, ready for a profile synthesizer.
func (s *Set) Map() map[string][]float64 {
	out := make(map[string][]float64, len(s.shapes))
	for k, v := range s.shapes {
		out[k] = v
	}
	return out
}

// Open memory-maps a script file and parses it.
func Open(path string) (*Set, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	set, err := Parse(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse reads loadshape definitions from r.
func Parse(r io.Reader) (*Set, error) {
	set := &Set{shapes: make(map[string][]float64)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		name, values, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		if _, dup := set.shapes[name]; dup {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrDuplicate, name)
		}
		set.names = append(set.names, name)
		set.shapes[name] = values
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// parseLine returns ok=false for lines that are not loadshape definitions.
func parseLine(line string) (string, []float64, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "//") {
		return "", nil, false, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	if !strings.EqualFold(verb, "new") {
		return "", nil, false, nil
	}
	rest = strings.TrimSpace(rest)
	object, props, _ := strings.Cut(rest, " ")
	class, name, found := strings.Cut(object, ".")
	if !found || !strings.EqualFold(class, "loadshape") {
		return "", nil, false, nil
	}

	npts := -1
	var values []float64
	for props != "" {
		key, value, remainder, err := nextProperty(props)
		if err != nil {
			return "", nil, false, fmt.Errorf("loadshape %q: %w", name, err)
		}
		props = remainder

		switch strings.ToLower(key) {
		case "npts":
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", nil, false, fmt.Errorf("loadshape %q: npts %q: %w", name, value, err)
			}
			npts = n
		case "mult":
			values, err = parseArray(value)
			if err != nil {
				return "", nil, false, fmt.Errorf("loadshape %q: %w", name, err)
			}
		}
	}

	if values == nil {
		return "", nil, false, fmt.Errorf("%w: %q", ErrNoMultipliers, name)
	}
	if npts >= 0 && npts != len(values) {
		return "", nil, false, fmt.Errorf("%w: %q has npts=%d and %d values", ErrPointCount, name, npts, len(values))
	}
	return name, values, true, nil
}

// nextProperty splits "key=value rest". Bracketed values may contain spaces.
func nextProperty(s string) (key, value, rest string, err error) {
	s = strings.TrimSpace(s)
	key, after, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", "", fmt.Errorf("property %q has no value", s)
	}
	key = strings.TrimSpace(key)
	after = strings.TrimLeft(after, " ")

	if after == "" {
		return key, "", "", nil
	}
	if closer, bracketed := closers[after[0]]; bracketed {
		end := strings.IndexByte(after[1:], closer)
		if end < 0 {
			return "", "", "", fmt.Errorf("property %q: unterminated %q", key, string(after[0]))
		}
		return key, after[:end+2], after[end+2:], nil
	}

	value, rest, _ = strings.Cut(after, " ")
	return key, value, rest, nil
}

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}', '"': '"', '\'': '\''}

func parseArray(s string) ([]float64, error) {
	if s != "" {
		if _, bracketed := closers[s[0]]; bracketed {
			s = s[1 : len(s)-1]
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "file=") {
		return nil, fmt.Errorf("%w: external file reference %q", ErrNoMultipliers, s)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("mult[%d]: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}
