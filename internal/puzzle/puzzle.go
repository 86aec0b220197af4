// Package puzzle loads Countdown number puzzles from TOML files and
// command-line arguments.
package puzzle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

var (
	// ErrInvalidTOML is returned when a puzzle file cannot be parsed.
	ErrInvalidTOML = errors.New("invalid TOML")

	// ErrUnknownKey is returned when a puzzle file has keys no puzzle field
	// accepts.
	ErrUnknownKey = errors.New("unknown key")

	// ErrNoPuzzles is returned for a file without [[puzzle]] tables.
	ErrNoPuzzles = errors.New("no puzzles")
)

// Puzzle is one set of numbers with either a target or a target range.
type Puzzle struct {
	Name    string `toml:"name"`
	Numbers []int  `toml:"numbers"`
	Target  int    `toml:"target"`
	Min     int    `toml:"min"`
	Max     int    `toml:"max"`

	// Limit caps the printed solutions; 0 means all.
	Limit int `toml:"limit"`

	// Closest asks for the nearest value when the target is unreachable.
	Closest bool `toml:"closest"`
}

// File is the top-level layout of a puzzle file:
//
//	[[puzzle]]
//	name = "classic"
//	numbers = [2, 7, 9, 10, 25, 50]
//	target = 744
type File struct {
	Puzzles []Puzzle `toml:"puzzle"`
}

// Range returns the target range: the target alone when set, Min..Max
// otherwise.
func (p *Puzzle) Range() solver.Range {
	if p.Target != 0 {
		return solver.Exact(p.Target)
	}
	return solver.Range{Min: p.Min, Max: p.Max}
}

// Validate checks numbers and the target or range.
func (p *Puzzle) Validate() error {
	if err := solver.Validate(p.Numbers); err != nil {
		return fmt.Errorf("puzzle %q: %w", p.Name, err)
	}
	if p.Target != 0 && (p.Min != 0 || p.Max != 0) {
		return fmt.Errorf("puzzle %q: %w: target and min/max are mutually exclusive", p.Name, solver.ErrInvalidInput)
	}
	if p.Target < 0 {
		return fmt.Errorf("puzzle %q: %w: negative target %d", p.Name, solver.ErrInvalidInput, p.Target)
	}
	if p.Target == 0 && p.Min == 0 && p.Max == 0 {
		return fmt.Errorf("puzzle %q: %w: needs a target or a range", p.Name, solver.ErrInvalidInput)
	}
	if p.Limit < 0 {
		return fmt.Errorf("puzzle %q: %w: negative limit %d", p.Name, solver.ErrInvalidInput, p.Limit)
	}
	if err := p.Range().Validate(); err != nil {
		return fmt.Errorf("puzzle %q: %w", p.Name, err)
	}
	return nil
}

// LoadFile reads and validates every puzzle in a TOML file. Unnamed
// puzzles are named after their position.
func LoadFile(path string) ([]Puzzle, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}

	if len(f.Puzzles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPuzzles, path)
	}

	for i := range f.Puzzles {
		p := &f.Puzzles[i]
		if p.Name == "" {
			p.Name = "puzzle-" + strconv.Itoa(i+1)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return f.Puzzles, nil
}

// ParseNumbers converts command-line arguments to a validated multiset.
func ParseNumbers(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", solver.ErrInvalidInput, arg)
		}
		numbers = append(numbers, n)
	}
	if err := solver.Validate(numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

// ParseTarget converts a command-line target to a positive integer.
func ParseTarget(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: target %q is not an integer", solver.ErrInvalidInput, arg)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: target %d is not positive", solver.ErrInvalidInput, n)
	}
	return n, nil
}
