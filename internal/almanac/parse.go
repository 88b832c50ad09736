// Package almanac reads puzzle input into seeds and engine stages.
package almanac

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"almanac/internal/engine"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError points at the offending input line.
type ParseError struct {
	Path string // empty when parsing a bare reader
	Line int
	Msg  string
	Err  error // underlying cause, if any
}

func (e *ParseError) Error() string {
	loc := strconv.Itoa(e.Line)
	if e.Path != "" {
		loc = e.Path + ":" + loc
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// Almanac is the parsed input: seed values and the stages in file order.
type Almanac struct {
	Seeds  []int64
	Stages []*engine.Stage
}

// StageCount is how many stages the puzzle input carries.
const StageCount = 7

const seedsPrefix = "seeds:"

// Parse reads
//
//	seeds: <ints>
//
//	<name> map:
//	<dest> <src> <len>
//	...
//
// Blocks end at a blank line or EOF. Any number of blocks is accepted.
func Parse(r io.Reader) (Almanac, error) {
	var (
		a     Almanac
		ln    int
		name  string
		rules []engine.Rule
		open  bool // inside a map block
	)
	flush := func() error {
		if !open {
			return nil
		}
		st, err := engine.NewStage(name, rules)
		if err != nil {
			return &ParseError{Line: ln, Msg: "bad map " + strconv.Quote(name), Err: err}
		}
		a.Stages = append(a.Stages, st)
		name, rules, open = "", nil, false
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 16<<20)
	seenSeeds := false
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())

		switch {
		case !seenSeeds:
			if line == "" {
				continue
			}
			rest, ok := strings.CutPrefix(line, seedsPrefix)
			if !ok {
				return Almanac{}, &ParseError{Line: ln, Msg: "expected \"seeds:\" line"}
			}
			seeds, err := parseInts(rest)
			if err != nil {
				return Almanac{}, &ParseError{Line: ln, Msg: "bad seed", Err: err}
			}
			a.Seeds = seeds
			seenSeeds = true

		case line == "":
			if err := flush(); err != nil {
				return Almanac{}, err
			}

		case strings.HasSuffix(line, ":"):
			if err := flush(); err != nil {
				return Almanac{}, err
			}
			name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(line, ":"), "map"))
			open = true

		default:
			if !open {
				return Almanac{}, &ParseError{Line: ln, Msg: "map line before any map header"}
			}
			f := strings.Fields(line)
			if len(f) != 3 {
				return Almanac{}, &ParseError{Line: ln, Msg: fmt.Sprintf("want 3 fields, got %d", len(f))}
			}
			vs, err := parseInts(line)
			if err != nil {
				return Almanac{}, &ParseError{Line: ln, Msg: "bad map line", Err: err}
			}
			r, err := engine.NewRule(vs[0], vs[1], vs[2])
			if err != nil {
				return Almanac{}, &ParseError{Line: ln, Msg: "bad map line", Err: err}
			}
			rules = append(rules, r)
		}
	}
	if err := sc.Err(); err != nil {
		return Almanac{}, err
	}
	if err := flush(); err != nil {
		return Almanac{}, err
	}
	if !seenSeeds {
		return Almanac{}, &ParseError{Line: ln, Msg: "missing \"seeds:\" line"}
	}
	if len(a.Stages) == 0 {
		return Almanac{}, &ParseError{Line: ln, Msg: "no map blocks"}
	}
	return a, nil
}

func parseInts(s string) ([]int64, error) {
	f := strings.Fields(s)
	out := make([]int64, 0, len(f))
	for _, tok := range f {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Load parses the file at path. "-" reads stdin; a ".gz" suffix is
// decompressed on the fly.
func Load(path string) (Almanac, error) {
	rc, err := Open(path)
	if err != nil {
		return Almanac{}, err
	}
	defer func() { _ = rc.Close() }()

	a, err := Parse(rc)
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
	}
	return a, err
}

// Open returns a reader for path with the same conventions as Load.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzipFile{Reader: gr, fh: fh}, nil
	}
	return fh, nil
}

// gzipFile closes the decompressor and then the file under it.
type gzipFile struct {
	*gzip.Reader
	fh io.Closer
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.fh.Close())
}
