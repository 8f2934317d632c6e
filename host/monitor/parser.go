package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"joycursor/core"
)

// Record is one complete line/column report from the board.
type Record struct {
	Line   uint8
	Column uint8
}

func (r Record) String() string {
	return fmt.Sprintf("line %d column %d", r.Line, r.Column)
}

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("malformed report")

// Parser splits the report stream into records. Labels come from the
// firmware configuration so a board built with different labels can still
// be read.
type Parser struct {
	lineLabel   string
	columnLabel string
}

// NewParser returns a parser for the labels in cfg.
func NewParser(cfg core.Config) *Parser {
	cfg.ApplyDefaults()
	return &Parser{
		lineLabel:   strings.TrimSpace(cfg.LineLabel),
		columnLabel: strings.TrimSpace(cfg.ColumnLabel),
	}
}

// Parse decodes one report line with its terminator already removed.
func (p *Parser) Parse(line string) (Record, error) {
	s := strings.TrimSpace(line)

	rest, ok := strings.CutPrefix(s, p.lineLabel)
	if !ok {
		return Record{}, fmt.Errorf("%w: missing %q in %q", ErrMalformed, p.lineLabel, line)
	}
	lineText, colText, ok := strings.Cut(rest, p.columnLabel)
	if !ok {
		return Record{}, fmt.Errorf("%w: missing %q in %q", ErrMalformed, p.columnLabel, line)
	}

	ln, err := parseField(lineText, core.MaxLine)
	if err != nil {
		return Record{}, fmt.Errorf("%w: line: %v", ErrMalformed, err)
	}
	col, err := parseField(colText, core.MaxColumn)
	if err != nil {
		return Record{}, fmt.Errorf("%w: column: %v", ErrMalformed, err)
	}
	return Record{Line: ln, Column: col}, nil
}

func parseField(s string, max uint8) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, err
	}
	if n > uint64(max) {
		return 0, fmt.Errorf("%d out of range 0..%d", n, max)
	}
	return uint8(n), nil
}

// Scan reads records from r until EOF or ctx ends, calling fn for each.
// Malformed lines go to bad when it is non-nil and are otherwise skipped;
// the first line after connecting is usually a partial record.
func (p *Parser) Scan(ctx context.Context, r io.Reader, fn func(Record) error, bad func(string, error)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := p.Parse(text)
		if err != nil {
			if bad != nil {
				bad(text, err)
			}
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return sc.Err()
}
