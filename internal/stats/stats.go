// internal/stats/stats.go
//
// Per-player win/loss histogram and its fixed-field text format.
//
// Format: one line, the six win buckets (won on turn 1..6) followed by the
// loss count, as space-separated decimal uint32 values, newline terminated:
//
//	3 10 22 9 4 1 2\n
//
// No header, no version. Counters wrap past math.MaxUint32; that is an
// accepted limitation, not an error.

package stats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
)

// Buckets is the number of win buckets, one per possible winning turn.
const Buckets = game.TurnLimit

const (
	fieldCount = Buckets + 1
	maxDigits  = 10 // len("4294967295")
	// maxLineLen bounds the read window: every field at full width, each
	// followed by a separator or the newline.
	maxLineLen = fieldCount * (maxDigits + 1)
)

var (
	// ErrParse is matched (errors.Is) by every *ParseError.
	ErrParse = errors.New("stats: parse error")
	// ErrTurnOutOfRange reports a win recorded outside [0, Buckets).
	ErrTurnOutOfRange = errors.New("stats: turn out of range")
	// ErrInProgress reports an attempt to record a board that has not ended.
	ErrInProgress = errors.New("stats: game still in progress")

	errTruncated = errors.New("no newline within the first 77 bytes")
)

// ParseError describes a malformed or truncated stats line.
type ParseError struct {
	Field int // 0-based field index, -1 when the line itself is bad
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("stats: %v", e.Err)
	}
	return fmt.Sprintf("stats: field %d: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Stats counts wins by the turn they happened on, plus losses.
type Stats struct {
	Wins   [Buckets]uint32 `json:"wins"`
	Losses uint32          `json:"losses"`
}

// RecordWin counts a win on turn (0-based).
func (s *Stats) RecordWin(turn int) error {
	if turn < 0 || turn >= Buckets {
		return fmt.Errorf("%w: %d", ErrTurnOutOfRange, turn)
	}
	s.Wins[turn]++
	return nil
}

// RecordLoss counts a loss.
func (s *Stats) RecordLoss() { s.Losses++ }

// Record counts the outcome of a finished board.
func (s *Stats) Record(b *game.Board) error {
	switch b.State() {
	case game.Won:
		return s.RecordWin(b.Turn() - 1)
	case game.Lost:
		s.RecordLoss()
		return nil
	}
	return ErrInProgress
}

// TotalWins sums the win buckets.
func (s Stats) TotalWins() uint64 {
	return lo.SumBy(s.Wins[:], func(n uint32) uint64 { return uint64(n) })
}

// Played is wins plus losses.
func (s Stats) Played() uint64 { return s.TotalWins() + uint64(s.Losses) }

// Serialize writes s as a single stats line.
func (s Stats) Serialize(w io.Writer) error {
	_, err := io.WriteString(w, s.Line()+"\n")
	return err
}

// Line is the stats line without its trailing newline.
func (s Stats) Line() string {
	var b strings.Builder
	for _, n := range s.Wins {
		b.WriteString(strconv.FormatUint(uint64(n), 10))
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatUint(uint64(s.Losses), 10))
	return b.String()
}

// Deserialize reads one stats line from r. It reads at most maxLineLen bytes
// looking for the newline; bytes already read past it are discarded.
func Deserialize(r io.Reader) (Stats, error) {
	var buf [maxLineLen]byte
	n := 0
	for {
		m, err := r.Read(buf[n:])
		n += m
		if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
			return ParseLine(string(buf[:i]))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Stats{}, &ParseError{Field: -1, Err: io.ErrUnexpectedEOF}
			}
			return Stats{}, fmt.Errorf("stats: read: %w", err)
		}
		if n == len(buf) {
			return Stats{}, &ParseError{Field: -1, Err: errTruncated}
		}
	}
}

// ParseLine parses a stats line without its newline.
func ParseLine(line string) (Stats, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return Stats{}, &ParseError{
			Field: -1,
			Err:   fmt.Errorf("want %d fields, got %d", fieldCount, len(fields)),
		}
	}

	var s Stats
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return Stats{}, &ParseError{Field: i, Err: err}
		}
		if i < Buckets {
			s.Wins[i] = uint32(v)
		} else {
			s.Losses = uint32(v)
		}
	}
	return s, nil
}

// String renders a text histogram: one bar per win bucket, then losses,
// scaled to the largest count.
func (s Stats) String() string {
	const scale = 30
	counts := append(s.Wins[:], s.Losses)
	top := lo.Max(counts)

	var b strings.Builder
	for i, n := range counts {
		label := strconv.Itoa(i + 1)
		if i == Buckets {
			label = "X"
		}
		cols := 0
		if top > 0 {
			cols = int(uint64(n) * scale / uint64(top))
		}
		fmt.Fprintf(&b, "%s %10d | %s\n", label, n, strings.Repeat("█", cols))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
