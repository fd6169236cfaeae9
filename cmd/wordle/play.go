// cmd/wordle/play.go
//
// Terminal game loop: reads guesses line by line, prints coloured marks and
// updates the on-disk stats when the game ends.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/TwiN/go-color"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/rng"
	"github.com/robalobadob/wordle/apps/go-core/internal/stats"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

type options struct {
	seed      *uint64 // nil: seeded from the clock
	statsFile string  // empty: stats are not kept
	colour    bool
}

// run plays one game and records it.
func run(in io.Reader, out io.Writer, opts options) error {
	if err := words.Init(); err != nil {
		return err
	}
	var src rand.Source = rng.NewTimeSeeded()
	if opts.seed != nil {
		src = rng.NewXorshift(*opts.seed)
	}
	b := game.NewBoard(words.RandomAnswer(src))

	if err := play(in, out, b, words.Allowed(), opts.colour); err != nil {
		return err
	}
	if opts.statsFile == "" {
		return nil
	}

	s, err := stats.LoadFile(opts.statsFile)
	if err != nil {
		// A corrupt file should not cost the player this game's result.
		log.Warn().Err(err).Str("file", opts.statsFile).Msg("resetting stats")
		s = stats.Stats{}
	}
	if err := s.Record(b); err != nil {
		return err
	}
	if err := stats.SaveFile(opts.statsFile, s); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", s)
	return nil
}

// play runs the prompt loop until b is finished. Invalid or unknown words are
// reported and do not use up a turn.
func play(in io.Reader, out io.Writer, b *game.Board, allowed *words.Set, colour bool) error {
	sc := bufio.NewScanner(in)
	for !b.Finished() {
		fmt.Fprint(out, "Your guess: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		fmt.Fprintln(out)

		g, err := words.Parse(sc.Text())
		if err != nil {
			var na *words.NonASCIIError
			if errors.As(err, &na) {
				fmt.Fprintln(out, na.Error())
			} else {
				fmt.Fprintf(out, "Guess must have %d characters.\n", words.Length)
			}
			continue
		}
		if !allowed.Contains(g) {
			fmt.Fprintln(out, "Not in word list.")
			continue
		}
		if _, err := b.Submit(g); err != nil {
			return err
		}
		for _, h := range b.Guesses() {
			fmt.Fprintln(out, render(h, colour))
		}
	}

	if b.Won() {
		fmt.Fprintln(out, "🎉🎊🥳")
	} else {
		fmt.Fprintf(out, "Sorry, the word was %s\n", b.Secret())
	}
	return nil
}

var letterColours = [...]string{
	game.Wrong:  color.Gray,
	game.InWord: color.Yellow,
	game.Right:  color.Green,
}

// render draws one scored guess. Without colour, right letters are bracketed
// and misplaced letters parenthesized.
func render(g game.Guess, colour bool) string {
	score := g.Score.Unpack()
	var sb strings.Builder
	for i, c := range g.Word {
		l := string(c)
		switch {
		case colour:
			sb.WriteString(color.Ize(letterColours[score[i]], l))
		case score[i] == game.Right:
			sb.WriteString("[" + l + "]")
		case score[i] == game.InWord:
			sb.WriteString("(" + l + ")")
		default:
			sb.WriteString(" " + l + " ")
		}
	}
	return sb.String()
}
