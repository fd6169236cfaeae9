// internal/game/engine.go
//
// Scoring engine: compares a guess with the secret word.
//
// ScoreGuess implements the two-pass, consume-on-match algorithm:
//
// Pass 1:
//   - Every exact match is Right, and that letter of the (working copy of
//     the) secret is consumed.
//
// Pass 2:
//   - Left to right over the guess, each non-Right letter takes the first
//     unconsumed occurrence in the secret (InWord) and consumes it, or stays
//     Wrong.
//
// Exact matches are resolved first so a correctly placed letter never loses
// its credit to an earlier misplaced copy, and a repeated guessed letter is
// credited only as many times as it appears in the secret.

package game

import "github.com/robalobadob/wordle/apps/go-core/internal/words"

// consumed marks a secret letter that has already been credited. It is not
// ASCII, so it never equals a guessed letter.
const consumed byte = 0xFF

// ScoreGuess scores guess against secret. Both must be validated, uppercase
// words; there is no failure path.
func ScoreGuess(secret, guess words.Word) Score {
	if secret == guess {
		return Winning
	}

	var s Score
	work := secret

	for i := range guess {
		if guess[i] == work[i] {
			s[i] = Right
			work[i] = consumed
		}
	}

	for i, g := range guess {
		if s[i] == Right {
			continue
		}
		for j := range work {
			if work[j] == g {
				s[i] = InWord
				work[j] = consumed
				break
			}
		}
	}
	return s
}
