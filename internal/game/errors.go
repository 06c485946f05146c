package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// Violation kinds. Compare with errors.Is.
var (
	ErrNotInDictionary  = errors.New("not in dictionary")
	ErrWrongStartLetter = errors.New("wrong start letter")
	ErrOutOfBounds      = grid.ErrOutOfBounds
	ErrDuplicateWord    = errors.New("duplicate word")
	ErrClash            = grid.ErrClash

	ErrGameFinished = errors.New("game finished")
)

// Violation is the first rule a candidate chain broke.
type Violation struct {
	Kind  error  // one of the Err* kinds above
	Word  string // offending word
	Index int    // position of Word in the chain
	msg   string
}

func (v *Violation) Error() string { return v.msg }

func (v *Violation) Unwrap() error { return v.Kind }

func violation(kind error, i int, word, format string, args ...any) *Violation {
	return &Violation{Kind: kind, Word: word, Index: i, msg: fmt.Sprintf(format, args...)}
}

// Code maps an error to a short machine-readable code for API clients.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotInDictionary):
		return "not_in_dictionary"
	case errors.Is(err, ErrWrongStartLetter):
		return "wrong_start_letter"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrDuplicateWord):
		return "duplicate_word"
	case errors.Is(err, ErrClash):
		return "clash"
	case errors.Is(err, grid.ErrBadDirection):
		return "bad_direction"
	case errors.Is(err, ErrGameFinished):
		return "finished"
	}
	return "invalid"
}
