// Package chessrules plays move tokens with github.com/notnil/chess.
// Positions are FEN strings.
package chessrules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrBadPosition = errors.New("invalid FEN position")
	ErrNoSuchMove  = errors.New("no legal move matches token")
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) StartingPosition() string {
	return StartFEN
}

// Apply plays token on position and returns the resulting FEN.
func (e *Engine) Apply(position, token string) (string, error) {
	pos, move, err := resolve(position, token)
	if err != nil {
		return "", err
	}
	return pos.Update(move).String(), nil
}

// Squares returns the origin and destination squares of token.
func (e *Engine) Squares(position, token string) (from, to string, err error) {
	_, move, err := resolve(position, token)
	if err != nil {
		return "", "", err
	}
	return move.S1().String(), move.S2().String(), nil
}

// Turn reports the side to move in position, "w" or "b".
func (e *Engine) Turn(position string) (string, error) {
	pos, err := decode(position)
	if err != nil {
		return "", err
	}
	if pos.Turn() == chess.Black {
		return "b", nil
	}
	return "w", nil
}

func decode(position string) (*chess.Position, error) {
	opt, err := chess.FEN(position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPosition, err)
	}
	return chess.NewGame(opt).Position(), nil
}

func resolve(position, token string) (*chess.Position, *chess.Move, error) {
	pos, err := decode(position)
	if err != nil {
		return nil, nil, err
	}

	want := normalize(token)
	if want == "" {
		return nil, nil, fmt.Errorf("%w: empty token", ErrNoSuchMove)
	}

	notation := chess.AlgebraicNotation{}
	for _, m := range pos.ValidMoves() {
		if normalize(notation.Encode(pos, m)) == want {
			return pos, m, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrNoSuchMove, token)
}

var sanNoise = strings.NewReplacer("+", "", "#", "", "!", "", "?", "", "=", "", "e.p.", "")

// normalize reduces a SAN token to the parts that identify the move, so
// "Bb5+", "bxa8=Q" and "0-0" compare equal to "Bb5", "bxa8Q" and "O-O".
func normalize(token string) string {
	s := sanNoise.Replace(strings.TrimSpace(token))
	switch s {
	case "0-0", "o-o":
		return "O-O"
	case "0-0-0", "o-o-o":
		return "O-O-O"
	}
	return s
}
