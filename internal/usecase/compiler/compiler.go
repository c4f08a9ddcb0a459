package compiler

import (
	"fmt"
	"strings"

	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
)

// BlunderMarker flags an intentionally bad move. It is display-only.
const BlunderMarker = "?"

// Rules is the move legality capability the compiler plays tokens against.
type Rules interface {
	StartingPosition() string
	Apply(position, token string) (string, error)
}

// IllegalMoveError reports the first token that failed to apply.
// Path holds child indices from the root down to the offending node.
type IllegalMoveError struct {
	Token    string
	Position string
	Path     []int
	Err      error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%s %q at ply %d (position %s): %v", lberrors.ErrIllegalMove, e.Token, len(e.Path), e.Position, e.Err)
}

func (e *IllegalMoveError) Unwrap() []error {
	return []error{lberrors.ErrIllegalMove, e.Err}
}

// StripMarker removes a trailing blunder marker.
func StripMarker(token string) (move string, blunder bool) {
	if strings.HasSuffix(token, BlunderMarker) {
		return strings.TrimSuffix(token, BlunderMarker), true
	}
	return token, false
}

// Compile plays every node of tree from the rules' starting position.
// Any illegal token rejects the whole document; no partial tree is returned.
func Compile(tree line.RootedMoveTree, rules Rules) (line.RootedPositionTree, error) {
	start := rules.StartingPosition()

	children, err := compileChildren(tree.Children, start, rules, nil)
	if err != nil {
		return line.RootedPositionTree{}, err
	}

	return line.RootedPositionTree{Start: start, Children: children}, nil
}

func compileChildren(nodes []line.MoveNode, position string, rules Rules, path []int) ([]line.PositionNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	out := make([]line.PositionNode, 0, len(nodes))
	for i, n := range nodes {
		child, err := compileNode(n, position, rules, appendPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func compileNode(n line.MoveNode, position string, rules Rules, path []int) (line.PositionNode, error) {
	move, blunder := StripMarker(n.Token)

	next, err := rules.Apply(position, move)
	if err != nil {
		return line.PositionNode{}, &IllegalMoveError{Token: n.Token, Position: position, Path: path, Err: err}
	}

	children, err := compileChildren(n.Children, next, rules, path)
	if err != nil {
		return line.PositionNode{}, err
	}

	return line.PositionNode{
		Token:     n.Token,
		IsBlunder: blunder,
		Position:  next,
		Children:  children,
	}, nil
}

// appendPath copies so sibling branches never share a backing array.
func appendPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}
