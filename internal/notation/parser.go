// Package notation turns authored line documents into move trees.
//
// A document is either a single line of space separated move tokens, or a
// token prefix used as a mapping key whose value is a list of further
// documents:
//
//	e4 e5 Nf3 Nc6 c3:
//	  - Bc5 d4 exd4
//	  - d6 d4 Nf6
//
// Only the first key of a mapping is honoured; any further keys are ignored.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
)

// ParseError describes why a document was rejected.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", lberrors.ErrDocumentParse, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s", lberrors.ErrDocumentParse, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return lberrors.ErrDocumentParse
}

func nodeError(n *yaml.Node, format string, args ...any) *ParseError {
	return &ParseError{Line: n.Line, Column: n.Column, Reason: fmt.Sprintf(format, args...)}
}

// Parse runs the YAML parser over text and builds the move tree.
func Parse(text string) (line.RootedMoveTree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return line.RootedMoveTree{}, &ParseError{Reason: err.Error()}
	}
	return ParseDocument(&doc)
}

// ParseDocument builds a rooted tree with exactly one top-level child.
func ParseDocument(value *yaml.Node) (line.RootedMoveTree, error) {
	value = unwrap(value)
	if isAbsent(value) {
		return line.RootedMoveTree{}, lberrors.ErrNoDocument
	}

	root, err := ParseNode(value)
	if err != nil {
		return line.RootedMoveTree{}, err
	}

	return line.RootedMoveTree{Children: []line.MoveNode{root}}, nil
}

// ParseNode parses a scalar token string or a single-key mapping.
func ParseNode(value *yaml.Node) (line.MoveNode, error) {
	value = unwrap(value)
	if isAbsent(value) {
		return line.MoveNode{}, &ParseError{Reason: "empty entry"}
	}

	switch value.Kind {
	case yaml.ScalarNode:
		return ParseChain(value.Value, nil)

	case yaml.MappingNode:
		if len(value.Content) < 2 {
			return line.MoveNode{}, nodeError(value, "mapping without a key")
		}
		key, list := unwrap(value.Content[0]), unwrap(value.Content[1])
		if key.Kind != yaml.ScalarNode {
			return line.MoveNode{}, nodeError(key, "mapping key must be a move sequence")
		}
		if list == nil || list.Kind != yaml.SequenceNode {
			return line.MoveNode{}, nodeError(value.Content[1], "continuations of %q must be a list", key.Value)
		}

		continuations := make([]line.MoveNode, 0, len(list.Content))
		for _, item := range list.Content {
			child, err := ParseNode(item)
			if err != nil {
				return line.MoveNode{}, err
			}
			continuations = append(continuations, child)
		}

		node, err := ParseChain(key.Value, continuations)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) && pe.Line == 0 {
				pe.Line, pe.Column = key.Line, key.Column
			}
			return line.MoveNode{}, err
		}
		return node, nil

	default:
		return line.MoveNode{}, nodeError(value, "expected a move sequence or a mapping")
	}
}

// ParseChain splits tokens on whitespace and links them into a single chain.
// The deepest node receives continuations.
func ParseChain(tokens string, continuations []line.MoveNode) (line.MoveNode, error) {
	moves := strings.Fields(tokens)
	if len(moves) == 0 {
		return line.MoveNode{}, &ParseError{Reason: "empty move sequence"}
	}

	node := line.MoveNode{Token: moves[len(moves)-1], Children: continuations}
	for i := len(moves) - 2; i >= 0; i-- {
		node = line.MoveNode{Token: moves[i], Children: []line.MoveNode{node}}
	}
	return node, nil
}

func unwrap(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isAbsent(n *yaml.Node) bool {
	if n == nil || n.Kind == 0 || n.Kind == yaml.DocumentNode {
		return true
	}
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
