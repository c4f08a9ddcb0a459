package notation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
)

func tokens(nodes []line.MoveNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Token)
	}
	return out
}

func TestParse_LinearLine(t *testing.T) {
	tree, err := Parse("e4 e5 Nf3")
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, 1, tree.Leaves())

	e4 := tree.Children[0]
	assert.Equal(t, "e4", e4.Token)
	require.Len(t, e4.Children, 1)
	assert.Equal(t, "e5", e4.Children[0].Token)
	require.Len(t, e4.Children[0].Children, 1)
	nf3 := e4.Children[0].Children[0]
	assert.Equal(t, "Nf3", nf3.Token)
	assert.Empty(t, nf3.Children)
}

func TestParse_BranchingMapping(t *testing.T) {
	tree, err := Parse("c3:\n  - Bc5 d4\n  - d6 d4\n")
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	c3 := tree.Children[0]
	assert.Equal(t, "c3", c3.Token)
	require.Len(t, c3.Children, 2)
	assert.Equal(t, []string{"Bc5", "d6"}, tokens(c3.Children))
	assert.Equal(t, "d4", c3.Children[0].Children[0].Token)
	assert.Equal(t, 2, tree.Leaves())
}

func TestParse_PrefixChainCarriesContinuations(t *testing.T) {
	text := `
e4 e5 Nf3 Nc6 c3:
  - Bc5 d4 exd4
  - d6 d4 Nf6 h3:
    - Be6? d5
    - Nxe4? d5
`
	tree, err := Parse(text)
	require.NoError(t, err)

	node := tree.Children[0]
	for _, want := range []string{"e4", "e5", "Nf3", "Nc6"} {
		assert.Equal(t, want, node.Token)
		require.Len(t, node.Children, 1, "non-final token %s must have one child", want)
		node = node.Children[0]
	}
	assert.Equal(t, "c3", node.Token)
	assert.Equal(t, []string{"Bc5", "d6"}, tokens(node.Children))
	assert.Equal(t, 3, tree.Leaves())
	assert.Equal(t, 11, tree.Depth())
}

func TestParse_SingleElementListIsAPlainChain(t *testing.T) {
	branched, err := Parse("e4:\n  - e5 Nf3\n")
	require.NoError(t, err)
	plain, err := Parse("e4 e5 Nf3")
	require.NoError(t, err)

	assert.Equal(t, plain, branched)
}

func TestParse_OnlyFirstKeyIsHonoured(t *testing.T) {
	tree, err := Parse("e4:\n  - e5\nd4:\n  - d5\n  - Nf6\n")
	require.NoError(t, err)

	require.Len(t, tree.Children, 1)
	assert.Equal(t, "e4", tree.Children[0].Token)
	assert.Equal(t, []string{"e5"}, tokens(tree.Children[0].Children))
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	tree, err := Parse(`"e4   e5\tNf3 "`)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Depth())
}

func TestParse_NoDocument(t *testing.T) {
	for _, text := range []string{"", "   \n", "~", "null"} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			assert.ErrorIs(t, err, lberrors.ErrNoDocument)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"yaml syntax", "e4: [e5"},
		{"top level list", "- e4\n- d4\n"},
		{"mapping value not a list", "e4: e5\n"},
		{"mapping value null", "e4:\n"},
		{"empty list entry", "e4:\n  -\n"},
		{"nested list", "e4:\n  - - e5\n"},
		{"empty key", "'':\n  - e5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, lberrors.ErrDocumentParse)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestParseChain(t *testing.T) {
	tail := []line.MoveNode{{Token: "x"}, {Token: "y"}}

	node, err := ParseChain("a b", tail)
	require.NoError(t, err)
	assert.Equal(t, "a", node.Token)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "b", node.Children[0].Token)
	assert.Equal(t, tail, node.Children[0].Children)

	_, err = ParseChain("  ", nil)
	assert.ErrorIs(t, err, lberrors.ErrDocumentParse)
}
