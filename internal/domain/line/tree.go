package line

// MoveNode is one authored move token and the moves that may follow it.
type MoveNode struct {
	Token    string     `json:"token" bson:"token"`
	Children []MoveNode `json:"children,omitempty" bson:"children,omitempty"`
}

// RootedMoveTree holds the moves available from the starting position.
type RootedMoveTree struct {
	Children []MoveNode `json:"children" bson:"children"`
}

// PositionNode is a MoveNode after it has been played on the board.
// Token keeps the blunder marker, Position is the serialized board after the move.
type PositionNode struct {
	Token     string         `json:"token" bson:"token"`
	IsBlunder bool           `json:"is_blunder" bson:"is_blunder"`
	Position  string         `json:"position" bson:"position"`
	Children  []PositionNode `json:"children,omitempty" bson:"children,omitempty"`
}

// RootedPositionTree is the compiled form of a RootedMoveTree.
type RootedPositionTree struct {
	Start    string         `json:"start" bson:"start"`
	Children []PositionNode `json:"children" bson:"children"`
}

// Depth returns the number of plies on the longest line of the tree.
func (t RootedMoveTree) Depth() int {
	return depth(t.Children)
}

func depth(nodes []MoveNode) int {
	best := 0
	for _, n := range nodes {
		if d := 1 + depth(n.Children); d > best {
			best = d
		}
	}
	return best
}

// Leaves returns the number of leaf nodes, i.e. the number of distinct lines.
func (t RootedMoveTree) Leaves() int {
	return leaves(t.Children)
}

func leaves(nodes []MoveNode) int {
	count := 0
	for _, n := range nodes {
		if len(n.Children) == 0 {
			count++
			continue
		}
		count += leaves(n.Children)
	}
	return count
}
