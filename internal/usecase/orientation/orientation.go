// Package orientation decides which side a line tree is written for.
//
// Every branch point commits the walk to the side choosing between the
// branches. A tree whose branch points all belong to one side yields that
// side; mixing sides yields OrientationAmbiguous and a tree without any
// branch point yields OrientationUnset.
package orientation

import "linebook/internal/domain/line"

// Infer walks tree from the starting position, where white is to move.
func Infer(tree line.RootedMoveTree) line.Orientation {
	committed := line.OrientationUnset
	if len(tree.Children) > 1 {
		committed = line.OrientationWhite
	}
	return inferChildren(tree.Children, line.OrientationBlack, committed)
}

// inferChildren visits nodes played by the side opposite to next; next is
// the side to move after each of them.
func inferChildren(nodes []line.MoveNode, next, committed line.Orientation) line.Orientation {
	result := committed
	for i, n := range nodes {
		r := infer(n, next, committed)
		if r == line.OrientationAmbiguous {
			return r
		}
		if i == 0 {
			result = r
			continue
		}
		if r != result {
			return line.OrientationAmbiguous
		}
	}
	return result
}

func infer(n line.MoveNode, mover, committed line.Orientation) line.Orientation {
	switch len(n.Children) {
	case 0:
		return committed
	case 1:
		return infer(n.Children[0], mover.Opposite(), committed)
	default:
		if committed.Decided() && committed != mover {
			return line.OrientationAmbiguous
		}
		return inferChildren(n.Children, mover.Opposite(), mover)
	}
}

// Resolve returns o when it names a side and fallback otherwise.
func Resolve(o, fallback line.Orientation) line.Orientation {
	if o.Decided() {
		return o
	}
	return fallback
}
