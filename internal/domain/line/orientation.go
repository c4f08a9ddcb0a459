package line

// Orientation is the side whose decisions a tree consistently represents.
type Orientation int

const (
	OrientationUnset Orientation = iota
	OrientationWhite
	OrientationBlack
	OrientationAmbiguous
)

func (o Orientation) String() string {
	switch o {
	case OrientationWhite:
		return "white"
	case OrientationBlack:
		return "black"
	case OrientationAmbiguous:
		return "ambiguous"
	default:
		return "unset"
	}
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*o = OrientationWhite
	case "black":
		*o = OrientationBlack
	case "ambiguous":
		*o = OrientationAmbiguous
	default:
		*o = OrientationUnset
	}
	return nil
}

// Opposite flips white and black and leaves the sentinels alone.
func (o Orientation) Opposite() Orientation {
	switch o {
	case OrientationWhite:
		return OrientationBlack
	case OrientationBlack:
		return OrientationWhite
	default:
		return o
	}
}

// Decided reports whether o names a side.
func (o Orientation) Decided() bool {
	return o == OrientationWhite || o == OrientationBlack
}
