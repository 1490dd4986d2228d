package meta

// ColorTable is an indexed lookup table mapping sample values to display
// color components.
type ColorTable interface {
	// Bits returns the table depth, 8 or 16.
	Bits() int

	// ComponentCount returns the number of color components.
	ComponentCount() int

	// Length returns the number of entries per component.
	Length() int
}

// ColorTable8 is an 8-bit palette, one slice per color component.
type ColorTable8 [][]uint8

func (c ColorTable8) Bits() int { return 8 }
func (c ColorTable8) ComponentCount() int { return len(c) }

func (c ColorTable8) Length() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// ColorTable16 is a 16-bit palette, one slice per color component.
type ColorTable16 [][]uint16

func (c ColorTable16) Bits() int { return 16 }
func (c ColorTable16) ComponentCount() int { return len(c) }

func (c ColorTable16) Length() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}
