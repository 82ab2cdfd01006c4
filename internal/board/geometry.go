package board

// ThroneSquare is the single center square. Only the king may occupy it;
// once vacated it reverts to the Throne marker.
var ThroneSquare = NewSquare(4, 4)

// citadelCoords lists the 16 citadel squares, four at the middle of each
// side. Pawns may never land on them; the king may land on one only if it
// is also an escape square.
var citadelCoords = [16][2]int{
	{0, 3}, {0, 4}, {0, 5}, {1, 4},
	{8, 3}, {8, 4}, {8, 5}, {7, 4},
	{3, 8}, {4, 8}, {5, 8}, {4, 7},
	{3, 0}, {4, 0}, {5, 0}, {4, 1},
}

// escapeCoords lists the 16 escape squares on the board edge. The king
// reaching any of them ends the game in White's favor.
var escapeCoords = [16][2]int{
	{0, 1}, {0, 2}, {0, 6}, {0, 7},
	{8, 1}, {8, 2}, {8, 6}, {8, 7},
	{1, 0}, {2, 0}, {6, 0}, {7, 0},
	{1, 8}, {2, 8}, {6, 8}, {7, 8},
}

// Lookup tables built once at init.
var (
	citadelAt [NumSquares]bool
	escapeAt  [NumSquares]bool

	// EscapeSquares holds the escape squares for distance computations.
	EscapeSquares [16]Square
)

func init() {
	for _, rc := range citadelCoords {
		citadelAt[NewSquare(rc[0], rc[1])] = true
	}
	for i, rc := range escapeCoords {
		sq := NewSquare(rc[0], rc[1])
		escapeAt[sq] = true
		EscapeSquares[i] = sq
	}
}

// IsCitadel returns true if the square is a citadel.
func IsCitadel(sq Square) bool {
	return sq < NoSquare && citadelAt[sq]
}

// IsEscape returns true if the square is an escape square.
func IsEscape(sq Square) bool {
	return sq < NoSquare && escapeAt[sq]
}

// directions are the four orthogonal steps as (row, col) deltas.
var directions = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Directions returns the four orthogonal (row, col) step deltas.
func Directions() [4][2]int {
	return directions
}

// EscapeDistance returns the minimum Manhattan distance from the given
// square to any escape square.
func EscapeDistance(sq Square) int {
	min := 4 * Size
	r, c := sq.Row(), sq.Col()
	for _, esc := range EscapeSquares {
		d := absInt(r-esc.Row()) + absInt(c-esc.Col())
		if d < min {
			min = d
		}
	}
	return min
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
