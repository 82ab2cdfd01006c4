package board

// Zobrist hash keys for position hashing.
// Uses a PRNG with a fixed seed for reproducibility.
var (
	zobristCell [numCellStates][NumSquares]uint64 // [Cell][Square], including Empty and Throne
	zobristSide uint64                            // XOR when Black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0xA13B7C19D4E5F260) // Fixed seed

	for c := Empty; c < numCellStates; c++ {
		for sq := 0; sq < NumSquares; sq++ {
			zobristCell[c][sq] = rng.next()
		}
	}
	zobristSide = rng.next()
}

// ZobristCell returns the Zobrist key for a cell state on a square.
func ZobristCell(c Cell, sq Square) uint64 {
	return zobristCell[c][sq]
}

// ZobristSide returns the turn-parity Zobrist key.
func ZobristSide() uint64 {
	return zobristSide
}
