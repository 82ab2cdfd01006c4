package engine

import (
	"math"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// Score constants. Terminal scores sit strictly outside the heuristic band
// so proven wins and losses always dominate heuristic estimates.
const (
	WinScore     = 100000
	HeuristicMax = 50000

	// Infinity is the initial alpha-beta window bound. It exceeds any
	// depth-adjusted terminal score the search can produce.
	Infinity = WinScore + 1000
)

// Weights is the 12-element heuristic weight vector. Indices are fixed so
// vectors can be stored, tuned and exchanged as plain arrays.
type Weights [12]float64

// Weight vector indices.
const (
	WEscapeRay    = iota // empty escape cell seen on a king ray
	WCitadelRay          // empty citadel on a ray, ray continues past it
	WThroneRay           // empty throne on a ray, ray continues past it
	WWhiteFar            // white soldier or king blocking a ray at distance
	WWhiteNear           // white soldier or king adjacent to the king
	WBlackFar            // black soldier blocking a ray at distance
	WBlackNear           // black soldier adjacent to the king
	WMaterialScale       // multiplier for the material term
	WPositionScale       // multiplier for the king-ray and distance terms
	WWhiteCount          // per white soldier
	WBlackCount          // per black soldier
	WEscapeDist          // per unit of king-to-escape Manhattan distance
)

// DefaultWeights returns the tuned default weight vector.
func DefaultWeights() Weights {
	return Weights{5000, -300, -500, -50, -150, 100, -800, 1, 1, 80, -60, -200}
}

// Evaluate scores a position from White's perspective. Terminal states map
// to the extreme constants; everything else is a weighted sum of king ray
// freedom, material and escape distance, clamped into the heuristic band.
func Evaluate(b *board.Board, w *Weights) int {
	switch b.Turn() {
	case board.WhiteWin:
		return WinScore
	case board.BlackWin:
		return -WinScore
	}

	kingSq := b.KingSquare()
	if kingSq == board.NoSquare {
		return -WinScore
	}

	position := kingRayScore(b, w, kingSq)
	position += w[WEscapeDist] * float64(board.EscapeDistance(kingSq))
	material := w[WWhiteCount]*float64(b.WhiteCount()) + w[WBlackCount]*float64(b.BlackCount())

	total := w[WMaterialScale]*material + w[WPositionScale]*position

	score := int(math.Round(total))
	if score > HeuristicMax {
		score = HeuristicMax
	}
	if score < -HeuristicMax {
		score = -HeuristicMax
	}
	return score
}

// kingRayScore casts the four orthogonal rays from the king. The first
// non-empty cell on a ray decides its contribution and stops the scan,
// except empty thrones and citadels, which contribute and let the ray
// continue.
func kingRayScore(b *board.Board, w *Weights, kingSq board.Square) float64 {
	var score float64
	kr, kc := kingSq.Row(), kingSq.Col()

	for _, d := range board.Directions() {
		for steps := 1; steps < board.Size; steps++ {
			r, c := kr+d[0]*steps, kc+d[1]*steps
			if r < 0 || r >= board.Size || c < 0 || c >= board.Size {
				break
			}
			sq := board.NewSquare(r, c)
			cell := b.At(sq)
			adjacent := steps == 1

			if cell == board.Empty && board.IsEscape(sq) {
				score += w[WEscapeRay]
				break
			}
			if cell == board.Throne {
				score += w[WThroneRay]
				continue
			}
			if cell == board.Empty && board.IsCitadel(sq) {
				score += w[WCitadelRay]
				continue
			}
			if cell == board.BlackSoldier {
				if adjacent {
					score += w[WBlackNear]
				} else {
					score += w[WBlackFar]
				}
				break
			}
			if cell == board.WhiteSoldier || cell == board.King {
				if adjacent {
					score += w[WWhiteNear]
				} else {
					score += w[WWhiteFar]
				}
				break
			}
		}
	}
	return score
}
