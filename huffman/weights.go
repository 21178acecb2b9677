package huffman

// NumSymbols is the size of the move-rank alphabet: every legal move from
// any reachable position is assigned an index in [0, NumSymbols).
const NumSymbols = 256

// WeightTable maps a move-rank symbol to a nonnegative frequency weight.
type WeightTable [NumSymbols]uint64

// baselineWeights is the empirical move-rank histogram gathered from the
// Lichess game database: index 0 (the most favored rank by the move
// ranker) is played far more often than any other index, and the
// distribution decays to zero past roughly index 116.
var baselineWeights = WeightTable{
	225883932, 134956126, 89041269, 69386238, 57040790, 44974559, 36547155, 31624920,
	28432772, 26540493, 24484873, 23058034, 23535272, 20482457, 20450172, 18316057,
	17214833, 16964761, 16530028, 15369510, 14178440, 14275714, 13353306, 12829602,
	13102592, 11932647, 10608657, 10142459, 8294594, 7337490, 6337744, 5380717,
	4560556, 3913313, 3038767, 2480514, 1951026, 1521451, 1183252, 938708,
	673339, 513153, 377299, 276996, 199682, 144602, 103313, 73046,
	52339, 36779, 26341, 18719, 13225, 9392, 6945, 4893,
	3698, 2763, 2114, 1631, 1380, 1090, 887, 715,
	590, 549, 477, 388, 351, 319, 262, 236,
	200, 210, 153, 117, 121, 121, 115, 95,
	75, 67, 55, 50, 55, 33, 33, 30,
	32, 28, 29, 27, 21, 15, 9, 10,
	12, 12, 8, 7, 2, 4, 5, 5,
	0, 5, 1, 1, 0, 1, 2, 1,
	1, 0, 0, 1, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// BaselineWeights returns a fresh copy of the canonical 256-entry move-rank
// weight table. Both the static codec and the dynamic codec's per-color
// tables start from this value.
func BaselineWeights() WeightTable {
	return baselineWeights
}
