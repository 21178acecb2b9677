package huffman

import "testing"

func TestBaselineWeightsIndexZero(t *testing.T) {
	w := BaselineWeights()
	if w[0] != 225883932 {
		t.Fatalf("BaselineWeights()[0] = %d, want 225883932", w[0])
	}
}

func TestBaselineWeightsDecayToZero(t *testing.T) {
	w := BaselineWeights()
	for i := 116; i < NumSymbols; i++ {
		if w[i] > 5 {
			// every entry from 116 on is zero in the baseline table; the
			// check tolerates a small tail value so it does not pin the
			// exact index where the histogram reaches zero.
			t.Fatalf("weight[%d] = %d, expected a small tail value", i, w[i])
		}
	}
}

func TestBaselineWeightsCopyIsIndependent(t *testing.T) {
	a := BaselineWeights()
	a[0] = 1
	b := BaselineWeights()
	if b[0] != 225883932 {
		t.Fatalf("mutating a returned table affected the baseline: %d", b[0])
	}
}

func TestCodebookDeterministic(t *testing.T) {
	w := BaselineWeights()
	book1, _ := BuildCodebook(w)
	book2, _ := BuildCodebook(w)
	if book1 != book2 {
		t.Fatal("BuildCodebook(w) is not a pure function of w")
	}
}

func TestCodebookShortestCodeIsIndexZero(t *testing.T) {
	book, _ := BuildCodebook(BaselineWeights())
	for i := 1; i < NumSymbols; i++ {
		if book[i].Size < book[0].Size {
			t.Fatalf("symbol %d has a shorter code (%d bits) than symbol 0 (%d bits)",
				i, book[i].Size, book[0].Size)
		}
	}
}

func TestCodebookRoundTrip(t *testing.T) {
	w := BaselineWeights()
	book, tree := BuildCodebook(w)

	for symbol := 0; symbol < NumSymbols; symbol++ {
		cw := book[symbol]
		pos := 0
		got, err := tree.Decode(func() (int, error) {
			bit := int((cw.Bits >> uint(int(cw.Size)-1-pos)) & 1)
			pos++
			return bit, nil
		})
		if err != nil {
			t.Fatalf("symbol %d: decode error: %v", symbol, err)
		}
		if got != symbol {
			t.Fatalf("symbol %d: decoded as %d", symbol, got)
		}
	}
}

func TestZeroWeightSymbolsAreReachable(t *testing.T) {
	var w WeightTable // all zero
	book, tree := BuildCodebook(w)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if book[symbol].Size == 0 {
			t.Fatalf("symbol %d has no code in an all-zero-weight table", symbol)
		}
	}
	_ = tree
}
