package pitch

import "testing"

func TestHistoryRingAppendAndOrder(t *testing.T) {
	var r historyRing
	for i := 0; i < 5; i++ {
		r.append(float64(i), float64(i)*10, 100.0+float64(i))
	}
	if r.count != 5 {
		t.Fatalf("count = %d, want 5", r.count)
	}

	var got []float64
	r.forEach(func(e historyEntry) {
		got = append(got, e.centsError)
	})
	for i, v := range got {
		if v != float64(i) {
			t.Errorf("entry %d: centsError = %v, want %v", i, v, float64(i))
		}
	}
}

func TestHistoryRingSaturatesAndOverwrites(t *testing.T) {
	var r historyRing
	for i := 0; i < HistoryCapacity+10; i++ {
		r.append(float64(i), float64(i), 100.0)
	}
	if r.count != HistoryCapacity {
		t.Fatalf("count = %d, want capacity %d", r.count, HistoryCapacity)
	}

	var got []float64
	r.forEach(func(e historyEntry) {
		got = append(got, e.centsError)
	})
	if len(got) != HistoryCapacity {
		t.Fatalf("forEach visited %d entries, want %d", len(got), HistoryCapacity)
	}
	// Oldest surviving entry should be index 10 (0..9 were overwritten).
	if got[0] != 10 {
		t.Errorf("oldest entry centsError = %v, want 10", got[0])
	}
	if got[len(got)-1] != float64(HistoryCapacity+9) {
		t.Errorf("newest entry centsError = %v, want %v", got[len(got)-1], HistoryCapacity+9)
	}
}

func TestHistoryRingEmptyForEachNoOp(t *testing.T) {
	var r historyRing
	called := false
	r.forEach(func(historyEntry) { called = true })
	if called {
		t.Errorf("forEach on empty ring should not invoke callback")
	}
}
