package audiopred

import "testing"

func TestLiteralOrder2Scenario(t *testing.T) {
	// Order-2, samples [100,100,100,100], zero history. Predictions from
	// 2*h[0]-h[1] are 0, 200, 100, 100 -> residuals [100, -100, 0, 0].
	p, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHistory()
	samples := []int32{100, 100, 100, 100}
	want := []int32{100, -100, 0, 0}

	for i, s := range samples {
		pred := p.Predict(h)
		resid := s - pred
		if resid != want[i] {
			t.Errorf("sample %d: residual = %d, want %d", i, resid, want[i])
		}
		h.Advance(s)
	}
}

func TestOrderOutOfRangeRejected(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatal("expected error for negative order")
	}
	if _, err := New(4); err == nil {
		t.Fatal("expected error for order 4")
	}
}

func TestDeterministicRoundTrip(t *testing.T) {
	for order := 0; order <= MaxOrder; order++ {
		p, err := New(order)
		if err != nil {
			t.Fatal(err)
		}
		encH := NewHistory()
		decH := NewHistory()
		samples := []int32{0, 32767, -32768, 1234, -1234, 5, -5, 0, 100, -100}

		var residuals []int32
		for _, s := range samples {
			pred := p.Predict(encH)
			residuals = append(residuals, s-pred)
			encH.Advance(s)
		}

		for i, r := range residuals {
			pred := p.Predict(decH)
			got := pred + r
			if got != samples[i] {
				t.Fatalf("order %d sample %d: reconstructed %d, want %d", order, i, got, samples[i])
			}
			decH.Advance(got)
		}
	}
}

func TestPredictionIsClamped(t *testing.T) {
	p, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	h := &History{h: [3]int32{32767, -32768, 32767}}
	pred := p.Predict(h)
	if pred < -32768 || pred > 32767 {
		t.Fatalf("prediction %d out of 16-bit range", pred)
	}
}
