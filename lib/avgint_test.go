package lib

import "testing"

func TestAverageInt(t *testing.T) {
	avg := &AverageInt64{}

	if mean := avg.Mean(); mean != 0 {
		t.Errorf("expected 0, got %v", mean)
	} else if variance := avg.Variance(); variance != 0 {
		t.Errorf("expected 0, got %v", variance)
	} else if sd := avg.SD(); sd != 0 {
		t.Errorf("expected 0, got %v", sd)
	}

	// start populating.
	for i := 1; i <= 100; i++ {
		avg.Add(int64(i))
	}
	// validate
	if x, y := int64(1), avg.Min(); x != y {
		t.Errorf("Min() expected %v, got %v", x, y)
	} else if x, y := int64(100), avg.Max(); x != y {
		t.Errorf("Max() expected %v, got %v", x, y)
	} else if x, y := int64(100), avg.Samples(); x != y {
		t.Errorf("Samples() expected %v, got %v", x, y)
	} else if x, y := int64(100*101)/2, avg.Sum(); x != y {
		t.Errorf("Sum() expected %v, got %v", x, y)
	} else if x, y := avg.Sum()/avg.Samples(), avg.Mean(); x != y {
		t.Errorf("Mean() expected %v, got %v", x, y)
	}

	// exact variance on a small sample set.
	avg = &AverageInt64{}
	for _, sample := range []int64{2, 4, 6, 8} {
		avg.Add(sample)
	}
	if x, y := int64(5), avg.Mean(); x != y {
		t.Errorf("Mean() expected %v, got %v", x, y)
	} else if x, y := 5.0, avg.Variance(); x != y {
		t.Errorf("Variance() expected %v, got %v", x, y)
	}

	// stats
	stats := avg.Stats()
	if x, y := int64(2), stats["min"].(int64); x != y {
		t.Errorf("Min() expected %v, got %v", x, y)
	} else if x, y := int64(8), stats["max"].(int64); x != y {
		t.Errorf("Max() expected %v, got %v", x, y)
	} else if x, y := int64(4), stats["samples"].(int64); x != y {
		t.Errorf("Samples() expected %v, got %v", x, y)
	} else if x, y := 5.0, stats["variance"].(float64); x != y {
		t.Errorf("Variance() expected %v, got %v", x, y)
	}
}

func BenchmarkAvgintAdd(b *testing.B) {
	avg := &AverageInt64{}
	for i := 0; i < b.N; i++ {
		avg.Add(int64(i))
	}
}
