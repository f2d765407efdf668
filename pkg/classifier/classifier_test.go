package classifier

import (
	"regexp"
	"sync"
	"testing"
)

func TestClassifyReturnsOneOfTwoVerdicts(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		v := c.Classify("Alice")
		if v != VerdictNaughty && v != VerdictNice {
			t.Fatalf("unexpected verdict: %q", v)
		}
	}
}

func TestClassifyDistribution(t *testing.T) {
	const n = 10000
	c := New()

	naughty := 0
	for i := 0; i < n; i++ {
		if c.Classify("Alice") == VerdictNaughty {
			naughty++
		}
	}

	// For n=10000 fair flips the standard deviation is 50, so a band of
	// +/-250 (5 sigma) around n/2 practically never fails on a fair coin.
	lo, hi := n/2-250, n/2+250
	if naughty < lo || naughty > hi {
		t.Errorf("naughty count %d outside [%d, %d], coin looks biased", naughty, lo, hi)
	}
}

func TestSeededClassifierIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 50; i++ {
		va, vb := a.Classify("Bob"), b.Classify("Bob")
		if va != vb {
			t.Fatalf("call %d: seeded classifiers diverged: %q vs %q", i, va, vb)
		}
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v := c.Classify("Carol"); v != VerdictNaughty && v != VerdictNice {
					t.Errorf("unexpected verdict: %q", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSentence(t *testing.T) {
	tests := []struct {
		name    string
		verdict Verdict
		want    string
	}{
		{"Alice", VerdictNice, "Alice, you have been very nice this year!"},
		{"Bob", VerdictNaughty, "Bob, you have been very naughty this year!"},
		{"Grinch McGee", VerdictNaughty, "Grinch McGee, you have been very naughty this year!"},
	}

	re := regexp.MustCompile(`^.+, you have been very (naughty|nice) this year!$`)
	for _, tt := range tests {
		got := Sentence(tt.name, tt.verdict)
		if got != tt.want {
			t.Errorf("Sentence(%q, %q) = %q, want %q", tt.name, tt.verdict, got, tt.want)
		}
		if !re.MatchString(got) {
			t.Errorf("Sentence(%q, %q) = %q does not match response format", tt.name, tt.verdict, got)
		}
	}
}
