package fault

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFailDisarmed(t *testing.T) {
	Reset()
	for i := range 10 {
		if Fail() {
			t.Fatalf("Fail() = true on call %d with no failure armed", i)
		}
	}
}

func TestInjectNth(t *testing.T) {
	t.Cleanup(Reset)

	tests := []struct {
		name string
		n    int
	}{
		{"first", 1},
		{"second", 2},
		{"fifth", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Inject(tt.n)
			for i := 1; i <= tt.n+3; i++ {
				got := Fail()
				want := i == tt.n
				if got != want {
					t.Errorf("call %d: Fail() = %v, want %v", i, got, want)
				}
			}
			if countdown.Load() != 0 {
				t.Error("injector still armed after the failure fired")
			}
		})
	}
}

func TestInjectNegativeDisarms(t *testing.T) {
	t.Cleanup(Reset)
	Inject(-3)
	for range 5 {
		if Fail() {
			t.Fatal("Inject(-3) armed the injector")
		}
	}
}

func TestFailConcurrentSingleWinner(t *testing.T) {
	t.Cleanup(Reset)
	Inject(50)

	var wg sync.WaitGroup
	var failures atomic.Int32
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Fail() {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := failures.Load(); got != 1 {
		t.Errorf("observed %d failures, want exactly 1", got)
	}
}
