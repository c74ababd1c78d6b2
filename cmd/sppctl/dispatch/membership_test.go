package dispatch

import (
	"bytes"
	"context"
	"slices"
	"testing"
)

// TestLiveMembership tests set, add and remove
func TestLiveMembership(t *testing.T) {
	m := NewLiveMembership(3, 1)
	m.Add(2)
	if got := m.IDs(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("IDs() = %v", got)
	}

	m.Remove(2)
	m.Remove(42)
	if got := m.IDs(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("IDs() after remove = %v", got)
	}

	m.Set([]int{7})
	if got := m.IDs(); !slices.Equal(got, []int{7}) {
		t.Errorf("IDs() after set = %v", got)
	}

	ids := m.IDs()
	ids[0] = 99
	if got := m.IDs(); got[0] != 7 {
		t.Error("IDs() must return a copy")
	}
}

// TestTerminateSecondariesSnapshot tests that removals during the fan-out do
// not change the set of terminated secondaries
func TestTerminateSecondariesSnapshot(t *testing.T) {
	m := NewLiveMembership(1, 2, 3)
	engine := NewEngine(&fakeAPI{}, &bytes.Buffer{})

	var terminated []int
	engine.terminate = func(_ context.Context, id int) error {
		terminated = append(terminated, id)
		if id == 1 {
			m.Remove(2)
		}
		return nil
	}

	if n := engine.TerminateSecondaries(context.Background(), m); n != 3 {
		t.Errorf("TerminateSecondaries() = %d, want 3", n)
	}
	if !slices.Equal(terminated, []int{1, 2, 3}) {
		t.Errorf("terminated = %v, want [1 2 3]", terminated)
	}
	if got := m.IDs(); len(got) != 0 {
		t.Errorf("membership after fan-out = %v, want empty", got)
	}
}

// TestTerminateSecondariesAdditions tests that members added mid-fan-out are skipped
func TestTerminateSecondariesAdditions(t *testing.T) {
	m := NewLiveMembership(1, 2)
	engine := NewEngine(&fakeAPI{}, &bytes.Buffer{})

	count := 0
	engine.terminate = func(_ context.Context, id int) error {
		count++
		m.Add(10 + id)
		return nil
	}

	if n := engine.TerminateSecondaries(context.Background(), m); n != 2 || count != 2 {
		t.Errorf("issued %d (counted %d), want 2", n, count)
	}
	if got := m.IDs(); !slices.Equal(got, []int{11, 12}) {
		t.Errorf("membership = %v, want [11 12]", got)
	}
}

// TestTerminateSecondariesRequests tests the termination request of each id
func TestTerminateSecondariesRequests(t *testing.T) {
	api := &fakeAPI{code: 204}
	var out bytes.Buffer
	m := NewLiveMembership(4, 5)

	if n := NewEngine(api, &out).TerminateSecondaries(context.Background(), m); n != 2 {
		t.Fatalf("TerminateSecondaries() = %d, want 2", n)
	}
	for i, want := range []string{"nfvs/4", "nfvs/5"} {
		if api.calls[i].Method != "DELETE" || api.calls[i].Path != want {
			t.Errorf("request %d = %+v, want DELETE %s", i, api.calls[i], want)
		}
	}
	if out.String() != "Terminate nfv:4.\nTerminate nfv:5.\n" {
		t.Errorf("output = %q", out.String())
	}
}

// TestTerminateSecondariesFailures tests that failures do not stop the fan-out
func TestTerminateSecondariesFailures(t *testing.T) {
	api := &fakeAPI{fail: true}
	m := NewLiveMembership(1, 2, 3)

	if n := NewEngine(api, &bytes.Buffer{}).TerminateSecondaries(context.Background(), m); n != 3 {
		t.Errorf("TerminateSecondaries() = %d, want 3", n)
	}
	if len(api.calls) != 3 {
		t.Errorf("requests = %d, want 3", len(api.calls))
	}
	if got := m.IDs(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("failed terminations must keep members, got %v", got)
	}
}
