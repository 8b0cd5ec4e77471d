package client

import (
	"math"
	"math/rand"
	"testing"

	"github.com/uripeled2/classroom-participation-app/internal/model"
)

func raised(id string) model.Student {
	return model.Student{ID: id, HasRaisedHand: true}
}

func TestCandidates(t *testing.T) {
	students := []model.Student{
		raised("a"),
		{ID: "b"}, // hand down
		raised("c"),
	}

	got := Candidates(students, "")
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}

	got = Candidates(students, "a")
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("candidates excluding a = %+v, want just c", got)
	}
}

func TestPick_EmptySet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, ok := Pick(nil, "", rng); ok {
		t.Error("pick from no students must report false")
	}

	students := []model.Student{{ID: "a"}, {ID: "b"}}
	if _, ok := Pick(students, "", rng); ok {
		t.Error("pick with no raised hands must report false")
	}

	// The only raised hand is the excluded current selection.
	students = []model.Student{raised("a")}
	if _, ok := Pick(students, "a", rng); ok {
		t.Error("next-student pick with no other hands must report false")
	}
}

func TestPick_Uniform(t *testing.T) {
	// Over many trials each of n candidates is picked with probability
	// close to 1/n.
	const trials = 50000
	students := []model.Student{
		raised("a"), raised("b"), raised("c"), raised("d"), raised("e"),
	}

	rng := rand.New(rand.NewSource(42))
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		id, ok := Pick(students, "", rng)
		if !ok {
			t.Fatal("pick failed with a non-empty candidate set")
		}
		counts[id]++
	}

	if len(counts) != len(students) {
		t.Fatalf("only %d of %d candidates were ever picked", len(counts), len(students))
	}
	expected := float64(trials) / float64(len(students))
	for id, n := range counts {
		// 5% tolerance, far beyond the expected statistical noise.
		if math.Abs(float64(n)-expected) > expected*0.05 {
			t.Errorf("candidate %s picked %d times, expected about %.0f", id, n, expected)
		}
	}
}

func TestPick_ExcludesCurrentSelection(t *testing.T) {
	students := []model.Student{raised("a"), raised("b"), raised("c")}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		id, ok := Pick(students, "b", rng)
		if !ok {
			t.Fatal("pick failed")
		}
		if id == "b" {
			t.Fatal("picked the excluded current selection")
		}
	}
}
