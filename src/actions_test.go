package game

import (
	"math"
	"testing"
	"time"

	"blob-arena-server/config"
)

func TestSplitHalvesMassAndEjectsSibling(t *testing.T) {
	now := time.Now()
	w := newBareWorld()
	addTestPlayer(w, "p1")
	original := newTestBlob("p1", 500, 500, 100)
	w.blobs = append(w.blobs, original)

	applySplit(w, "p1", Vector{X: 800, Y: 500}, now)

	owned := w.BlobsOwnedBy("p1")
	if len(owned) != 2 {
		t.Fatalf("blob count after split = %d, want 2", len(owned))
	}
	for _, b := range owned {
		if b.Mass != 50 {
			t.Fatalf("piece mass = %f, want 50", b.Mass)
		}
		if b.Radius != RadiusForMass(50) {
			t.Fatalf("piece radius = %f, want %f", b.Radius, RadiusForMass(50))
		}
		if !b.RecombineAt.Equal(now.Add(config.RECOMBINE_DELAY)) {
			t.Fatalf("recombine eligibility = %v, want now+%v", b.RecombineAt, config.RECOMBINE_DELAY)
		}
	}

	sibling := owned[1]
	wantX := 500 + config.SPLIT_OFFSET_FACTOR*RadiusForMass(50)
	if math.Abs(sibling.Pos.X-wantX) > 1e-9 || sibling.Pos.Y != 500 {
		t.Fatalf("sibling ejected to (%f, %f), want (%f, 500)", sibling.Pos.X, sibling.Pos.Y, wantX)
	}
	if sibling.Vel.X != config.SPLIT_EJECT_IMPULSE || sibling.Vel.Y != 0 {
		t.Fatalf("sibling impulse = (%f, %f), want (%f, 0)", sibling.Vel.X, sibling.Vel.Y, float64(config.SPLIT_EJECT_IMPULSE))
	}
}

func TestSplitImpulseLayersOnCurrentVelocity(t *testing.T) {
	w := newBareWorld()
	addTestPlayer(w, "p1")
	b := newTestBlob("p1", 500, 500, 100)
	b.Vel = Vector{X: 3, Y: 1}
	w.blobs = append(w.blobs, b)

	applySplit(w, "p1", Vector{X: 900, Y: 500}, time.Now())

	sibling := w.BlobsOwnedBy("p1")[1]
	if sibling.Vel.X != 3+config.SPLIT_EJECT_IMPULSE || sibling.Vel.Y != 1 {
		t.Fatalf("sibling velocity = (%f, %f), impulse must layer on top", sibling.Vel.X, sibling.Vel.Y)
	}
}

func TestSplitBelowMinimumMassIsNoOp(t *testing.T) {
	w := newBareWorld()
	addTestPlayer(w, "p1")
	w.blobs = append(w.blobs, newTestBlob("p1", 500, 500, config.MIN_SPLIT_MASS-1))

	applySplit(w, "p1", Vector{X: 800, Y: 500}, time.Now())

	if got := len(w.BlobsOwnedBy("p1")); got != 1 {
		t.Fatalf("blob count = %d, want 1 (below split mass)", got)
	}
}

func TestSplitAtCapIsNoOp(t *testing.T) {
	w := newBareWorld()
	addTestPlayer(w, "p1")
	// Total mass 50 allows at most 2 pieces; the player already has 2.
	w.blobs = append(w.blobs,
		newTestBlob("p1", 500, 500, 25),
		newTestBlob("p1", 600, 500, 25),
	)

	applySplit(w, "p1", Vector{X: 800, Y: 500}, time.Now())

	if got := len(w.BlobsOwnedBy("p1")); got != 2 {
		t.Fatalf("blob count = %d, want 2 (cap reached)", got)
	}
}

func TestSplitNeverExceedsCap(t *testing.T) {
	w := newBareWorld()
	addTestPlayer(w, "p1")
	// Total 105 caps at 4 pieces; all three blobs are eligible but only the
	// first may actually split before the running total hits the cap.
	for i := 0; i < 3; i++ {
		w.blobs = append(w.blobs, newTestBlob("p1", 500+float64(i)*100, 500, 35))
	}

	total := w.TotalMassOf("p1")
	applySplit(w, "p1", Vector{X: 1500, Y: 500}, time.Now())

	got := len(w.BlobsOwnedBy("p1"))
	if got > MaxBlobsForMass(total) {
		t.Fatalf("blob count %d exceeds cap %d", got, MaxBlobsForMass(total))
	}
	if got != 4 {
		t.Fatalf("blob count = %d, want exactly 4 (one split, then capped)", got)
	}
}

func TestSplitForUnknownPlayerIsNoOp(t *testing.T) {
	w := newBareWorld()
	applySplit(w, "ghost", Vector{X: 100, Y: 100}, time.Now())
	if len(w.blobs) != 0 {
		t.Fatal("split for unknown player created blobs")
	}
}

func TestSetTargetForUnknownPlayerIsNoOp(t *testing.T) {
	w := newBareWorld()
	applyCommand(w, command{kind: cmdSetTarget, playerID: "ghost", point: Vector{X: 1, Y: 1}}, time.Now())
	if len(w.players) != 0 {
		t.Fatal("set target for unknown player mutated the world")
	}
}

func TestChatCommandUsesPlayerIdentity(t *testing.T) {
	w := newBareWorld()
	p := addTestPlayer(w, "p1")
	p.Name = "alice"

	applyCommand(w, command{kind: cmdChat, playerID: "p1", text: "hello"}, time.Now())
	applyCommand(w, command{kind: cmdChat, playerID: "ghost", text: "ignored"}, time.Now())

	if len(w.chat) != 1 {
		t.Fatalf("chat length = %d, want 1", len(w.chat))
	}
	if w.chat[0].Name != "alice" || w.chat[0].Text != "hello" {
		t.Fatalf("chat entry = %+v", w.chat[0])
	}
}
