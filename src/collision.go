package game

import (
	"time"

	"blob-arena-server/config"
)

// resolveCollisions runs once per tick, after integration, over the current
// blob set: food consumption first, then the blob pair scan. Consumed blobs
// are removed only after the full pair scan completes.
func resolveCollisions(w *World, now time.Time) {
	resolveFoodCollisions(w)
	resolveBlobCollisions(w, now)
}

// resolveFoodCollisions removes every pellet whose center lies inside a
// blob's radius and grows that blob immediately, so a blob fattened by one
// pellet can reach the next pellet in the same pass.
func resolveFoodCollisions(w *World) {
	eaten := make(map[int]bool)
	for _, blob := range w.blobs {
		for i, food := range w.foods {
			if eaten[i] {
				continue
			}
			if Distance(blob.Pos, food.Pos) < blob.Radius {
				blob.SetMass(blob.Mass + food.Mass)
				eaten[i] = true
			}
		}
	}
	if len(eaten) == 0 {
		return
	}
	kept := w.foods[:0]
	for i, food := range w.foods {
		if !eaten[i] {
			kept = append(kept, food)
		}
	}
	for i := len(kept); i < len(w.foods); i++ {
		w.foods[i] = nil
	}
	w.foods = kept
}

// resolveBlobCollisions examines every unordered blob pair once, in ascending
// index order. Threshold tests use the position/radius snapshot taken before
// the scan, while mass updates apply in place, so a blob that won an earlier
// pair this tick weighs in heavier for later pairs. That cascading order is
// intended and must stay.
func resolveBlobCollisions(w *World, now time.Time) {
	n := len(w.blobs)
	if n < 2 {
		return
	}

	positions := make([]Vector, n)
	radii := make([]float64, n)
	for i, b := range w.blobs {
		positions[i] = b.Pos
		radii[i] = b.Radius
	}

	consumed := make([]bool, n)
	for i := 0; i < n; i++ {
		if consumed[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if consumed[i] {
				break
			}
			if consumed[j] {
				continue
			}
			a, b := w.blobs[i], w.blobs[j]
			dist := Distance(positions[i], positions[j])

			if a.OwnerID == b.OwnerID {
				if a.OwnerID == "" {
					continue
				}
				// Recombination: both timers elapsed and the pair overlaps.
				if now.Before(a.RecombineAt) || now.Before(b.RecombineAt) {
					continue
				}
				if dist < radii[i] || dist < radii[j] {
					a.SetMass(a.Mass + b.Mass)
					consumed[j] = true
				}
				continue
			}

			// Engulfment: the larger blob wins only with a clear mass margin
			// and the smaller blob's far edge well inside it, not merely
			// touching.
			wi, li := i, j
			if w.blobs[j].Mass > w.blobs[i].Mass {
				wi, li = j, i
			}
			winner, loser := w.blobs[wi], w.blobs[li]
			if winner.Mass <= loser.Mass*config.ENGULF_MASS_RATIO {
				continue
			}
			if dist < radii[wi]-config.ENGULF_DEPTH_FACTOR*radii[li] {
				winner.SetMass(winner.Mass + loser.Mass)
				consumed[li] = true
			}
		}
	}

	kept := w.blobs[:0]
	for i, b := range w.blobs {
		if !consumed[i] {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.blobs); i++ {
		w.blobs[i] = nil
	}
	w.blobs = kept
}
