package game

import (
	"sort"

	"blob-arena-server/config"
)

// computeLeaderboard sums mass per owning player across all live blobs and
// returns the top entries sorted descending by mass. The stable sort keeps
// ties in player join order. Players with zero blobs produce no entry.
func computeLeaderboard(w *World) []LeaderboardEntry {
	totals := make(map[string]float64, len(w.players))
	for _, b := range w.blobs {
		totals[b.OwnerID] += b.Mass
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, playerID := range w.playerOrder {
		mass, ok := totals[playerID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: playerID,
			Name:     w.players[playerID].Name,
			Mass:     mass,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Mass > entries[j].Mass
	})
	if len(entries) > config.LEADERBOARD_SIZE {
		entries = entries[:config.LEADERBOARD_SIZE]
	}
	return entries
}
