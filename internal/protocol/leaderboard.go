package protocol

import (
	"encoding/json"
	"fmt"
)

type LeaderboardEntry struct {
	Name   string `json:"username"`
	Pixels uint32 `json:"score"`
	Rank   uint32 `json:"rank"`
}

// UnmarshalJSON accepts both the user object served today and the older
// ["name", pixels] tuple.
func (e *LeaderboardEntry) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err == nil {
		if len(tuple) != 2 {
			return fmt.Errorf("leaderboard tuple: want 2 items, got %d", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &e.Name); err != nil {
			return fmt.Errorf("leaderboard name: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &e.Pixels); err != nil {
			return fmt.Errorf("leaderboard pixels: %w", err)
		}
		e.Rank = 0
		return nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	e.Name, e.Pixels, e.Rank = u.Username, u.Score, u.Rank
	return nil
}

// Leaderboard is ordered best first. Ranks missing from the payload are
// filled from position.
type Leaderboard []LeaderboardEntry

func (l Leaderboard) Normalize() Leaderboard {
	for i := range l {
		if l[i].Rank == 0 {
			l[i].Rank = uint32(i + 1)
		}
	}
	return l
}
