package domain

// VoteTotals is a per-event like/dislike tally, always counted fresh.
type VoteTotals struct {
	Likes    int64
	Dislikes int64
}

type Like struct {
	ID      int64
	UserID  int64
	EventID int64
	IsLike  bool
}

// Rating keeps the historical formula: all-likes pins the score at 5,
// no likes (or a tie) yields 0, otherwise the raw like/dislike ratio.
// The ratio is unbounded on purpose; downstream consumers rely on it.
func Rating(likes, dislikes int64) float64 {
	switch {
	case likes > 0 && dislikes == 0:
		return 5
	case likes == 0 || likes == dislikes:
		return 0
	default:
		return float64(likes) / float64(dislikes)
	}
}
