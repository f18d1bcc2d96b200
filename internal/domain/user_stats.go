package domain

import "time"

// UserStats is the singleton per-profile aggregate of study activity.
// It is read freely but mutated only inside review ledger transactions,
// so the streak and the daily counters can never drift apart.
//
// LastStudyDate holds a "2006-01-02" calendar date derived from trusted
// time, or the empty string if the learner has never studied. The streak
// law treats an unparsable value as a reset signal rather than an error.
type UserStats struct {
	StreakDays        int       `json:"streak_days"`
	LastStudyDate     string    `json:"last_study_date"`
	TodayStudiedCount int       `json:"today_studied_count"`
	TodayReviewCount  int       `json:"today_review_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewUserStats returns the zero-valued stats row for a fresh profile.
func NewUserStats() *UserStats {
	return &UserStats{
		UpdatedAt: time.Now().UTC(),
	}
}
