package dto

import "time"

// StudentStats carries the per-axis counters accumulated for one student
// over a month of sessions.
type StudentStats struct {
	Present       int `json:"present"`
	Absent        int `json:"absent"`
	Late          int `json:"late"`
	Makeup        int `json:"makeup"`
	Excellent     int `json:"excellent"`
	Good          int `json:"good"`
	Average       int `json:"average"`
	Poor          int `json:"poor"`
	Calm          int `json:"calm"`
	Medium        int `json:"medium"`
	Undisciplined int `json:"undisciplined"`
	Reviewed      int `json:"reviewed"`
}

// RankingEntry is one student's position on the monthly leaderboard.
type RankingEntry struct {
	Rank      int          `json:"rank"`
	StudentID uint         `json:"student_id"`
	FullName  string       `json:"full_name"`
	Score     float64      `json:"score"`
	Stats     StudentStats `json:"stats"`
}

// RankingResponse is the monthly leaderboard. SessionCount distinguishes a
// month without sessions from an empty roster.
type RankingResponse struct {
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	SessionCount int            `json:"session_count"`
	Entries      []RankingEntry `json:"entries"`
	GeneratedAt  time.Time      `json:"generated_at"`
	CacheHit     bool           `json:"cache_hit"`
}
