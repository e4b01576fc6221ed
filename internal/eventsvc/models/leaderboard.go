package models

// LeaderboardEntry is a ranked projection of a User. It is never stored.
type LeaderboardEntry struct {
	UserID             string  `json:"user_id"`
	FullName           string  `json:"full_name"`
	Avatar             *string `json:"avatar"`
	Points             int     `json:"points"`
	ParticipationCount int     `json:"participation_count"`
	Wins               int     `json:"wins"`
	Rank               int     `json:"rank"`
}

type Stats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalEvents        int64 `json:"total_events"`
	TotalRegistrations int64 `json:"total_registrations"`
	TotalDonations     int64 `json:"total_donations"`
}
