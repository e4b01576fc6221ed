package service

import (
	"context"
	"fmt"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

// LeaderboardService ranks users by points. It owns no state and is
// recomputed on every call.
type LeaderboardService struct {
	users UserStore
}

func NewLeaderboardService(users UserStore) *LeaderboardService {
	return &LeaderboardService{users: users}
}

// GetLeaderboard returns the top users by points. The store orders equal
// totals by earlier created_at, then by id.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit > MaxListLimit {
		return nil, newError(ErrValidation, fmt.Sprintf("limit must be at most %d", MaxListLimit))
	}
	users, err := s.users.TopByPoints(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return Rank(users), nil
}

// Rank assigns 1-based positions to users in the given order.
func Rank(users []*models.User) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:             u.ID,
			FullName:           u.FullName,
			Avatar:             u.Avatar,
			Points:             u.Points,
			ParticipationCount: u.ParticipationCount,
			Wins:               u.Wins,
			Rank:               i + 1,
		})
	}
	return entries
}
