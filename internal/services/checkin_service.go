package services

import (
	"context"
	"fmt"
	"time"

	"deadyet/internal/models"
	"deadyet/internal/repositories/interfaces"
	"deadyet/internal/utils"
	"deadyet/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckInService interface {
	// CheckIn records "I am active" for the user right now and returns the
	// day's record plus the refreshed profile view.
	CheckIn(ctx context.Context, userID primitive.ObjectID, username string) (*models.CheckInRecord, *models.ProfileView, error)

	// History returns up to 30 records, most recent first.
	History(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.CheckInRecord, error)

	// Profile returns the stored profile with its status recomputed at read
	// time, creating the profile on first use.
	Profile(ctx context.Context, userID primitive.ObjectID, username string) (*models.ProfileView, error)
}

type checkInService struct {
	profiles interfaces.ProfileRepository
	checkIns interfaces.CheckInRepository
	cache    Cache
	logger   *logger.Logger
	now      func() time.Time
}

func NewCheckInService(
	profiles interfaces.ProfileRepository,
	checkIns interfaces.CheckInRepository,
	cache Cache,
	logger *logger.Logger,
) CheckInService {
	return &checkInService{
		profiles: profiles,
		checkIns: checkIns,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *checkInService) CheckIn(ctx context.Context, userID primitive.ObjectID, username string) (*models.CheckInRecord, *models.ProfileView, error) {
	now := s.now()

	if _, err := s.profiles.Ensure(ctx, userID, username); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	record := &models.CheckInRecord{
		UserID:    userID,
		Date:      models.DayKey(now),
		Timestamp: now,
	}

	replaced, err := s.checkIns.UpsertForDay(ctx, record)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	if _, err := s.checkIns.PruneHistory(ctx, userID, models.HistoryLimit); err != nil {
		// History beyond the cap is cosmetic; the check-in itself succeeded.
		s.logger.WithUserID(userID).WithError(err).Warn("Failed to prune check-in history")
	}

	if err := s.profiles.RecordCheckIn(ctx, userID, now); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	s.invalidateStatus(ctx, userID)
	s.logger.LogCheckIn(userID, record.Date, replaced)

	lastCheckIn := now
	view := &models.ProfileView{
		UserID:           userID,
		Username:         username,
		LastCheckIn:      &lastCheckIn,
		HoursSince:       models.HoursSince(&lastCheckIn, now),
		Status:           models.StatusSafe,
		NotificationSent: false,
		CheckedAt:        now,
	}

	return record, view, nil
}

func (s *checkInService) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.CheckInRecord, error) {
	records, err := s.checkIns.GetRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	return records, nil
}

func (s *checkInService) Profile(ctx context.Context, userID primitive.ObjectID, username string) (*models.ProfileView, error) {
	cacheKey := utils.CacheStatusPrefix + userID.Hex()

	if s.cache != nil {
		var cached models.ProfileView
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.profiles.Ensure(ctx, userID, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	now := s.now()
	view := &models.ProfileView{
		UserID:           profile.UserID,
		Username:         profile.Username,
		LastCheckIn:      profile.LastCheckIn,
		HoursSince:       models.HoursSince(profile.LastCheckIn, now),
		Status:           models.StatusFor(profile.LastCheckIn, now),
		NotificationSent: profile.NotificationSent,
		CheckedAt:        now,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, view, utils.StatusCacheTTL); err != nil {
			s.logger.WithUserID(userID).WithError(err).Debug("Failed to cache profile view")
		}
	}

	return view, nil
}

func (s *checkInService) invalidateStatus(ctx context.Context, userID primitive.ObjectID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, utils.CacheStatusPrefix+userID.Hex()); err != nil {
		s.logger.WithUserID(userID).WithError(err).Debug("Failed to invalidate status cache")
	}
}
