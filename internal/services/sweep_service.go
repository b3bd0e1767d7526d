package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"deadyet/internal/models"
	"deadyet/internal/repositories/interfaces"
	"deadyet/internal/utils"
	"deadyet/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SweepService interface {
	// Run scans for users past the 48h threshold with the notification flag
	// still clear, dispatches alerts, and flips the flag. Idempotent: a
	// second run with no intervening check-ins finds nothing to do.
	Run(ctx context.Context) (*models.SweepReport, error)

	// Overview reports every user's classified status, worst first.
	Overview(ctx context.Context) (*models.OverviewReport, error)
}

type sweepService struct {
	profiles interfaces.ProfileRepository
	contacts interfaces.ContactRepository
	alerts   AlertService
	cache    Cache
	logger   *logger.Logger
	now      func() time.Time
}

func NewSweepService(
	profiles interfaces.ProfileRepository,
	contacts interfaces.ContactRepository,
	alerts AlertService,
	cache Cache,
	logger *logger.Logger,
) SweepService {
	return &sweepService{
		profiles: profiles,
		contacts: contacts,
		alerts:   alerts,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *sweepService) Run(ctx context.Context) (*models.SweepReport, error) {
	start := s.now()
	report := &models.SweepReport{StartedAt: start}

	// Best-effort lock. Overlapping runs are harmless either way because the
	// flag check keeps notifications at-most-once, so a redis failure only
	// costs us the short-circuit.
	if locked, release := s.tryLock(ctx); !locked {
		report.AlreadyRunning = true
		report.FinishedAt = s.now()
		return report, nil
	} else if release != nil {
		defer release()
	}

	cutoff := start.Add(-models.DangerAfter)

	overdue, err := s.profiles.ListOverdue(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	report.UsersScanned = len(overdue)

	for _, profile := range overdue {
		result := s.sweepUser(ctx, profile)
		report.PerUser = append(report.PerUser, result)

		if result.Notified {
			report.UsersNotified++
		} else {
			report.UsersSkipped++
		}
	}

	report.FinishedAt = s.now()
	s.logger.LogSweepEvent(report.UsersScanned, report.UsersNotified, report.UsersSkipped, report.FinishedAt.Sub(start))

	return report, nil
}

func (s *sweepService) sweepUser(ctx context.Context, profile *models.UserProfile) models.UserSweepResult {
	result := models.UserSweepResult{
		UserID:      profile.UserID,
		Username:    profile.Username,
		LastCheckIn: profile.LastCheckIn,
	}

	contacts, err := s.contacts.ListByUserID(ctx, profile.UserID)
	if err != nil {
		s.logger.WithUserID(profile.UserID).WithError(err).Error("Sweep could not load emergency contacts")
		result.Skipped = true
		result.Reason = "emergency contacts unavailable"
		return result
	}

	// A user with no contacts is skipped and the flag stays clear, so they
	// become eligible again the moment they register a contact.
	if len(contacts) == 0 {
		result.Skipped = true
		result.Reason = "no emergency contacts"
		return result
	}

	destinations := make([]models.AlertContact, len(contacts))
	for i, contact := range contacts {
		destinations[i] = models.AlertContact{
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
		}
	}

	lastCheckInDisplay := ""
	if profile.LastCheckIn != nil {
		lastCheckInDisplay = profile.LastCheckIn.UTC().Format(time.RFC1123)
	}

	dispatch, err := s.alerts.Dispatch(ctx, profile.Username, lastCheckInDisplay, destinations)
	if err != nil {
		s.logger.WithUserID(profile.UserID).WithError(err).Error("Sweep dispatch failed")
		result.Skipped = true
		result.Reason = "dispatch failed"
		return result
	}

	result.Dispatch = dispatch

	// The flag flips even on partial failure: one notification window per
	// missed check-in, retries are the transport's business.
	if err := s.profiles.MarkNotified(ctx, profile.UserID); err != nil {
		s.logger.WithUserID(profile.UserID).WithError(err).Error("Sweep could not mark profile notified")
		result.Reason = "failed to set notification flag"
		return result
	}

	s.invalidateStatus(ctx, profile.UserID)
	result.Notified = true

	return result
}

var statusRank = map[models.Status]int{
	models.StatusDanger:  0,
	models.StatusWarning: 1,
	models.StatusSafe:    2,
	models.StatusNever:   3,
}

func (s *sweepService) Overview(ctx context.Context) (*models.OverviewReport, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	now := s.now()
	report := &models.OverviewReport{CheckedAt: now}

	for _, profile := range profiles {
		count, err := s.contacts.CountByUserID(ctx, profile.UserID)
		if err != nil {
			s.logger.WithUserID(profile.UserID).WithError(err).Warn("Overview could not count contacts")
		}

		info := models.UserStatusInfo{
			UserID:           profile.UserID,
			Username:         profile.Username,
			LastCheckIn:      profile.LastCheckIn,
			Status:           models.StatusFor(profile.LastCheckIn, now),
			ContactCount:     count,
			NotificationSent: profile.NotificationSent,
		}

		if hours := models.HoursSince(profile.LastCheckIn, now); hours != nil {
			rounded := math.Round(*hours*10) / 10
			info.HoursSince = &rounded
		}

		report.Users = append(report.Users, info)

		switch info.Status {
		case models.StatusSafe:
			report.Summary.Safe++
		case models.StatusWarning:
			report.Summary.Warning++
		case models.StatusDanger:
			report.Summary.Danger++
		case models.StatusNever:
			report.Summary.Never++
		}
	}

	report.Summary.Total = len(report.Users)

	sort.SliceStable(report.Users, func(i, j int) bool {
		return statusRank[report.Users[i].Status] < statusRank[report.Users[j].Status]
	})

	return report, nil
}

func (s *sweepService) tryLock(ctx context.Context) (bool, func()) {
	if s.cache == nil {
		return true, nil
	}

	acquired, err := s.cache.SetNX(ctx, utils.CacheSweepLockKey, s.now().Unix(), utils.SweepLockTTL)
	if err != nil {
		s.logger.WithError(err).Warn("Sweep lock unavailable, proceeding without it")
		return true, nil
	}

	if !acquired {
		return false, nil
	}

	return true, func() {
		if err := s.cache.Delete(context.Background(), utils.CacheSweepLockKey); err != nil {
			s.logger.WithError(err).Warn("Failed to release sweep lock")
		}
	}
}

func (s *sweepService) invalidateStatus(ctx context.Context, userID primitive.ObjectID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, utils.CacheStatusPrefix+userID.Hex()); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate status cache")
	}
}
