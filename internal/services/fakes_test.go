package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"deadyet/internal/models"
	"deadyet/internal/utils"
	"deadyet/pkg/logger"
	"deadyet/pkg/mailer"
	"deadyet/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		panic(err)
	}
	return log
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*models.UserProfile
	failList bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*models.UserProfile)}
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Ensure(ctx context.Context, userID primitive.ObjectID, username string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile, ok := r.profiles[userID]; ok {
		profile.Username = username
		copied := *profile
		return &copied, nil
	}

	profile := &models.UserProfile{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now(),
	}
	r.profiles[userID] = profile
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) RecordCheckIn(ctx context.Context, userID primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
	}
	checkIn := at
	profile.LastCheckIn = &checkIn
	profile.NotificationSent = false
	return nil
}

func (r *fakeProfileRepo) MarkNotified(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return fmt.Errorf("profile %s: %w", userID.Hex(), utils.ErrNotFound)
	}
	profile.NotificationSent = true
	return nil
}

func (r *fakeProfileRepo) ListOverdue(ctx context.Context, cutoff time.Time) ([]*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList {
		return nil, errors.New("store unreachable")
	}

	var overdue []*models.UserProfile
	for _, profile := range r.profiles {
		if profile.LastCheckIn == nil || profile.NotificationSent {
			continue
		}
		if profile.LastCheckIn.Before(cutoff) {
			copied := *profile
			overdue = append(overdue, &copied)
		}
	}
	return overdue, nil
}

func (r *fakeProfileRepo) ListAll(ctx context.Context) ([]*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList {
		return nil, errors.New("store unreachable")
	}

	var all []*models.UserProfile
	for _, profile := range r.profiles {
		copied := *profile
		all = append(all, &copied)
	}
	return all, nil
}

func (r *fakeProfileRepo) seed(userID primitive.ObjectID, username string, lastCheckIn *time.Time, notified bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[userID] = &models.UserProfile{
		ID:               primitive.NewObjectID(),
		UserID:           userID,
		Username:         username,
		LastCheckIn:      lastCheckIn,
		NotificationSent: notified,
	}
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts map[primitive.ObjectID][]*models.EmergencyContact
	failList bool
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[primitive.ObjectID][]*models.EmergencyContact)}
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *models.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()
	r.contacts[contact.UserID] = append(r.contacts[contact.UserID], contact)
	return nil
}

func (r *fakeContactRepo) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList {
		return nil, errors.New("store unreachable")
	}
	return append([]*models.EmergencyContact(nil), r.contacts[userID]...), nil
}

func (r *fakeContactRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.contacts[userID])), nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, userID, contactID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.contacts[userID]
	for i, contact := range list {
		if contact.ID == contactID {
			r.contacts[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact %s: %w", contactID.Hex(), utils.ErrNotFound)
}

type fakeCheckInRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]map[string]*models.CheckInRecord
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{records: make(map[primitive.ObjectID]map[string]*models.CheckInRecord)}
}

func (r *fakeCheckInRepo) UpsertForDay(ctx context.Context, record *models.CheckInRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	days, ok := r.records[record.UserID]
	if !ok {
		days = make(map[string]*models.CheckInRecord)
		r.records[record.UserID] = days
	}

	existing, replaced := days[record.Date]
	if replaced {
		record.ID = existing.ID
	} else {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = time.Now()
	days[record.Date] = record

	return replaced, nil
}

func (r *fakeCheckInRepo) GetRecent(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.CheckInRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > models.HistoryLimit {
		limit = models.HistoryLimit
	}

	var records []*models.CheckInRecord
	for _, record := range r.records[userID] {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *fakeCheckInRepo) PruneHistory(ctx context.Context, userID primitive.ObjectID, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	days := r.records[userID]
	if len(days) <= keep {
		return 0, nil
	}

	var records []*models.CheckInRecord
	for _, record := range days {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	var pruned int64
	for _, record := range records[keep:] {
		delete(days, record.Date)
		pruned++
	}
	return pruned, nil
}

// fakeMailProvider fails any address listed in failAddresses and records the
// requests it accepted.
type fakeMailProvider struct {
	mu            sync.Mutex
	sent          []*mailer.MailRequest
	failAddresses map[string]bool
}

func newFakeMailProvider(failAddresses ...string) *fakeMailProvider {
	fail := make(map[string]bool, len(failAddresses))
	for _, addr := range failAddresses {
		fail[addr] = true
	}
	return &fakeMailProvider{failAddresses: fail}
}

func (p *fakeMailProvider) Send(ctx context.Context, request *mailer.MailRequest) (*mailer.MailResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAddresses[request.To] {
		err := errors.New("mailbox rejected")
		return &mailer.MailResponse{Status: "failed", Error: err.Error()}, err
	}

	p.sent = append(p.sent, request)
	return &mailer.MailResponse{MessageID: primitive.NewObjectID().Hex(), Status: "sent"}, nil
}

func (p *fakeMailProvider) sentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type fakeSMSProvider struct {
	mu   sync.Mutex
	sent []*sms.SMSRequest
}

func (p *fakeSMSProvider) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sent = append(p.sent, request)
	return &sms.SMSResponse{MessageID: "sms-1", Status: "queued"}, nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string][]byte
	locked map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte), locked: make(map[string]bool)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.locked, key)
	}
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[key] {
		return false, nil
	}
	c.locked[key] = true
	return true, nil
}
