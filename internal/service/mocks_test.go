package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/repository"
)

// --- Mock Repositories ---

type MockAdRepo struct {
	mu     sync.Mutex
	ads    map[int]*model.Ad
	owners map[int]int // business ID -> user ID
	nextID int
}

func NewMockAdRepo() *MockAdRepo {
	return &MockAdRepo{ads: map[int]*model.Ad{}, owners: map[int]int{}}
}

func (m *MockAdRepo) Put(ad *model.Ad) *model.Ad {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ad.ID == 0 {
		m.nextID++
		ad.ID = m.nextID
	} else if ad.ID > m.nextID {
		m.nextID = ad.ID
	}
	m.ads[ad.ID] = ad
	return ad
}

func (m *MockAdRepo) Create(ctx context.Context, ad *model.Ad) error {
	ad.CreatedAt = time.Now()
	m.Put(ad)
	return nil
}

func (m *MockAdRepo) GetByID(ctx context.Context, id int) (*model.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ad, ok := m.ads[id]
	if !ok {
		return nil, appErrors.NewAdNotFound(id)
	}
	return ad, nil
}

func (m *MockAdRepo) ListLive(ctx context.Context, offset, limit int, region string, now time.Time) ([]*model.Ad, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var live []*model.Ad
	for _, ad := range m.ads {
		exp := ad.GoverningExpiry()
		if !ad.Paid || exp == nil || !exp.After(now) {
			continue
		}
		if region != "" && !strings.Contains(strings.ToLower(ad.Region), strings.ToLower(region)) {
			continue
		}
		live = append(live, ad)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].ID > live[j].ID })

	total := len(live)
	if offset >= total {
		return []*model.Ad{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return live[offset:end], total, nil
}

func (m *MockAdRepo) ListByUser(ctx context.Context, userID int) ([]*model.Ad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Ad
	for _, ad := range m.ads {
		if m.owners[ad.BusinessID] == userID {
			out = append(out, ad)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockAdRepo) IncrementCounter(ctx context.Context, id int, counter string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ad, ok := m.ads[id]
	if !ok {
		return appErrors.NewAdNotFound(id)
	}
	switch counter {
	case repository.CounterViews:
		ad.Views++
	case repository.CounterClicks:
		ad.Clicks++
	case repository.CounterMessages:
		ad.Messages++
	default:
		return appErrors.NewInvalidInput("type", counter)
	}
	return nil
}

type MockPlatformRepo struct {
	mu        sync.Mutex
	entries   []model.AdPlatform
	analytics []model.PlatformAnalytics
	writes    int
}

func (m *MockPlatformRepo) ListByAd(ctx context.Context, adID int) ([]model.AdPlatform, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.AdPlatform{}
	for _, e := range m.entries {
		if e.AdID == adID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReachCount > out[j].ReachCount })
	return out, nil
}

func (m *MockPlatformRepo) CountByAd(ctx context.Context, adID int) (int, error) {
	entries, _ := m.ListByAd(ctx, adID)
	return len(entries), nil
}

func (m *MockPlatformRepo) CreatePublications(ctx context.Context, pubs []repository.PlatformPublication) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++

	inserted := 0
outer:
	for _, pub := range pubs {
		for _, e := range m.entries {
			if e.AdID == pub.Entry.AdID && e.PlatformName == pub.Entry.PlatformName {
				continue outer
			}
		}
		pub.Entry.ID = len(m.entries) + 1
		m.entries = append(m.entries, *pub.Entry)
		a := pub.Analytics
		a.AdPlatformID = pub.Entry.ID
		m.analytics = append(m.analytics, a)
		inserted++
	}
	return inserted, nil
}

type MockBusinessRepo struct {
	businesses map[int]*model.Business
}

func (m *MockBusinessRepo) Create(ctx context.Context, b *model.Business) error {
	if m.businesses == nil {
		m.businesses = map[int]*model.Business{}
	}
	b.ID = len(m.businesses) + 1
	m.businesses[b.ID] = b
	return nil
}

func (m *MockBusinessRepo) GetByID(ctx context.Context, id int) (*model.Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, appErrors.NewBusinessNotFound(id)
	}
	return b, nil
}

func (m *MockBusinessRepo) ListByUser(ctx context.Context, userID int) ([]model.Business, error) {
	out := []model.Business{}
	for _, b := range m.businesses {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type MockPaymentRepo struct {
	mu       sync.Mutex
	payments map[int]*model.Payment
	ads      *MockAdRepo
	// createErr fails CreateWithAd before anything is stored.
	createErr error
}

func (m *MockPaymentRepo) CreateWithAd(ctx context.Context, ad *model.Ad, p *model.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := m.ads.Create(ctx, ad); err != nil {
		return err
	}
	p.AdID = ad.ID
	return m.Create(ctx, p)
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payments == nil {
		m.payments = map[int]*model.Payment{}
	}
	p.ID = len(m.payments) + 1
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, appErrors.NewPaymentNotFound("id")
	}
	return p, nil
}

func (m *MockPaymentRepo) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.GatewayReference != nil && *p.GatewayReference == reference {
			return p, nil
		}
	}
	return nil, appErrors.NewPaymentNotFound(reference)
}

func (m *MockPaymentRepo) MarkInitialized(ctx context.Context, id int, reference, accessCode string) error {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.GatewayReference = &reference
	p.GatewayAccessCode = &accessCode
	p.Status = model.PaymentInitialized
	return nil
}

func (m *MockPaymentRepo) MarkFailed(ctx context.Context, id int) error {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = model.PaymentFailed
	return nil
}

func (m *MockPaymentRepo) CompleteAndPublish(ctx context.Context, paymentID, adID int, now time.Time) error {
	p, err := m.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.Status == model.PaymentCompleted {
		return appErrors.NewPaymentAlreadyCompleted(paymentID)
	}
	ad, err := m.ads.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.PublishedAt != nil {
		return appErrors.NewAlreadyPublished(adID)
	}
	p.Status = model.PaymentCompleted
	ad.Paid = true
	ad.PricePaid = p.Amount
	ad.PublishedAt = &now
	return nil
}

type MockQueue struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (q *MockQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, payload)
	return nil
}

func (q *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

type MockMessageRepo struct {
	msgs []*model.ContactMessage
	ads  *MockAdRepo
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	if err := m.ads.IncrementCounter(ctx, msg.AdID, repository.CounterMessages); err != nil {
		return err
	}
	msg.ID = len(m.msgs) + 1
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *MockMessageRepo) ListByAd(ctx context.Context, adID int) ([]model.ContactMessage, error) {
	out := []model.ContactMessage{}
	for _, msg := range m.msgs {
		if msg.AdID == adID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

type MockAnnouncementRepo struct {
	items []model.Announcement
}

func (m *MockAnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	a.ID = len(m.items) + 1
	a.CreatedAt = time.Now()
	m.items = append(m.items, *a)
	return nil
}

func (m *MockAnnouncementRepo) ListPublished(ctx context.Context) ([]model.Announcement, error) {
	out := []model.Announcement{}
	for _, a := range m.items {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

// constJitter makes every random factor the same value.
type constJitter float64

func (c constJitter) Factor(lo, hi float64) float64 { return float64(c) }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func timePtr(t time.Time) *time.Time { return &t }
