// Package testutil provides in-memory implementations of the domain
// repositories and logger for application layer tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	modvo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/domain/support"
	supportvo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/domain/user"
	uservo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/query"
)

// MockUserRepository is an in-memory user.Repository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User

	GetError    error
	UpdateError error
	Updates     int
}

func NewMockUserRepository(users ...*user.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID()]; ok {
		return fmt.Errorf("duplicate user %s", u.ID())
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.users[id], nil
}

func (m *MockUserRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.users {
		if c := u.StripeCustomerID(); c != nil && *c == customerID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.users[u.ID()] = u
	m.Updates++
	return nil
}

func (m *MockUserRepository) CountByTier(ctx context.Context) (map[uservo.Tier]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[uservo.Tier]int64)
	for _, u := range m.users {
		out[u.Tier()]++
	}
	return out, nil
}

// MockLedger is an in-memory usage.Ledger that applies the same counter
// rules as the SQL implementation.
type MockLedger struct {
	mu      sync.Mutex
	records map[string]usage.Record

	// ProfileCounter supplies ChildProfileCount the way the SQL ledger derives it.
	ProfileCounter func(userID string) int

	IncrementError error
	Increments     int
}

func NewMockLedger() *MockLedger {
	return &MockLedger{records: make(map[string]usage.Record)}
}

// Seed stores a record as-is.
func (m *MockLedger) Seed(r usage.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.UserID] = r
}

func (m *MockLedger) GetUsage(ctx context.Context, userID string) (*usage.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[userID]
	if !ok {
		r = *usage.EmptyRecord(userID)
	}
	if m.ProfileCounter != nil {
		r.ChildProfileCount = m.ProfileCounter(userID)
	}
	return &r, nil
}

func (m *MockLedger) IncrementStoryCount(ctx context.Context, userID string, opts usage.IncrementOptions) (*usage.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IncrementError != nil {
		return nil, m.IncrementError
	}

	r, ok := m.records[userID]
	if !ok {
		r = usage.Record{UserID: userID}
	}
	r = r.ForDay(opts.Day)
	r.StoriesGeneratedToday++
	if opts.CountTrial {
		r.TrialStoriesGenerated++
		if r.TrialStoriesGenerated >= opts.TrialCap {
			r.TrialCompleted = true
		}
	}
	r.UpdatedAt = time.Now().UTC()
	m.records[userID] = r
	m.Increments++
	return &r, nil
}

func (m *MockLedger) ResetDailyCounters(ctx context.Context, day string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.records {
		if r.CounterDate != day {
			r.StoriesGeneratedToday = 0
			r.CounterDate = day
			m.records[id] = r
			n++
		}
	}
	return n, nil
}

// MockChildProfileRepository is an in-memory childprofile.Repository.
type MockChildProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*childprofile.ChildProfile

	CreateError error
}

func NewMockChildProfileRepository(profiles ...*childprofile.ChildProfile) *MockChildProfileRepository {
	m := &MockChildProfileRepository{profiles: make(map[string]*childprofile.ChildProfile)}
	for _, p := range profiles {
		m.profiles[p.ID()] = p
	}
	return m
}

func (m *MockChildProfileRepository) CreateWithinLimit(ctx context.Context, p *childprofile.ChildProfile, limit int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return false, m.CreateError
	}
	owned := 0
	for _, existing := range m.profiles {
		if existing.UserID() == p.UserID() {
			owned++
		}
	}
	if owned >= limit {
		return false, nil
	}
	m.profiles[p.ID()] = p
	return true, nil
}

func (m *MockChildProfileRepository) GetByID(ctx context.Context, id string) (*childprofile.ChildProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[id], nil
}

func (m *MockChildProfileRepository) ListByUser(ctx context.Context, userID string) ([]*childprofile.ChildProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*childprofile.ChildProfile, 0)
	for _, p := range m.profiles {
		if p.UserID() == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (m *MockChildProfileRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	list, _ := m.ListByUser(ctx, userID)
	return len(list), nil
}

func (m *MockChildProfileRepository) ExistsByNameKey(ctx context.Context, userID, nameKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID() == userID && p.NameKey() == nameKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockChildProfileRepository) UpdateAvatar(ctx context.Context, p *childprofile.ChildProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID()] = p
	return nil
}

func (m *MockChildProfileRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, id)
	return nil
}

// MockStoryRepository is an in-memory story.Repository.
type MockStoryRepository struct {
	mu      sync.RWMutex
	stories map[string]*story.Story

	CreateError error
	DeleteError error
}

func NewMockStoryRepository(stories ...*story.Story) *MockStoryRepository {
	m := &MockStoryRepository{stories: make(map[string]*story.Story)}
	for _, s := range stories {
		m.stories[s.ID()] = s
	}
	return m
}

func (m *MockStoryRepository) Create(ctx context.Context, s *story.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.stories[s.ID()] = s
	return nil
}

func (m *MockStoryRepository) GetByID(ctx context.Context, id string) (*story.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stories[id], nil
}

func (m *MockStoryRepository) ListByUser(ctx context.Context, userID string, page query.PageFilter) ([]*story.Story, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*story.Story, 0)
	for _, s := range m.stories {
		if s.UserID() == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	total := int64(len(out))
	start := min(page.Offset(), len(out))
	end := min(start+page.Limit(), len(out))
	return out[start:end], total, nil
}

func (m *MockStoryRepository) SetVisibility(ctx context.Context, id string, visibility story.Visibility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return fmt.Errorf("story %s not found", id)
	}
	m.stories[id] = story.ReconstructStory(s.ID(), s.UserID(), s.ChildProfileID(), s.Title(), s.Prompt(), s.Content(),
		visibility, s.CreatedAt(), time.Now().UTC())
	return nil
}

func (m *MockStoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.stories, id)
	return nil
}

func (m *MockStoryRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, s := range m.stories {
		if !s.CreatedAt().Before(since) {
			n++
		}
	}
	return n, nil
}

// MockReportRepository is an in-memory moderation.Repository.
type MockReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*moderation.Report

	UpdateError error
}

func NewMockReportRepository(reports ...*moderation.Report) *MockReportRepository {
	m := &MockReportRepository{reports: make(map[string]*moderation.Report)}
	for _, r := range reports {
		m.reports[r.ID()] = r
	}
	return m
}

func (m *MockReportRepository) Create(ctx context.Context, r *moderation.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID()] = r
	return nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*moderation.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reports[id], nil
}

func (m *MockReportRepository) List(ctx context.Context, filter moderation.ReportFilter) ([]*moderation.Report, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*moderation.Report, 0)
	for _, r := range m.reports {
		if filter.Status != nil && r.Status() != *filter.Status {
			continue
		}
		if filter.StoryID != nil && r.StoryID() != *filter.StoryID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	total := int64(len(out))
	start := min(filter.Offset(), len(out))
	end := min(start+filter.Limit(), len(out))
	return out[start:end], total, nil
}

func (m *MockReportRepository) Update(ctx context.Context, r *moderation.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.reports[r.ID()] = r
	return nil
}

func (m *MockReportRepository) HasPending(ctx context.Context, reporterID, storyID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.ReporterID() == reporterID && r.StoryID() == storyID && r.Status() == modvo.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, status modvo.ReportStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.reports {
		if r.Status() == status {
			n++
		}
	}
	return n, nil
}

// MockTicketRepository is an in-memory support.Repository.
type MockTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*support.Ticket

	CreateError error
}

func NewMockTicketRepository(tickets ...*support.Ticket) *MockTicketRepository {
	m := &MockTicketRepository{tickets: make(map[string]*support.Ticket)}
	for _, t := range tickets {
		m.tickets[t.ID()] = t
	}
	return m
}

func (m *MockTicketRepository) Create(ctx context.Context, t *support.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tickets[id], nil
}

func (m *MockTicketRepository) GetByReference(ctx context.Context, reference string) (*support.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tickets {
		if t.Reference() == reference {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTicketRepository) List(ctx context.Context, filter support.TicketFilter) ([]*support.Ticket, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*support.Ticket, 0)
	for _, t := range m.tickets {
		if filter.Status != nil && t.Status() != *filter.Status {
			continue
		}
		if filter.Category != nil && t.Category() != *filter.Category {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	total := int64(len(out))
	start := min(filter.Offset(), len(out))
	end := min(start+filter.Limit(), len(out))
	return out[start:end], total, nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *support.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID()] = t
	return nil
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, statuses ...supportvo.TicketStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, t := range m.tickets {
		for _, s := range statuses {
			if t.Status() == s {
				n++
				break
			}
		}
	}
	return n, nil
}

// MockAuditRepository is an in-memory audit.Repository.
type MockAuditRepository struct {
	mu      sync.RWMutex
	entries []*audit.Entry

	AppendError error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendError != nil {
		return m.AppendError
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*audit.Entry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filter.AdminID != "" && e.AdminID() != filter.AdminID {
			continue
		}
		if filter.ActionType != nil && e.ActionType() != *filter.ActionType {
			continue
		}
		if filter.TargetID != "" && (e.TargetID() == nil || *e.TargetID() != filter.TargetID) {
			continue
		}
		if filter.TargetType != nil && (e.TargetType() == nil || *e.TargetType() != *filter.TargetType) {
			continue
		}
		if filter.Since != nil && e.CreatedAt().Before(*filter.Since) {
			continue
		}
		out = append(out, e)
	}
	total := int64(len(out))
	start := min(filter.Offset, len(out))
	end := len(out)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(out))
	}
	return out[start:end], total, nil
}

// Entries returns a copy of every appended entry in insertion order.
func (m *MockAuditRepository) Entries() []*audit.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*audit.Entry(nil), m.entries...)
}

// CountAction returns how many entries carry the action type.
func (m *MockAuditRepository) CountAction(action audit.ActionType) int {
	n := 0
	for _, e := range m.Entries() {
		if e.ActionType() == action {
			n++
		}
	}
	return n
}

// MockTxRunner runs the callback inline. When Err is set the callback
// result is replaced by it, mimicking a failed commit.
type MockTxRunner struct {
	Calls int
	Err   error
}

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.Err
}

// MockLogger records log calls.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }
func (m *MockLogger) Fatalw(msg string, keysAndValues ...interface{}) { m.log("FATAL", msg) }

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

// HasLevel reports whether any entry was logged at level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Level == level {
			return true
		}
	}
	return false
}
