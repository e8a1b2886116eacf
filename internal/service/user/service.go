package user

import (
	"context"
	"strconv"
	"time"

	applog "github.com/janisto/huma-users/internal/platform/logging"
	"github.com/janisto/huma-users/internal/platform/timeutil"
)

const resourceType = "user"

// DefaultMajorityAge is the minimum age in years used when none is configured.
const DefaultMajorityAge = 18

// Service defines user operations.
type Service interface {
	Create(ctx context.Context, r Record) (*Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	Replace(ctx context.Context, id int64, r Record) (*Record, error)
	Patch(ctx context.Context, id int64, p Patch) (*Record, error)
	Delete(ctx context.Context, id int64) error
	ListByBirthDate(ctx context.Context, from, to time.Time) ([]Record, error)
	List(ctx context.Context, afterID int64, limit int) ([]Record, error)
}

// UserService implements Service on top of a Store, enforcing field
// validation and the majority age rule on every write.
type UserService struct {
	store       Store
	majorityAge int
	now         func() time.Time
}

// Option configures a UserService.
type Option func(*UserService)

// WithClock overrides the time source used to determine today's date.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// NewService creates a UserService backed by store.
func NewService(store Store, majorityAge int, opts ...Option) *UserService {
	s := &UserService{
		store:       store,
		majorityAge: majorityAge,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MajorityAge returns the configured minimum age in years.
func (s *UserService) MajorityAge() int {
	return s.majorityAge
}

// today is the calendar date in the clock's own zone (local time for
// time.Now), held as UTC midnight like every stored date.
func (s *UserService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create validates r, checks the majority age and stores it under a new id.
func (s *UserService) Create(ctx context.Context, r Record) (*Record, error) {
	today := s.today()
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	if err := Validate(r, today); err != nil {
		return nil, s.fail(ctx, "create", 0, err)
	}
	if err := CheckAgeEligibility(r.BirthDate, s.majorityAge, today); err != nil {
		return nil, s.fail(ctx, "create", 0, err)
	}
	created, err := s.store.Create(ctx, r)
	if err != nil {
		return nil, s.fail(ctx, "create", 0, err)
	}
	s.succeed(ctx, "create", created.ID)
	return created, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*Record, error) {
	return s.store.Get(ctx, id)
}

// Replace overwrites every field of an existing user. Field validation runs
// before the lookup, so an invalid body is reported even for unknown ids.
func (s *UserService) Replace(ctx context.Context, id int64, r Record) (*Record, error) {
	today := s.today()
	if err := Validate(r, today); err != nil {
		return nil, s.fail(ctx, "replace", id, err)
	}
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "replace", id, err)
	}
	if err := CheckAgeEligibility(r.BirthDate, s.majorityAge, today); err != nil {
		return nil, s.fail(ctx, "replace", id, err)
	}
	saved, err := s.store.Save(ctx, ApplyFull(*existing, r))
	if err != nil {
		return nil, s.fail(ctx, "replace", id, err)
	}
	s.succeed(ctx, "replace", id)
	return saved, nil
}

// Patch applies the present fields of p to an existing user. The merged record
// is validated as a whole; the age rule runs only when p changes the birth date.
// An empty patch returns the stored record untouched.
func (s *UserService) Patch(ctx context.Context, id int64, p Patch) (*Record, error) {
	today := s.today()
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "patch", id, err)
	}
	if p.IsEmpty() {
		return existing, nil
	}
	merged := ApplyPartial(*existing, p)
	if err := Validate(merged, today); err != nil {
		return nil, s.fail(ctx, "patch", id, err)
	}
	if p.BirthDate != nil {
		if err := CheckAgeEligibility(merged.BirthDate, s.majorityAge, today); err != nil {
			return nil, s.fail(ctx, "patch", id, err)
		}
	}
	saved, err := s.store.Save(ctx, merged)
	if err != nil {
		return nil, s.fail(ctx, "patch", id, err)
	}
	s.succeed(ctx, "patch", id)
	return saved, nil
}

// Delete removes an existing user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}
	s.succeed(ctx, "delete", id)
	return nil
}

// ListByBirthDate returns users born between from and to, both inclusive.
func (s *UserService) ListByBirthDate(ctx context.Context, from, to time.Time) ([]Record, error) {
	if err := CheckDateRangeOrder(from, to); err != nil {
		return nil, err
	}
	return s.store.FindByBirthDateBetween(ctx, timeutil.DateOf(from), timeutil.DateOf(to))
}

// List returns up to limit users with ids greater than afterID.
func (s *UserService) List(ctx context.Context, afterID int64, limit int) ([]Record, error) {
	return s.store.List(ctx, afterID, limit)
}

// Ping checks the underlying store.
func (s *UserService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *UserService) succeed(ctx context.Context, action string, id int64) {
	applog.LogAuditEvent(ctx, action, resourceType, strconv.FormatInt(id, 10), applog.AuditSuccess, nil)
}

func (s *UserService) fail(ctx context.Context, action string, id int64, err error) error {
	resourceID := ""
	if id > 0 {
		resourceID = strconv.FormatInt(id, 10)
	}
	applog.LogAuditEvent(ctx, action, resourceType, resourceID, applog.AuditFailure,
		map[string]any{"error": categorizeError(err)})
	return err
}

// Compile-time interface check
var _ Service = (*UserService)(nil)
