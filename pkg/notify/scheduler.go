package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tableflip.dev/sidekick/pkg/entry"
)

// reminderTag marks every job this package creates.
const reminderTag = "sidekick-reminder"

// Service schedules reminders as one-time gocron jobs. The job UUIDs are the
// schedule ids handed back to the journal.
type Service struct {
	// Permitted is what EnsurePermission reports.
	Permitted bool
	// Deliver is called when a reminder fires.
	Deliver func(Reminder)

	scheduler gocron.Scheduler
	now       func() time.Time
	log       *logrus.Entry

	mu      sync.Mutex
	pending map[uuid.UUID]Reminder
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now when planning reminders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a stopped scheduler; call Start to begin firing.
func NewService(permitted bool, deliver func(Reminder), opts ...Option) (*Service, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("notify: create scheduler: %w", err)
	}
	s := &Service{
		Permitted: permitted,
		Deliver:   deliver,
		scheduler: scheduler,
		now:       time.Now,
		log:       logrus.WithField("component", "notify"),
		pending:   make(map[uuid.UUID]Reminder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins running jobs.
func (s *Service) Start() {
	s.scheduler.Start()
}

// Shutdown stops the scheduler and drops every job.
func (s *Service) Shutdown() error {
	return s.scheduler.Shutdown()
}

// EnsurePermission reports whether reminders may be scheduled.
func (s *Service) EnsurePermission(context.Context) bool {
	return s.Permitted
}

// Schedule plans the reminders of intake and registers one job for each.
func (s *Service) Schedule(ctx context.Context, intake entry.Intake, settings entry.NotificationSettings) ([]string, error) {
	return s.ScheduleReminders(ctx, Plan(intake, settings, s.now()))
}

// ScheduleReminders registers one job per reminder. On error the ids of the
// jobs created so far are returned along with it.
func (s *Service) ScheduleReminders(_ context.Context, reminders []Reminder) ([]string, error) {
	ids := make([]string, 0, len(reminders))
	for _, r := range reminders {
		r := r
		job, err := s.scheduler.NewJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(r.At)),
			gocron.NewTask(s.fire, r),
			gocron.WithName(fmt.Sprintf("%s/%s", r.IntakeID, r.Kind)),
			gocron.WithTags(reminderTag, r.IntakeID),
		)
		if err != nil {
			return ids, fmt.Errorf("notify: schedule %s reminder: %w", r.Kind, err)
		}
		s.mu.Lock()
		s.pending[job.ID()] = r
		s.mu.Unlock()
		ids = append(ids, job.ID().String())
		s.log.WithFields(logrus.Fields{
			"intake": r.IntakeID,
			"kind":   r.Kind,
			"at":     r.At.Format(time.RFC3339),
		}).Debug("reminder scheduled")
	}
	return ids, nil
}

// Cancel removes the jobs behind ids. Unknown or malformed ids are ignored.
func (s *Service) Cancel(_ context.Context, ids []string) {
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.log.WithField("id", raw).Debug("ignoring malformed reminder id")
			continue
		}
		if err := s.scheduler.RemoveJob(id); err != nil {
			s.log.WithError(err).WithField("id", raw).Debug("reminder already gone")
		}
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// CancelAll removes every reminder this service scheduled.
func (s *Service) CancelAll() {
	s.scheduler.RemoveByTags(reminderTag)
	s.mu.Lock()
	s.pending = make(map[uuid.UUID]Reminder)
	s.mu.Unlock()
}

// Pending lists reminders that have not fired yet, soonest first.
func (s *Service) Pending() []Reminder {
	s.mu.Lock()
	out := make([]Reminder, 0, len(s.pending))
	for _, r := range s.pending {
		out = append(out, r)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

func (s *Service) fire(r Reminder) {
	s.mu.Lock()
	for id, p := range s.pending {
		if p.IntakeID == r.IntakeID && p.Kind == r.Kind {
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"intake": r.IntakeID, "kind": r.Kind}).Info(r.Title)
	if s.Deliver != nil {
		s.Deliver(r)
	}
}

// Offline is the scheduler of short-lived processes. It never has
// permission, so intakes are stored without reminder ids and a running
// reminder daemon picks them up instead.
type Offline struct{}

// EnsurePermission always denies.
func (Offline) EnsurePermission(context.Context) bool { return false }

// Schedule schedules nothing.
func (Offline) Schedule(context.Context, entry.Intake, entry.NotificationSettings) ([]string, error) {
	return nil, nil
}

// Cancel is a no-op.
func (Offline) Cancel(context.Context, []string) {}
