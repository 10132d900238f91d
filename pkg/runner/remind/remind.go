// Package remind runs the long-lived process that owns reminder delivery.
// One-shot commands store intakes without reminders; this runner re-derives
// them in memory whenever the journal changes on disk.
package remind

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/notify"
	"tableflip.dev/sidekick/pkg/store"
)

// Horizon is how far back intakes can still have reminders due.
const Horizon = notify.ReboundDelay

type Remind struct {
	Persistence store.Persistence
	// Permitted mirrors the notifications config value.
	Permitted bool
	Deliver   func(notify.Reminder)
	Log       *logrus.Entry
	Now       func() time.Time
	// Ready, when set, is called after the first refresh.
	Ready func(pending int)
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remind, no persistence")
	}
	log := r.Log
	if log == nil {
		log = logrus.WithField("component", "remind")
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	svc, err := notify.NewService(r.Permitted, r.Deliver, notify.WithClock(now), notify.WithLogger(log))
	if err != nil {
		return err
	}
	svc.Start()
	defer func() {
		if err := svc.Shutdown(); err != nil {
			log.WithError(err).Warn("scheduler shutdown")
		}
	}()

	events, err := r.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	refresh := func() error {
		state, err := r.Persistence.Load(ctx)
		if err != nil {
			return err
		}
		svc.CancelAll()
		js := journal.New(state, svc, journal.WithClock(now), journal.WithLogger(log))
		n := js.RefreshNotifications(ctx, now().Add(-Horizon))
		pending := len(svc.Pending())
		log.WithFields(logrus.Fields{"intakes": n, "pending": pending}).Info("reminders refreshed")
		return nil
	}

	if err := refresh(); err != nil {
		return err
	}
	if r.Ready != nil {
		r.Ready(len(svc.Pending()))
	}
	if !r.Permitted {
		log.Warn("notifications disabled in config, nothing will be delivered")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := refresh(); err != nil {
				// A half-written file shows up as a decode error; the next
				// event retries.
				log.WithError(err).Warn("reload failed")
			}
		}
	}
}
