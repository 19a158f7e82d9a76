// Package scheduler holds the in-memory timer set for pending reminders and
// fires each one exactly once through a delivery callback.
//
// The note store is the source of truth: every scheduled reminder also lives
// as a note row with a due time, and Start rebuilds the timer set from those
// rows. Delivery is best effort — a callback failure is logged and the job is
// still considered fired.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/breno/orion/internal/db"
	"github.com/robfig/cron/v3"
)

// DeliverFunc sends a fired reminder to its owner.
type DeliverFunc func(owner, payload string) error

type Scheduler struct {
	db      *db.DB
	deliver DeliverFunc
	cron    *cron.Cron

	mu     sync.Mutex
	timers map[string]*time.Timer // job key -> pending timer
}

func New(database *db.DB, deliver DeliverFunc) *Scheduler {
	return &Scheduler{
		db:      database,
		deliver: deliver,
		cron:    cron.New(),
		timers:  make(map[string]*time.Timer),
	}
}

// Key identifies a job. Two schedule calls with the same owner, fire time,
// and content collapse into one timer, so replaying a directive cannot double
// fire.
func Key(owner string, fireAt time.Time, content string) string {
	return fmt.Sprintf("%s|%s|%s", owner, fireAt.Format(db.TimeLayout), content)
}

// Start rebuilds timers from the store's pending reminders and begins a
// periodic re-sync that picks up rows added out of band and timers lost to a
// suspended clock.
func (s *Scheduler) Start() {
	s.syncFromStore()
	if _, err := s.cron.AddFunc("@every 5m", s.syncFromStore); err != nil {
		log.Printf("scheduler: registering sync: %v", err)
	}
	s.cron.Start()
	log.Println("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// Schedule registers a one-shot job. A fire time in the past fires
// immediately. Scheduling an already-registered key is a no-op.
func (s *Scheduler) Schedule(owner string, fireAt time.Time, payload string) {
	key := Key(owner, fireAt, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.timers[key]; exists {
		return
	}
	s.timers[key] = time.AfterFunc(time.Until(fireAt), func() {
		s.fire(key, owner, payload)
	})
}

// Cancel stops a pending job before it fires. Returns false if no such job
// is registered.
func (s *Scheduler) Cancel(owner string, fireAt time.Time, payload string) bool {
	key := Key(owner, fireAt, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, key)
	return true
}

// Pending returns the number of registered jobs.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) fire(key, owner, payload string) {
	s.mu.Lock()
	delete(s.timers, key)
	s.mu.Unlock()

	if err := s.deliver(owner, payload); err != nil {
		log.Printf("scheduler: delivering reminder to %s: %v", owner, err)
		return
	}
	log.Printf("scheduler: fired reminder for %s", owner)
}

func (s *Scheduler) syncFromStore() {
	pending, err := s.db.PendingReminders(time.Now())
	if err != nil {
		log.Printf("scheduler: loading pending reminders: %v", err)
		return
	}
	for _, n := range pending {
		s.Schedule(n.Owner, *n.DueAt, n.Content)
	}
	log.Printf("scheduler: %d pending job(s)", s.Pending())
}
