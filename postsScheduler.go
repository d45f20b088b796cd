package main

import (
	"sync"
	"time"
)

// postScheduler keeps at most one pending publish timer per post. It is an
// owned component, constructed at startup and stopped through the shutdown
// sequence.
type postScheduler struct {
	mu      sync.Mutex
	timers  map[int]*postTimer
	grace   time.Duration
	now     func() time.Time
	publish func(postID int)
	missed  func(postID int, delay time.Duration)
	stopped bool
}

type postTimer struct {
	at       time.Time
	timer    *time.Timer
	canceled bool
}

func newPostScheduler(grace time.Duration, publish func(postID int), missed func(postID int, delay time.Duration)) *postScheduler {
	return &postScheduler{
		timers:  map[int]*postTimer{},
		grace:   grace,
		now:     time.Now,
		publish: publish,
		missed:  missed,
	}
}

func (a *postClock) initScheduler() {
	a.scheduler = newPostScheduler(
		time.Duration(a.cfg.Scheduler.Grace)*time.Second,
		a.publishPost,
		func(postID int, delay time.Duration) {
			a.error("Dropped publish timer outside the grace window", "post", postID, "delay", delay)
		},
	)
	a.shutdown.Add(func() {
		a.scheduler.stop()
		a.info("Posts scheduler stopped")
	})
	// Pending timers are in-memory only and do not survive restarts
	if count, err := a.db.countOverduePosts(time.Now()); err == nil && count > 0 {
		a.error("Unpublished posts with a passed schedule time exist, they will not publish on their own", "count", count)
	}
}

// schedule arms a publish timer for the post. An already pending timer for
// the same post is canceled before the new one is armed, so the old time
// can not fire anymore.
func (s *postScheduler) schedule(postID int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if old, ok := s.timers[postID]; ok {
		old.canceled = true
		old.timer.Stop()
	}
	pt := &postTimer{at: at}
	pt.timer = time.AfterFunc(at.Sub(s.now()), func() {
		s.fire(postID, pt)
	})
	s.timers[postID] = pt
}

// cancel removes a pending timer, it is a no-op when there is none
func (s *postScheduler) cancel(postID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.timers[postID]
	if !ok {
		return
	}
	pt.canceled = true
	pt.timer.Stop()
	delete(s.timers, postID)
}

// scheduledAt reports the target time of a pending timer
func (s *postScheduler) scheduledAt(postID int) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.timers[postID]
	if !ok {
		return time.Time{}, false
	}
	return pt.at, true
}

func (s *postScheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, pt := range s.timers {
		pt.canceled = true
		pt.timer.Stop()
		delete(s.timers, id)
	}
}

// fire runs on the timer's own goroutine, decoupled from request handling
func (s *postScheduler) fire(postID int, pt *postTimer) {
	s.mu.Lock()
	if pt.canceled || s.stopped || s.timers[postID] != pt {
		// Replaced or canceled after the timer already started firing
		s.mu.Unlock()
		return
	}
	delete(s.timers, postID)
	now := s.now()
	s.mu.Unlock()
	if delay := now.Sub(pt.at); delay > s.grace {
		if s.missed != nil {
			s.missed(postID, delay)
		}
		return
	}
	s.publish(postID)
}
