// Package scheduler drives the sleep → sample → report cycle. One logical
// thread of control owns all sampling state; the only interrupt-context
// work is flagging a wake.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/lamxuanhung/binary-sensor/internal/engine"
	"github.com/lamxuanhung/binary-sensor/internal/publish"
	"github.com/lamxuanhung/binary-sensor/internal/register"
	"github.com/lamxuanhung/binary-sensor/internal/status"
)

// Scheduler orchestrates sampling passes and selective register
// publication. It depends on registers only through their serialize
// capability.
type Scheduler struct {
	engine   *engine.Engine
	flag     *Flag
	sleeper  Sleeper
	pub      publish.Publisher
	voltage  register.Register
	inputs   register.Register
	counters register.Register
	tracker  *status.Tracker // optional
}

// New creates a Scheduler. tracker may be nil.
func New(e *engine.Engine, flag *Flag, sleeper Sleeper, pub publish.Publisher,
	voltage, inputs, counters register.Register, tracker *status.Tracker) *Scheduler {
	return &Scheduler{
		engine:   e,
		flag:     flag,
		sleeper:  sleeper,
		pub:      pub,
		voltage:  voltage,
		inputs:   inputs,
		counters: counters,
		tracker:  tracker,
	}
}

// Run seeds the sampling state, publishes the initial report, then loops
// forever until the context is canceled. Publish failures are logged and
// tolerated; only the seed sample aborts startup.
func (s *Scheduler) Run(ctx context.Context) error {
	cls, err := s.engine.Sample()
	if err != nil {
		return fmt.Errorf("seed sample: %w", err)
	}
	s.record(cls, false)
	log.Printf("seeded: classification=%s", cls)

	// Initial report: voltage, binary states, counters.
	s.publishOne(s.voltage)
	s.publishOne(s.inputs)
	s.publishOne(s.counters)

	s.flag.Enable()

	for {
		cause := s.sleeper.Sleep(ctx)
		if cause == WakeShutdown {
			return nil
		}
		s.pass(cause)
	}
}

// pass runs one wake cycle: mask line events, sample, report, re-arm.
// Events are re-enabled on every exit path.
func (s *Scheduler) pass(cause WakeCause) {
	s.flag.Disable()
	defer func() {
		s.flag.Clear()
		s.flag.Enable()
	}()

	// The flag, not the wake cause, decides the report path: an edge that
	// raced the timer still gets the interrupt treatment.
	pending := s.flag.Pending()

	cls, err := s.engine.Sample()
	if err != nil {
		log.Printf("sample error: %v", err)
		return
	}

	if pending {
		switch cls {
		case engine.CountersChanged:
			// Counters first, then binary states: the consumer
			// expects this exact ordering when both change.
			s.publishOne(s.counters)
			s.publishOne(s.inputs)
		case engine.BinaryChanged:
			s.publishOne(s.inputs)
		case engine.NoChange:
			// Quiet wake: edges canceled out within the pass.
		}
	} else {
		// Periodic heartbeat: report unconditionally.
		s.publishOne(s.counters)
		s.publishOne(s.inputs)
	}

	s.record(cls, !pending)
	log.Printf("wake: cause=%s pending=%v classification=%s", cause, pending, cls)
}

func (s *Scheduler) publishOne(reg register.Register) {
	if err := s.pub.Publish(reg); err != nil {
		log.Printf("publish %s: %v", reg.Name(), err)
		if s.tracker != nil {
			s.tracker.RecordPublishError()
		}
	}
}

func (s *Scheduler) record(cls engine.Classification, timerWake bool) {
	if s.tracker == nil {
		return
	}
	counterStates, binaryStates := s.engine.Registry().StateBytes()
	s.tracker.RecordPass(status.Pass{
		Classification: cls,
		TimerWake:      timerWake,
		CounterStates:  counterStates,
		BinaryStates:   binaryStates,
		Counters:       s.engine.Registry().Counters(),
	})
}
