package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/notifier"
)

// Evaluator produces a fresh evaluation record.
type Evaluator interface {
	Evaluate(ctx context.Context) (*model.ResultRecord, error)
	Symbol() string
}

// Scheduler evaluates the index on a cron schedule and pushes signal changes.
type Scheduler struct {
	Cron      *cron.Cron
	Evaluator Evaluator
	Notifier  notifier.Sender // nil disables alerts
	Ctx       context.Context

	mu         sync.Mutex
	lastAction model.Action
}

// NewScheduler creates a new Scheduler running in loc.
func NewScheduler(ctx context.Context, ev Evaluator, sender notifier.Sender, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Evaluator: ev,
		Notifier:  sender,
		Ctx:       ctx,
	}
}

// Register adds the evaluation task on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.evaluateTask); err != nil {
		return fmt.Errorf("register evaluation task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the evaluation task immediately.
func (s *Scheduler) RunNow() {
	s.evaluateTask()
}

func (s *Scheduler) evaluateTask() {
	rec, err := s.Evaluator.Evaluate(s.Ctx)
	if err != nil {
		if errors.Is(err, calculator.ErrMissingSeries) {
			log.Warn().Err(err).Msg("scheduled evaluation skipped")
			return
		}
		log.Error().Err(err).Msg("scheduled evaluation failed")
		return
	}

	if s.shouldAlert(rec.Signal) {
		s.trySend(notifier.FormatSignal(s.Evaluator.Symbol(), rec))
	}
}

// shouldAlert records action and reports whether it is worth a message:
// any change into CALL/PUT, or a return to WAIT after one.
func (s *Scheduler) shouldAlert(action model.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.lastAction
	s.lastAction = action
	if action == prev {
		return false
	}
	if action == model.ActionWait {
		return prev == model.ActionCall || prev == model.ActionPut
	}
	return true
}

// LastAction returns the action seen by the most recent scheduled evaluation.
func (s *Scheduler) LastAction() model.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAction
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/nifty@pulse_bot" in group chats
	cmd, _, _ := strings.Cut(fields[0], "@")
	switch strings.ToLower(cmd) {
	case "/nifty", "/signal":
		rec, err := s.Evaluator.Evaluate(ctx)
		if err != nil {
			return notifier.FormatError(err)
		}
		return notifier.FormatSignal(s.Evaluator.Symbol(), rec)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
