// Package workers hosts the application's background jobs. The only one
// today is the password-expiration notifier.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/service"
	"github.com/MKhiriev/survey-auth/internal/store"
)

// Default values applied when the worker configuration leaves a field unset.
const (
	defaultCheckInterval = 24 * time.Hour
	defaultNotifyDays    = 7
)

// ExpirationNotifier periodically scans for accounts whose password expires
// a configured number of days ahead and mails each of them a warning.
// The job is idle until Start is called.
type ExpirationNotifier struct {
	userRepository store.UserRepository
	emailSender    service.EmailSender

	checkInterval time.Duration
	notifyDays    int

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewExpirationNotifier builds the notifier from the workers configuration.
func NewExpirationNotifier(userRepository store.UserRepository, emailSender service.EmailSender, cfg config.Workers, logger *logger.Logger) *ExpirationNotifier {
	checkInterval := cfg.ExpirationCheckInterval
	if checkInterval <= 0 {
		checkInterval = defaultCheckInterval
	}
	notifyDays := cfg.ExpirationNotifyDays
	if notifyDays <= 0 {
		notifyDays = defaultNotifyDays
	}

	return &ExpirationNotifier{
		userRepository: userRepository,
		emailSender:    emailSender,
		checkInterval:  checkInterval,
		notifyDays:     notifyDays,
		logger:         logger,
	}
}

// Start stops any previously running job, then launches a background
// goroutine that runs one scan per interval. The first scan happens
// immediately so a restarted instance never silently skips a day. The
// goroutine exits when ctx is cancelled or Stop is called.
func (n *ExpirationNotifier) Start(ctx context.Context) {
	n.Stop()

	n.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		t := time.NewTicker(n.checkInterval)
		defer t.Stop()

		n.runOnce(jobCtx)

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				n.runOnce(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (n *ExpirationNotifier) Stop() {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	n.wg.Wait()
}

// runOnce performs a single scan-and-notify pass. A failed email does not
// abort the pass; remaining recipients are still notified.
func (n *ExpirationNotifier) runOnce(ctx context.Context) {
	log := n.logger

	day := midnightUTC(time.Now().AddDate(0, 0, n.notifyDays))

	users, err := n.userRepository.FindUsersWithPasswordExpiringOn(ctx, day)
	if err != nil {
		log.Err(err).Time("day", day).Msg("password expiration scan failed")
		return
	}
	if len(users) == 0 {
		return
	}

	log.Info().Int("count", len(users)).Time("day", day).Msg("notifying users of upcoming password expiration")

	for _, user := range users {
		if err := n.emailSender.SendPasswordExpirationNotice(ctx, user.Email, user.PasswordExpirationDate); err != nil {
			log.Err(err).Int64("id", user.UserID).Msg("sending expiration notice failed")
		}
	}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
