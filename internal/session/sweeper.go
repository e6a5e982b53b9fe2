package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper periodically purges expired sessions from the store and releases
// whatever the purged sessions still held.
type Sweeper struct {
	cron    *cron.Cron
	m       *Manager
	release func(sid string)
	logger  *logrus.Logger
}

// NewSweeper schedules a sweep every interval. release is called once per
// purged sid and may be nil.
func NewSweeper(m *Manager, every time.Duration, release func(sid string), logger *logrus.Logger) (*Sweeper, error) {
	s := &Sweeper{cron: cron.New(), m: m, release: release, logger: logger}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", every), s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Sweep runs one purge.
func (s *Sweeper) Sweep() {
	ids, err := s.m.PurgeExpired()
	if err != nil {
		s.logger.WithError(err).Error("session.sweep.fail")
		return
	}
	if s.release != nil {
		for _, sid := range ids {
			s.release(sid)
		}
	}
	if len(ids) > 0 {
		s.logger.WithField("removed", len(ids)).Info("session.sweep")
	}
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() { <-s.cron.Stop().Done() }
