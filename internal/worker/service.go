package worker

import (
	"context"
	"errors"
	"time"

	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultEventSweepInterval = time.Minute
)

// Service 비동기 큐 서비스
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 비동기 큐 서비스 생성
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 서비스 이름
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 서비스 시작
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.EventService != nil {
		go s.runEventSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 서비스 중지
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runEventSweepLoop 행사 기간 경계 스윕 루프. 시작일이 된 대기 행사를 적용하고
// 종료일이 지난 행사를 종료한다
func (s *Service) runEventSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.EventService == nil {
		return
	}
	runOnce := func() {
		applied, ended, err := s.consumer.EventService.SweepWindows(time.Now().In(s.sweepLocation()))
		if err != nil {
			logger.Warnw("worker_event_sweep_failed", "error", err)
			return
		}
		if applied > 0 || ended > 0 {
			logger.Infow("worker_event_sweep_done", "applied", applied, "ended", ended)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func (s *Service) sweepInterval() time.Duration {
	if s != nil && s.consumer != nil && s.consumer.Config != nil {
		if seconds := s.consumer.Config.Events.SweepIntervalSeconds; seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultEventSweepInterval
}

func (s *Service) sweepLocation() *time.Location {
	if s != nil && s.consumer != nil && s.consumer.Location != nil {
		return s.consumer.Location
	}
	return time.Local
}
