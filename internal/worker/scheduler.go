package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// キャンペーンの活性状態と抽選の確定を定期的に進める。
// どちらの処理も冪等なので多重起動しても壊れない。
type Scheduler struct {
	campaigns CampaignRefresher
	draws     DrawResolver
	interval  time.Duration
	logger    *zap.Logger
}

type CampaignRefresher interface {
	RefreshCampaigns(ctx context.Context) error
}

type DrawResolver interface {
	ResolveDraws(ctx context.Context) error
}

func NewScheduler(campaigns CampaignRefresher, draws DrawResolver, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		campaigns: campaigns,
		draws:     draws,
		interval:  interval,
		logger:    logger,
	}
}

// Run はctxが閉じるまでブロックする。goroutineで呼ぶこと。
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))

	// 起動直後に1回流してから周期運転に入る
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := s.campaigns.RefreshCampaigns(ctx); err != nil {
		s.logger.Error("campaign refresh failed", zap.Error(err))
	}
	if err := s.draws.ResolveDraws(ctx); err != nil {
		s.logger.Error("draw resolution failed", zap.Error(err))
	}
}
