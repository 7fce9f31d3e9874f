package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/domain"
)

// CreditAuditor reports users whose pending balance no longer matches their
// outstanding holds.
type CreditAuditor interface {
	CreditAudit(ctx context.Context) ([]domain.CreditAuditEntry, error)
}

// CreditReconciler periodically audits the credit ledger. It only reports
// drift; settlement stays with the booking and class flows, so the job never
// writes balances.
type CreditReconciler struct {
	auditor CreditAuditor
	cron    *cron.Cron
}

func NewCreditReconciler(auditor CreditAuditor) *CreditReconciler {
	return &CreditReconciler{
		auditor: auditor,
		cron:    cron.New(),
	}
}

func (r *CreditReconciler) Start() {
	_, err := r.cron.AddFunc("@every 10m", r.Run)
	if err != nil {
		zap.L().Error("failed to schedule credit audit", zap.Error(err))

		return
	}

	r.cron.Start()
}

func (r *CreditReconciler) Stop() {
	<-r.cron.Stop().Done()
}

func (r *CreditReconciler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := r.auditor.CreditAudit(ctx)
	if err != nil {
		zap.L().Error("credit audit failed", zap.Error(err))

		return
	}

	for _, entry := range entries {
		zap.L().Warn("pending credits drifted from open holds",
			zap.Uint("user_id", entry.UserID),
			zap.Int("pending_credits", entry.PendingCredits),
			zap.Int("open_holds", entry.OpenHolds),
		)
	}

	if len(entries) == 0 {
		zap.L().Debug("credit audit clean")
	}
}
