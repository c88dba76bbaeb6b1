package provider

import (
	"context"

	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/google/uuid"
)

// MetricsClient fetches engagement metrics for a post. Called exactly once per
// submission; the returned snapshot is persisted and never refetched.
type MetricsClient interface {
	FetchMetrics(ctx context.Context, postRef string) (payout.Metrics, error)
}

// ScoreClient reads a user's current quality score in [0, 10000].
type ScoreClient interface {
	// CurrentScore returns the user's score. ok is false when the scoring
	// system has no score for the user, which blocks submission.
	CurrentScore(ctx context.Context, userID uuid.UUID) (score int64, ok bool, err error)
}

type NotificationKind string

const (
	NotificationSubmissionApproved NotificationKind = "submission_approved"
	NotificationSubmissionRejected NotificationKind = "submission_rejected"
	NotificationPaymentRequested   NotificationKind = "payment_requested"
	NotificationPaymentReleased    NotificationKind = "payment_released"
	NotificationReferralRegistered NotificationKind = "referral_registered"
)

// Notifier delivers user-facing notifications. Delivery is best effort:
// implementations must never block or fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind NotificationKind, payload map[string]any)
}
