package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

func (u *Usecase) GetSubmission(ctx context.Context, campaignID, submissionID uuid.UUID) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	if submission.CampaignID != campaignID {
		return nil, errors.Wrap(errs.NotFound, "submission does not belong to campaign")
	}
	return submission, nil
}
