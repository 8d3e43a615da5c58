package commands

import (
	"context"

	domreview "marketplace-api/internal/domain/review"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotOwned      = errs.New("review not owned by user")
	ErrDuplicateReview     = errs.New("duplicate review for business user")
	ErrReviewTargetInvalid = errs.New("review target is not a business user")
	ErrReviewNotFoundWrite = errs.New("review not found")
)

type CreateReviewRequest struct {
	BusinessUserID uuid.UUID
	Rating         int
	Description    string
}

type UpdateReviewRequest struct {
	Rating      int
	Description string
}

type CreateReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, req CreateReviewRequest, reviewerID uuid.UUID) (*CreateReviewResult, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error
	DeleteReview(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type reviewCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewReviewCommands(uow shared.UnitOfWork) ReviewCommands {
	return &reviewCommandsImpl{uow: uow}
}

// CreateReview enforces one review per (reviewer, business) pair. The
// pre-check gives a clean error; the unique constraint backs the race.
func (uc *reviewCommandsImpl) CreateReview(ctx context.Context, req CreateReviewRequest, reviewerID uuid.UUID) (*CreateReviewResult, error) {
	rev, err := domreview.NewReview(req.BusinessUserID, reviewerID, req.Rating, req.Description)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, terr := tx.Reads().UserByID(ctx, req.BusinessUserID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return errs.Mark(terr, ErrReviewTargetInvalid)
			}
			return terr
		}
		if target.Role != user.RoleBusiness {
			return ErrReviewTargetInvalid
		}

		exists, cerr := tx.Reads().HasReviewForBusiness(ctx, reviewerID, req.BusinessUserID)
		if cerr != nil {
			return cerr
		}
		if exists {
			return ErrDuplicateReview
		}

		if _, cerr := tx.Reviews().Create(ctx, tx.DB(), rev); cerr != nil {
			if infra.IsKind(cerr, infra.KindDuplicateKey) {
				return errs.Mark(cerr, ErrDuplicateReview)
			}
			return cerr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateReviewResult{ReviewID: rev.ID()}, nil
}

func (uc *reviewCommandsImpl) UpdateReview(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error {
	rating, err := domreview.NewRating(req.Rating)
	if err != nil {
		return err
	}
	description, err := domreview.NewDescription(req.Description)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, rerr := tx.Reads().ReviewByID(ctx, reviewID)
		if rerr != nil {
			if infra.IsKind(rerr, infra.KindNotFound) {
				return errs.Mark(rerr, ErrReviewNotFoundWrite)
			}
			return rerr
		}
		if snap.ReviewerID != actorID {
			return ErrReviewNotOwned
		}

		return tx.Reviews().Update(ctx, tx.DB(), reviewID, rating.Value(), description.String())
	})
}

// DeleteReview is open to the author and to admins.
func (uc *reviewCommandsImpl) DeleteReview(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, rerr := tx.Reads().ReviewByID(ctx, reviewID)
		if rerr != nil {
			if infra.IsKind(rerr, infra.KindNotFound) {
				return errs.Mark(rerr, ErrReviewNotFoundWrite)
			}
			return rerr
		}
		if snap.ReviewerID != actorID && actorRole != user.RoleAdmin.String() {
			return ErrReviewNotOwned
		}

		return tx.Reviews().Delete(ctx, tx.DB(), reviewID)
	})
}
