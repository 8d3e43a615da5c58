package commands

import (
	"context"
	"fmt"

	"marketplace-api/internal/domain/offer"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/pkg/patch"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOfferNotOwned      = errs.New("offer not owned by user")
	ErrOfferNotFoundWrite = errs.New("offer not found")
	ErrOfferInUse         = errs.New("offer has ordered packages")
)

// UnknownTierError rejects a details patch entry whose offer_type does
// not name one of the offer's packages.
type UnknownTierError struct {
	Tier string
}

func (e UnknownTierError) Error() string {
	return fmt.Sprintf("offer has no package of type %q", e.Tier)
}

type CreateOfferDetail struct {
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          string
}

type CreateOfferRequest struct {
	Title       string
	Image       *string
	Description string
	Details     []CreateOfferDetail
}

type UpdateOfferDetail struct {
	OfferType          string
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           []string // nil leaves the feature list untouched
}

type UpdateOfferRequest struct {
	Title       *string
	Description *string
	Image       *string
	Details     []UpdateOfferDetail
}

type CreateOfferResult struct {
	OfferID uuid.UUID
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, req CreateOfferRequest, ownerID uuid.UUID) (*CreateOfferResult, error)
	UpdateOffer(ctx context.Context, offerID uuid.UUID, req UpdateOfferRequest, actorID uuid.UUID) error
	DeleteOffer(ctx context.Context, offerID uuid.UUID, actorID uuid.UUID) error
}

type offerCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewOfferCommands(uow shared.UnitOfWork) OfferCommands {
	return &offerCommandsImpl{uow: uow}
}

// CreateOffer persists the offer, its three packages and their feature
// links in one transaction.
func (uc *offerCommandsImpl) CreateOffer(ctx context.Context, req CreateOfferRequest, ownerID uuid.UUID) (*CreateOfferResult, error) {
	details := make([]*offer.Detail, 0, len(req.Details))
	for _, d := range req.Details {
		tier, err := offer.NewTier(d.OfferType)
		if err != nil {
			return nil, err
		}
		detail, err := offer.NewDetail(d.Title, tier, d.Revisions, d.DeliveryTimeInDays, d.Price, d.Features)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	agg, err := offer.NewOffer(ownerID, req.Title, req.Description, req.Image, details)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, cerr := tx.Offers().Create(ctx, tx.DB(), agg); cerr != nil {
			return cerr
		}
		for _, detail := range agg.Details() {
			ids, ferr := resolveFeatureIDs(ctx, tx, detail.Features())
			if ferr != nil {
				return ferr
			}
			if lerr := tx.Offers().LinkDetailFeatures(ctx, tx.DB(), detail.ID(), ids); lerr != nil {
				return lerr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOfferResult{OfferID: agg.ID()}, nil
}

// UpdateOffer merges a partial update. Each details entry addresses an
// existing package by tier; the package row stays locked for the merge
// so concurrent writers serialize instead of losing fields.
func (uc *offerCommandsImpl) UpdateOffer(ctx context.Context, offerID uuid.UUID, req UpdateOfferRequest, actorID uuid.UUID) error {
	if req.Title != nil {
		if _, err := offer.NewTitle(*req.Title); err != nil {
			return err
		}
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByID(ctx, offerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOfferNotFoundWrite)
			}
			return err
		}
		if snap.OwnerID != actorID {
			return ErrOfferNotOwned
		}

		fields := shared.OfferFieldsPatch{
			Title:       req.Title,
			Description: req.Description,
			Image:       req.Image,
		}
		if !fields.IsEmpty() {
			if uerr := tx.Offers().UpdateFields(ctx, tx.DB(), offerID, fields); uerr != nil {
				return uerr
			}
		}

		for _, d := range req.Details {
			tier, terr := offer.NewTier(d.OfferType)
			if terr != nil {
				return UnknownTierError{Tier: d.OfferType}
			}

			locked, lerr := tx.Offers().LockDetail(ctx, tx.DB(), offerID, tier)
			if lerr != nil {
				if infra.IsKind(lerr, infra.KindNotFound) {
					return UnknownTierError{Tier: d.OfferType}
				}
				return lerr
			}

			mergedFeatures := locked.Features
			if d.Features != nil {
				mergedFeatures = d.Features
			}
			// Validates the merged package, not just the supplied fields.
			if _, verr := offer.NewDetail(
				patch.Coalesce(d.Title, locked.Title),
				tier,
				patch.Coalesce(d.Revisions, locked.Revisions),
				patch.Coalesce(d.DeliveryTimeInDays, locked.DeliveryTimeInDays),
				patch.Coalesce(d.Price, locked.Price),
				mergedFeatures,
			); verr != nil {
				return verr
			}

			if uerr := tx.Offers().UpdateDetail(ctx, tx.DB(), locked.ID, shared.DetailPatch{
				Title:              d.Title,
				Revisions:          d.Revisions,
				DeliveryTimeInDays: d.DeliveryTimeInDays,
				Price:              d.Price,
			}); uerr != nil {
				return uerr
			}

			if d.Features != nil {
				ids, ferr := resolveFeatureIDs(ctx, tx, d.Features)
				if ferr != nil {
					return ferr
				}
				if rerr := tx.Offers().ReplaceDetailFeatures(ctx, tx.DB(), locked.ID, ids); rerr != nil {
					return rerr
				}
			}
		}

		// Refreshes updated_at even when only packages changed.
		return tx.Offers().Touch(ctx, tx.DB(), offerID)
	})
}

func (uc *offerCommandsImpl) DeleteOffer(ctx context.Context, offerID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByID(ctx, offerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOfferNotFoundWrite)
			}
			return err
		}
		if snap.OwnerID != actorID {
			return ErrOfferNotOwned
		}

		if derr := tx.Offers().Delete(ctx, tx.DB(), offerID); derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return errs.Mark(derr, ErrOfferInUse)
			}
			return derr
		}
		return nil
	})
}

// resolveFeatureIDs materializes free-text labels through the shared
// get-or-create upsert, preserving request order.
func resolveFeatureIDs(ctx context.Context, tx shared.Tx, labels []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(labels))
	for _, label := range labels {
		id, err := tx.Features().GetOrCreate(ctx, tx.DB(), label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
