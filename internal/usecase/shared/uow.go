package shared

import (
	"context"

	"marketplace-api/internal/domain/offer"
	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/review"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Offers() OfferRepository
	Orders() OrderRepository
	Features() FeatureRepository
	Reviews() ReviewRepository
	Users() UserRepository
	Profiles() ProfileRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
	DetailByID(ctx context.Context, id uuid.UUID) (*DetailSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	HasReviewForBusiness(ctx context.Context, reviewerID, businessUserID uuid.UUID) (bool, error)
}

type OfferRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error)
	UpdateFields(ctx context.Context, tx db.DBTX, offerID uuid.UUID, fields OfferFieldsPatch) error
	// LockDetail loads one package row FOR UPDATE so tier merges are not
	// lost under concurrent writers. Returns KindNotFound when the offer
	// has no package of that tier.
	LockDetail(ctx context.Context, tx db.DBTX, offerID uuid.UUID, tier offer.Tier) (*DetailSnapshot, error)
	UpdateDetail(ctx context.Context, tx db.DBTX, detailID uuid.UUID, patch DetailPatch) error
	LinkDetailFeatures(ctx context.Context, tx db.DBTX, detailID uuid.UUID, featureIDs []uuid.UUID) error
	ReplaceDetailFeatures(ctx context.Context, tx db.DBTX, detailID uuid.UUID, featureIDs []uuid.UUID) error
	Touch(ctx context.Context, tx db.DBTX, offerID uuid.UUID) error
	// Delete cascades packages; surfaces KindForeignKeyViolated when a
	// package is still referenced by an order.
	Delete(ctx context.Context, tx db.DBTX, offerID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	LinkFeatures(ctx context.Context, tx db.DBTX, orderID uuid.UUID, featureIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status) error
	Delete(ctx context.Context, tx db.DBTX, orderID uuid.UUID) error
}

// FeatureRepository resolves free-text labels to shared feature rows.
// GetOrCreate is an upsert keyed by name: at most one row per name even
// under concurrent creation.
type FeatureRepository interface {
	GetOrCreate(ctx context.Context, tx db.DBTX, name string) (uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, reviewID uuid.UUID, rating int, description string) error
	Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type ProfileRepository interface {
	CreateEmpty(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	UpdateFields(ctx context.Context, tx db.DBTX, userID uuid.UUID, fields ProfileFieldsPatch) error
}
