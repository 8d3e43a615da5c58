package queries

import (
	"context"

	"marketplace-api/internal/pkg/errs"
)

type BaseInfoReadStore interface {
	GetBaseInfo(ctx context.Context) (*BaseInfoView, error)
}

type BaseInfoQueries interface {
	Get(ctx context.Context) (*BaseInfoView, error)
}

type baseInfoQueriesImpl struct {
	store BaseInfoReadStore
}

func NewBaseInfoQueries(store BaseInfoReadStore) BaseInfoQueries {
	return &baseInfoQueriesImpl{store: store}
}

func (q *baseInfoQueriesImpl) Get(ctx context.Context) (*BaseInfoView, error) {
	view, err := q.store.GetBaseInfo(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to get base info")
	}
	return view, nil
}
