package application_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// ---- FindNear --------------------------------------------------------------

func TestDiscoveryService_FindNear_RejectsNonFiniteCoordinates(t *testing.T) {
	svc := application.NewDiscoveryService(&mockStoreRepo{})

	for _, lng := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.FindNear(context.Background(), lng, 43.65, 0, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	_, err := svc.FindNear(context.Background(), -79.38, math.NaN(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDiscoveryService_FindNear_AppliesDefaults(t *testing.T) {
	var gotDistance float64
	var gotLimit int
	repo := &mockStoreRepo{
		findNear: func(_ context.Context, lng, lat, maxDistance float64, limit int) ([]domain.Store, error) {
			assert.Equal(t, -79.38, lng)
			assert.Equal(t, 43.65, lat)
			gotDistance = maxDistance
			gotLimit = limit
			return []domain.Store{}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	_, err := svc.FindNear(context.Background(), -79.38, 43.65, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, application.DefaultMaxDistance, gotDistance)
	assert.Equal(t, application.DefaultNearLimit, gotLimit)
}

func TestDiscoveryService_FindNear_KeepsExplicitBounds(t *testing.T) {
	repo := &mockStoreRepo{
		findNear: func(_ context.Context, _, _, maxDistance float64, limit int) ([]domain.Store, error) {
			assert.Equal(t, 2500.0, maxDistance)
			assert.Equal(t, 3, limit)
			return []domain.Store{}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	_, err := svc.FindNear(context.Background(), -79.38, 43.65, 2500, 3)
	require.NoError(t, err)
}

// ---- Search ----------------------------------------------------------------

func TestDiscoveryService_Search_RejectsEmptyQuery(t *testing.T) {
	svc := application.NewDiscoveryService(&mockStoreRepo{})

	_, err := svc.Search(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDiscoveryService_Search_TrimsAndAppliesDefaultLimit(t *testing.T) {
	repo := &mockStoreRepo{
		search: func(_ context.Context, query string, limit int) ([]domain.ScoredStore, error) {
			assert.Equal(t, "coffee", query)
			assert.Equal(t, application.DefaultSearchLimit, limit)
			return []domain.ScoredStore{{Store: domain.Store{ID: "store-1"}, Score: 1.5}}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	got, err := svc.Search(context.Background(), "  coffee ", 0)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.5, got[0].Score)
}

// ---- TopRated --------------------------------------------------------------

func TestDiscoveryService_TopRated_AppliesDefaults(t *testing.T) {
	repo := &mockStoreRepo{
		topRated: func(_ context.Context, minReviews, limit int) ([]domain.RatedStore, error) {
			assert.Equal(t, application.DefaultMinReviews, minReviews)
			assert.Equal(t, application.DefaultTopStoreRows, limit)
			return []domain.RatedStore{}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	_, err := svc.TopRated(context.Background(), 0, 0)
	require.NoError(t, err)
}

// ---- ListPage --------------------------------------------------------------

func TestDiscoveryService_ListPage_ComputesSkipAndInfo(t *testing.T) {
	repo := &mockStoreRepo{
		count: func(_ context.Context) (int, error) { return 9, nil },
		findPage: func(_ context.Context, skip, limit int) ([]domain.Store, error) {
			assert.Equal(t, 4, skip)
			assert.Equal(t, 4, limit)
			return []domain.Store{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	stores, info, err := svc.ListPage(context.Background(), domain.NewPageRequest(2, 4))

	require.NoError(t, err)
	assert.Len(t, stores, 4)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 9, info.TotalCount)
	assert.Equal(t, 0, info.RedirectTo)
}

func TestDiscoveryService_ListPage_PastTheEndRedirects(t *testing.T) {
	repo := &mockStoreRepo{
		count: func(_ context.Context) (int, error) { return 3, nil },
		findPage: func(_ context.Context, skip, _ int) ([]domain.Store, error) {
			assert.Equal(t, 4, skip)
			return []domain.Store{}, nil
		},
	}
	svc := application.NewDiscoveryService(repo)

	stores, info, err := svc.ListPage(context.Background(), domain.NewPageRequest(2, 4))

	require.NoError(t, err)
	assert.Empty(t, stores)
	assert.Equal(t, 1, info.RedirectTo)
}
