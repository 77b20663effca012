package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// ---- mock repositories -----------------------------------------------------

type mockStoreRepo struct {
	insert    func(ctx context.Context, store *domain.Store) error
	update    func(ctx context.Context, store *domain.Store) error
	findByID  func(ctx context.Context, id string) (*domain.Store, error)
	findSlug  func(ctx context.Context, slug string) (*domain.Store, error)
	findSlugs func(ctx context.Context, pattern, excludeID string) ([]string, error)
	findPage  func(ctx context.Context, skip, limit int) ([]domain.Store, error)
	count     func(ctx context.Context) (int, error)
	findNear  func(ctx context.Context, lng, lat, maxDistance float64, limit int) ([]domain.Store, error)
	search    func(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error)
	findByTag func(ctx context.Context, tag string) ([]domain.Store, error)
	findByIDs func(ctx context.Context, ids []string) ([]domain.Store, error)
	tagCounts func(ctx context.Context) ([]domain.TagCount, error)
	topRated  func(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error)
}

func (m *mockStoreRepo) Insert(ctx context.Context, store *domain.Store) error {
	return m.insert(ctx, store)
}
func (m *mockStoreRepo) Update(ctx context.Context, store *domain.Store) error {
	return m.update(ctx, store)
}
func (m *mockStoreRepo) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	return m.findByID(ctx, id)
}
func (m *mockStoreRepo) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return m.findSlug(ctx, slug)
}
func (m *mockStoreRepo) FindSlugs(ctx context.Context, pattern, excludeID string) ([]string, error) {
	return m.findSlugs(ctx, pattern, excludeID)
}
func (m *mockStoreRepo) FindPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	return m.findPage(ctx, skip, limit)
}
func (m *mockStoreRepo) Count(ctx context.Context) (int, error) {
	return m.count(ctx)
}
func (m *mockStoreRepo) FindNear(ctx context.Context, lng, lat, maxDistance float64, limit int) ([]domain.Store, error) {
	return m.findNear(ctx, lng, lat, maxDistance, limit)
}
func (m *mockStoreRepo) Search(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error) {
	return m.search(ctx, query, limit)
}
func (m *mockStoreRepo) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	return m.findByTag(ctx, tag)
}
func (m *mockStoreRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	return m.findByIDs(ctx, ids)
}
func (m *mockStoreRepo) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	return m.tagCounts(ctx)
}
func (m *mockStoreRepo) TopRated(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error) {
	return m.topRated(ctx, minReviews, limit)
}

type mockReviewRepo struct {
	insert      func(ctx context.Context, review *domain.Review) error
	findByStore func(ctx context.Context, storeID string) ([]domain.Review, error)
}

func (m *mockReviewRepo) Insert(ctx context.Context, review *domain.Review) error {
	return m.insert(ctx, review)
}
func (m *mockReviewRepo) FindByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	return m.findByStore(ctx, storeID)
}

type mockUserRepo struct {
	findByID    func(ctx context.Context, id string) (*domain.User, error)
	toggleHeart func(ctx context.Context, userID, storeID string) (*domain.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.findByID(ctx, id)
}
func (m *mockUserRepo) ToggleHeart(ctx context.Context, userID, storeID string) (*domain.User, error) {
	return m.toggleHeart(ctx, userID, storeID)
}

// compile-time checks
var (
	_ application.StoreRepository  = (*mockStoreRepo)(nil)
	_ application.ReviewRepository = (*mockReviewRepo)(nil)
	_ application.UserRepository   = (*mockUserRepo)(nil)
)

func validCommand() application.UpsertStoreCommand {
	return application.UpsertStoreCommand{
		Name:      "Clean Bandit Café!!",
		Longitude: -79.38,
		Latitude:  43.65,
		Address:   "123 King Street",
		AuthorID:  "author-1",
	}
}

// ---- Create ----------------------------------------------------------------

func TestStoreService_Create_AssignsBaseSlug(t *testing.T) {
	var inserted *domain.Store
	repo := &mockStoreRepo{
		findSlugs: func(_ context.Context, pattern, excludeID string) ([]string, error) {
			assert.Equal(t, "^clean-bandit-cafe(-[0-9]+)?$", pattern)
			assert.Empty(t, excludeID)
			return nil, nil
		},
		insert: func(_ context.Context, store *domain.Store) error {
			inserted = store
			store.ID = "store-1"
			return nil
		},
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	store, err := svc.Create(context.Background(), validCommand())

	require.NoError(t, err)
	assert.Equal(t, "clean-bandit-cafe", store.Slug)
	assert.Equal(t, "Clean Bandit Café!!", store.Name)
	assert.Equal(t, "store-1", store.ID)
	require.NotNil(t, inserted)
	assert.Equal(t, []float64{-79.38, 43.65}, inserted.Location.Coordinates)
	assert.Equal(t, "Point", inserted.Location.Type)
	assert.False(t, inserted.CreatedAt.IsZero())
}

func TestStoreService_Create_SecondStoreGetsNumberedSlug(t *testing.T) {
	repo := &mockStoreRepo{
		findSlugs: func(_ context.Context, _, _ string) ([]string, error) {
			return []string{"clean-bandit-cafe"}, nil
		},
		insert: func(_ context.Context, _ *domain.Store) error { return nil },
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	store, err := svc.Create(context.Background(), validCommand())

	require.NoError(t, err)
	assert.Equal(t, "clean-bandit-cafe-2", store.Slug)
}

func TestStoreService_Create_StripsTagsFromName(t *testing.T) {
	repo := &mockStoreRepo{
		findSlugs: func(_ context.Context, _, _ string) ([]string, error) { return nil, nil },
		insert:    func(_ context.Context, _ *domain.Store) error { return nil },
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	cmd := validCommand()
	cmd.Name = "<em>Harvest Grill</em>"
	store, err := svc.Create(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "Harvest Grill", store.Name)
	assert.Equal(t, "harvest-grill", store.Slug)
}

func TestStoreService_Create_RetriesOnSlugRace(t *testing.T) {
	// The first insert loses a slug race against a concurrent creation;
	// the retry re-scans (now seeing the winner) and lands on -2.
	scans := 0
	repo := &mockStoreRepo{
		findSlugs: func(_ context.Context, _, _ string) ([]string, error) {
			scans++
			if scans == 1 {
				return nil, nil
			}
			return []string{"clean-bandit-cafe"}, nil
		},
		insert: func(_ context.Context, store *domain.Store) error {
			if store.Slug == "clean-bandit-cafe" {
				return domain.ErrSlugTaken
			}
			return nil
		},
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	store, err := svc.Create(context.Background(), validCommand())

	require.NoError(t, err)
	assert.Equal(t, "clean-bandit-cafe-2", store.Slug)
	assert.Equal(t, 2, scans)
}

func TestStoreService_Create_MissingAddress(t *testing.T) {
	svc := application.NewStoreService(&mockStoreRepo{}, &mockReviewRepo{})

	cmd := validCommand()
	cmd.Address = "   "
	_, err := svc.Create(context.Background(), cmd)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStoreService_Create_MissingAuthor(t *testing.T) {
	svc := application.NewStoreService(&mockStoreRepo{}, &mockReviewRepo{})

	cmd := validCommand()
	cmd.AuthorID = ""
	_, err := svc.Create(context.Background(), cmd)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update ----------------------------------------------------------------

func existingStore() *domain.Store {
	return &domain.Store{
		ID:       "store-1",
		Name:     "Clean Bandit Café!!",
		Slug:     "clean-bandit-cafe",
		AuthorID: "author-1",
		Location: domain.Location{
			Type:        "Point",
			Coordinates: []float64{-79.38, 43.65},
			Address:     "123 King Street",
		},
	}
}

func TestStoreService_Update_NonOwnerRejected(t *testing.T) {
	repo := &mockStoreRepo{
		findByID: func(_ context.Context, _ string) (*domain.Store, error) {
			return existingStore(), nil
		},
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	cmd := validCommand()
	cmd.AuthorID = "someone-else"
	_, err := svc.Update(context.Background(), "store-1", cmd)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestStoreService_Update_UnchangedNameKeepsSlug(t *testing.T) {
	// Re-running the assigner for the same name must be a no-op: the slug
	// does not drift and no collision scan happens at all.
	repo := &mockStoreRepo{
		findByID: func(_ context.Context, _ string) (*domain.Store, error) {
			return existingStore(), nil
		},
		findSlugs: func(_ context.Context, _, _ string) ([]string, error) {
			t.Fatal("collision scan must not run when the name is unchanged")
			return nil, nil
		},
		update: func(_ context.Context, _ *domain.Store) error { return nil },
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	cmd := validCommand()
	cmd.Description = "new description"
	store, err := svc.Update(context.Background(), "store-1", cmd)

	require.NoError(t, err)
	assert.Equal(t, "clean-bandit-cafe", store.Slug)
	assert.Equal(t, "new description", store.Description)
}

func TestStoreService_Update_NameChangeRecomputesSlug(t *testing.T) {
	var scannedExclude string
	repo := &mockStoreRepo{
		findByID: func(_ context.Context, _ string) (*domain.Store, error) {
			return existingStore(), nil
		},
		findSlugs: func(_ context.Context, pattern, excludeID string) ([]string, error) {
			scannedExclude = excludeID
			assert.Equal(t, "^harvest-grill(-[0-9]+)?$", pattern)
			return nil, nil
		},
		update: func(_ context.Context, _ *domain.Store) error { return nil },
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	cmd := validCommand()
	cmd.Name = "Harvest Grill"
	store, err := svc.Update(context.Background(), "store-1", cmd)

	require.NoError(t, err)
	assert.Equal(t, "harvest-grill", store.Slug)
	assert.Equal(t, "store-1", scannedExclude, "scan must exclude the store's own record")
}

func TestStoreService_Update_MissingStore(t *testing.T) {
	repo := &mockStoreRepo{
		findByID: func(_ context.Context, _ string) (*domain.Store, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := application.NewStoreService(repo, &mockReviewRepo{})

	_, err := svc.Update(context.Background(), "missing", validCommand())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- BySlug ----------------------------------------------------------------

func TestStoreService_BySlug_JoinsReviews(t *testing.T) {
	repo := &mockStoreRepo{
		findSlug: func(_ context.Context, slug string) (*domain.Store, error) {
			assert.Equal(t, "clean-bandit-cafe", slug)
			return existingStore(), nil
		},
	}
	reviews := &mockReviewRepo{
		findByStore: func(_ context.Context, storeID string) ([]domain.Review, error) {
			assert.Equal(t, "store-1", storeID)
			return []domain.Review{{ID: "review-1", StoreID: storeID, Rating: 5}}, nil
		},
	}
	svc := application.NewStoreService(repo, reviews)

	store, got, err := svc.BySlug(context.Background(), "clean-bandit-cafe")

	require.NoError(t, err)
	assert.Equal(t, "store-1", store.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "review-1", got[0].ID)
}
