package service

import (
	"context"
	"errors"
	"testing"

	"trailblazer/internal/domain/park/model"
	"trailblazer/internal/domain/park/repository"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/internal/pkg/nps"
	"trailblazer/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSource struct {
	parks map[string][]nps.Park
	err   error
	asked []string
}

func (f *fakeSource) ParksByState(ctx context.Context, stateCode string) ([]nps.Park, error) {
	f.asked = append(f.asked, stateCode)
	if f.err != nil {
		return nil, f.err
	}
	return f.parks[stateCode], nil
}

// failingRepo 在第 failOn 次 Create 时返回错误
type failingRepo struct {
	repository.ParkRepository
	creates int
	failOn  int
}

func (r *failingRepo) Create(ctx context.Context, park *model.Park) error {
	r.creates++
	if r.creates == r.failOn {
		return errors.New("disk full")
	}
	return r.ParkRepository.Create(ctx, park)
}

func newParkService(db *gorm.DB, repo repository.ParkRepository, src ParkSource) ParkService {
	return NewParkService(repo, trailRepository.NewTrailRepository(db), src, nil)
}

func TestParkService_ImportByState(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts then updates by nps id", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		src := &fakeSource{parks: map[string][]nps.Park{
			"CA": {
				{ID: "abc", Name: "Yosemite National Park", Latitude: "37.84", Longitude: "-119.55"},
				{ID: "def", Name: "Pinnacles National Park", Latitude: "", Longitude: "bad"},
			},
		}}
		s := newParkService(db, repository.NewParkRepository(db), src)

		res, err := s.ImportByState(ctx, " ca ")
		require.NoError(t, err)
		assert.Equal(t, &model.ImportResult{State: "CA", Inserted: 2, Total: 2}, res)
		assert.Equal(t, []string{"CA"}, src.asked)

		parks, err := s.ListParks(ctx, "ca")
		require.NoError(t, err)
		require.Len(t, parks, 2)
		assert.Equal(t, "Pinnacles National Park", parks[0].Name)
		assert.Nil(t, parks[0].Lat)
		assert.Nil(t, parks[0].Lon)
		require.NotNil(t, parks[1].Lat)
		assert.InDelta(t, 37.84, *parks[1].Lat, 1e-9)

		src.parks["CA"][0].Name = "Yosemite"
		res, err = s.ImportByState(ctx, "CA")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Inserted)
		assert.Equal(t, 2, res.Updated)

		parks, err = s.ListParks(ctx, "CA")
		require.NoError(t, err)
		require.Len(t, parks, 2)
		assert.Equal(t, "Yosemite", parks[1].Name)
	})

	t.Run("matches community park by name and state", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		repo := repository.NewParkRepository(db)
		state := "UT"
		require.NoError(t, repo.Create(ctx, &model.Park{Name: "Zion National Park", State: &state}))

		src := &fakeSource{parks: map[string][]nps.Park{
			"UT": {{ID: "zion", Name: "Zion National Park"}},
		}}
		res, err := newParkService(db, repo, src).ImportByState(ctx, "UT")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Updated)

		parks, err := repo.List(ctx, "UT")
		require.NoError(t, err)
		require.Len(t, parks, 1)
		require.NotNil(t, parks[0].NPSID)
		assert.Equal(t, "zion", *parks[0].NPSID)
	})

	t.Run("blank name falls back", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		repo := repository.NewParkRepository(db)
		src := &fakeSource{parks: map[string][]nps.Park{"WY": {{ID: "x", Name: "  "}}}}

		_, err := newParkService(db, repo, src).ImportByState(ctx, "WY")
		require.NoError(t, err)

		parks, err := repo.List(ctx, "WY")
		require.NoError(t, err)
		require.Len(t, parks, 1)
		assert.Equal(t, "Unnamed Park", parks[0].Name)
	})

	t.Run("empty state code", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		src := &fakeSource{}
		_, err := newParkService(db, repository.NewParkRepository(db), src).ImportByState(ctx, "  ")
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Empty(t, src.asked)
	})

	t.Run("upstream failure", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		src := &fakeSource{err: nps.ErrMissingAPIKey}
		_, err := newParkService(db, repository.NewParkRepository(db), src).ImportByState(ctx, "CA")
		assert.ErrorIs(t, err, apperr.ErrUpstream)
	})

	t.Run("partial import keeps earlier rows", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		repo := &failingRepo{ParkRepository: repository.NewParkRepository(db), failOn: 2}
		src := &fakeSource{parks: map[string][]nps.Park{
			"CO": {{ID: "a", Name: "Rocky Mountain"}, {ID: "b", Name: "Mesa Verde"}, {ID: "c", Name: "Great Sand Dunes"}},
		}}

		_, err := newParkService(db, repo, src).ImportByState(ctx, "CO")
		assert.ErrorIs(t, err, apperr.ErrUpstream)

		parks, err := repo.List(ctx, "CO")
		require.NoError(t, err)
		require.Len(t, parks, 1)
		assert.Equal(t, "Rocky Mountain", parks[0].Name)
	})
}

func TestParkService_Lookups(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	s := newParkService(db, repository.NewParkRepository(db), &fakeSource{})

	_, err := s.GetPark(ctx, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.ListParkTrails(ctx, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
