package service

import (
	"context"
	"errors"
	"testing"

	"github.com/coursematch/recoengine/modules/config/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Weights: model.Weights{
			SubjectMatch:    0.30,
			GradeMatch:      0.25,
			PreferenceMatch: 0.20,
			Ranking:         0.15,
			Employability:   0.10,
		},
		GradeValue: map[string]int{
			"A*": 6, "A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "U": 0,
		},
		GenericTerms: map[string]bool{
			"General Studies": true,
		},
		GenericTermRules: map[string]model.GenericTermRule{
			"General Studies": {GenericTerm: "General Studies", AllowedSubjects: []string{"Sociology"}},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well formed snapshot", func(t *testing.T) {
		assert.NoError(t, Validate(validSnapshot()))
	})

	t.Run("rejects weights that do not sum to 1", func(t *testing.T) {
		snap := validSnapshot()
		snap.Weights.SubjectMatch = 0.50

		err := Validate(snap)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConfigurationInvalid))
	})

	t.Run("rejects a missing canonical grade", func(t *testing.T) {
		snap := validSnapshot()
		delete(snap.GradeValue, "U")

		err := Validate(snap)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConfigurationInvalid))
	})

	t.Run("rejects a generic_term_rule with a dangling term reference", func(t *testing.T) {
		snap := validSnapshot()
		snap.GenericTermRules["Citizenship Studies"] = model.GenericTermRule{
			GenericTerm:     "Citizenship Studies",
			AllowedSubjects: []string{"Politics"},
		}

		err := Validate(snap)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConfigurationInvalid))
	})
}

type stubRepo struct {
	snap *model.Snapshot
	err  error
}

func (s *stubRepo) Load(ctx context.Context) (*model.Snapshot, error) {
	return s.snap, s.err
}

func TestConfigStore_LoadAndReload(t *testing.T) {
	t.Run("Load installs a valid snapshot", func(t *testing.T) {
		repo := &stubRepo{snap: validSnapshot()}
		store := NewConfigStore(repo)

		require.NoError(t, store.Load(context.Background()))
		assert.NotNil(t, store.Current())
	})

	t.Run("Load returns the validation error and installs nothing", func(t *testing.T) {
		bad := validSnapshot()
		bad.Weights.SubjectMatch = 0.99
		repo := &stubRepo{snap: bad}
		store := NewConfigStore(repo)

		err := store.Load(context.Background())

		require.Error(t, err)
		assert.Nil(t, store.Current())
	})

	t.Run("Reload keeps the previous snapshot when the new one is invalid", func(t *testing.T) {
		repo := &stubRepo{snap: validSnapshot()}
		store := NewConfigStore(repo)
		require.NoError(t, store.Load(context.Background()))
		first := store.Current()

		bad := validSnapshot()
		bad.Weights.Ranking = 0.99
		repo.snap = bad

		err := store.Reload(context.Background())

		require.Error(t, err)
		assert.Same(t, first, store.Current())
	})

	t.Run("Reload swaps in a new valid snapshot", func(t *testing.T) {
		repo := &stubRepo{snap: validSnapshot()}
		store := NewConfigStore(repo)
		require.NoError(t, store.Load(context.Background()))

		updated := validSnapshot()
		updated.Weights.SubjectMatch = 0.35
		updated.Weights.GradeMatch = 0.20
		repo.snap = updated

		require.NoError(t, store.Reload(context.Background()))
		assert.InDelta(t, 0.35, store.Current().Weights.SubjectMatch, 1e-9)
	})
}
