package service

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/coursematch/recoengine/modules/config/model"
	"github.com/coursematch/recoengine/modules/config/ports"
)

const weightTolerance = 1e-6

// ConfigStore holds a validated configuration Snapshot behind an atomic
// pointer so that a reload can swap it in without locking readers. Every
// request reads whatever snapshot was current when the request began —
// configuration is frozen for the duration of a request (see spec §3
// Lifecycle), never mutated mid-flight.
type ConfigStore struct {
	repo     ports.ConfigRepository
	snapshot atomic.Pointer[model.Snapshot]
}

// NewConfigStore creates a store backed by repo. Load must be called
// before Current is used.
func NewConfigStore(repo ports.ConfigRepository) *ConfigStore {
	return &ConfigStore{repo: repo}
}

// Load fetches the configuration from the repository, validates it, and
// installs it as the current snapshot. Failure here is fatal at process
// startup per spec §4.1 / §7.
func (s *ConfigStore) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := Validate(snap); err != nil {
		return err
	}
	s.snapshot.Store(snap)
	return nil
}

// Reload re-reads and re-validates configuration, swapping it in only if
// valid. An invalid reload leaves the previous snapshot in place and
// returns the validation error — a hot-reload is never allowed to leave
// the engine without usable configuration.
func (s *ConfigStore) Reload(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := Validate(snap); err != nil {
		return err
	}
	s.snapshot.Store(snap)
	return nil
}

// Current returns the presently installed snapshot. Returns nil if Load
// was never called.
func (s *ConfigStore) Current() *model.Snapshot {
	return s.snapshot.Load()
}

// Validate checks the invariants spec §4.1 requires at load time:
// weights sum to 1.0 within tolerance, every canonical grade letter is
// known, and every generic_term_rule references a term that exists.
func Validate(snap *model.Snapshot) error {
	sum := snap.Weights.Sum()
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: recommendation_weight sums to %f, expected 1.0", model.ErrConfigurationInvalid, sum)
	}

	for _, letter := range model.CanonicalGrades {
		if _, ok := snap.GradeValue[letter]; !ok {
			return fmt.Errorf("%w: grade_value missing canonical grade %q", model.ErrConfigurationInvalid, letter)
		}
	}

	for term := range snap.GenericTermRules {
		if !snap.GenericTerms[term] {
			return fmt.Errorf("%w: generic_term_rule references unknown generic_term %q", model.ErrConfigurationInvalid, term)
		}
	}

	return nil
}
