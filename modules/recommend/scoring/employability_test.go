package scoring

import (
	"testing"

	catalogue "github.com/coursematch/recoengine/modules/catalogue/model"
	recommendmodel "github.com/coursematch/recoengine/modules/recommend/model"
	"github.com/stretchr/testify/assert"
)

func TestEmployabilityScorer_Score(t *testing.T) {
	scorer := NewEmployabilityScorer()

	t.Run("neutral when employment rate is unknown", func(t *testing.T) {
		assert.Equal(t, 0.5, scorer.Score(recommendmodel.StudentProfile{}, &catalogue.Course{}))
	})

	t.Run("divides the rate by 100", func(t *testing.T) {
		rate := 87.5
		assert.Equal(t, 0.875, scorer.Score(recommendmodel.StudentProfile{}, &catalogue.Course{EmploymentRate: &rate}))
	})
}
