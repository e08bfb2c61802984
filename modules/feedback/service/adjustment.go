package service

import (
	"math"
	"strings"
	"time"

	configmodel "github.com/coursematch/recoengine/modules/config/model"
	"github.com/coursematch/recoengine/modules/feedback/model"
)

const (
	adjustmentFloor   = -0.3
	adjustmentCeiling = 0.2
)

// ComputeAdjustment implements C5: it combines the requesting student's
// own feedback on a course with peer feedback from students who share
// at least two subjects or one career interest, each time-decayed by
// age, and returns a value clamped to [-0.3, 0.2].
func ComputeAdjustment(
	now time.Time,
	userID string,
	subjects []string,
	careerInterests []string,
	records []*model.FeedbackRecord,
	settings configmodel.FeedbackSettings,
) float64 {
	var own, peer []*model.FeedbackRecord
	for _, rec := range records {
		if rec.UserID == userID {
			own = append(own, rec)
			continue
		}
		if isPeer(subjects, careerInterests, rec) {
			peer = append(peer, rec)
		}
	}

	ownSignal := decayedSignal(now, own, settings)
	peerSignal := decayedSignal(now, peer, settings)

	if len(own) < settings.MinFeedbackCount {
		ownSignal = 0
	}
	if len(peer) < settings.MinFeedbackCount {
		peerSignal = 0
	}

	adjustment := settings.OwnWeight*ownSignal + settings.PeerWeight*peerSignal
	return clamp(adjustment, adjustmentFloor, adjustmentCeiling)
}

func isPeer(subjects, careerInterests []string, rec *model.FeedbackRecord) bool {
	sharedSubjects := 0
	subjectSet := toSet(subjects)
	for _, s := range rec.Subjects {
		if subjectSet[normalize(s)] {
			sharedSubjects++
		}
	}
	if sharedSubjects >= 2 {
		return true
	}

	interestSet := toSet(careerInterests)
	for _, i := range rec.CareerInterests {
		if interestSet[normalize(i)] {
			return true
		}
	}
	return false
}

func decayedSignal(now time.Time, records []*model.FeedbackRecord, settings configmodel.FeedbackSettings) float64 {
	if len(records) == 0 || settings.DecayDays <= 0 {
		return 0
	}

	var total float64
	for _, rec := range records {
		ageDays := now.Sub(rec.CreatedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		decay := math.Exp(-ageDays / settings.DecayDays)

		var sign float64
		switch rec.Kind {
		case model.KindPositive:
			sign = settings.PositiveBoost
		case model.KindNegative:
			sign = -settings.NegativePenalty
		}
		total += sign * decay
	}
	return total
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[normalize(v)] = true
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
