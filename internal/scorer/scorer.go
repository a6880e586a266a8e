// Package scorer turns a complete answer set into a score vector and
// a stable ranking. All functions are pure: same input, same output,
// no shared state.
package scorer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/everinsight/discprofile/internal/model"
)

// IncompleteAnswerSetError reports the specific items left unanswered
// (or answered with an out-of-range option index). Callers surface
// the IDs to the respondent so they can fix exactly those items.
type IncompleteAnswerSetError struct {
	Missing []int
}

func (e *IncompleteAnswerSetError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("incomplete answer set: missing items %s", strings.Join(parts, ", "))
}

// Score tallies one point per answered item into the selected
// option's dimension. It requires exactly one in-range response per
// item in the bank; otherwise it returns an *IncompleteAnswerSetError
// listing the offending item IDs in ascending order.
func Score(answers model.AnswerSet, items []model.Item) (model.ScoreVector, error) {
	var missing []int
	var v model.ScoreVector

	for _, it := range items {
		idx, ok := answers[it.ID]
		if !ok || idx < 0 || idx >= len(it.Options) {
			missing = append(missing, it.ID)
			continue
		}
		v.Add(it.Options[idx].Dim)
	}

	if len(missing) > 0 {
		sort.Ints(missing)
		return model.ScoreVector{}, &IncompleteAnswerSetError{Missing: missing}
	}
	return v, nil
}

// Choices resolves a complete answer set into the ordered choice list
// stored in the session record. Score must have succeeded on the same
// inputs first.
func Choices(answers model.AnswerSet, items []model.Item) []model.Choice {
	choices := make([]model.Choice, 0, len(items))
	for _, it := range items {
		idx, ok := answers[it.ID]
		if !ok || idx < 0 || idx >= len(it.Options) {
			continue
		}
		opt := it.Options[idx]
		choices = append(choices, model.Choice{QID: it.ID, Choice: opt.Label, Dim: opt.Dim})
	}
	return choices
}

// Rank orders the four dimensions by score descending. Ties are
// broken by the fixed priority D > I > S > C, so the result is a
// total order for every input.
func Rank(v model.ScoreVector) model.Ranking {
	var r model.Ranking
	for i, d := range model.Dimensions {
		r[i] = model.RankedDimension{Dim: d, Score: v.Get(d)}
	}
	sort.SliceStable(r[:], func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
	return r
}
