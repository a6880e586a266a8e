package scorer

import (
	"errors"
	"testing"

	"github.com/everinsight/discprofile/internal/bank"
	"github.com/everinsight/discprofile/internal/model"
)

// answersByDim builds a complete answer set selecting, for every item,
// the option tagged with the wanted dimension. With the balanced bank
// this yields a score of 25 on that dimension and 0 elsewhere.
func answersByDim(t *testing.T, d model.Dimension) model.AnswerSet {
	t.Helper()
	answers := model.AnswerSet{}
	for _, it := range bank.Items() {
		for idx, opt := range it.Options {
			if opt.Dim == d {
				answers[it.ID] = idx
				break
			}
		}
	}
	return answers
}

func TestScoreAllOneDimension(t *testing.T) {
	for _, d := range model.Dimensions {
		v, err := Score(answersByDim(t, d), bank.Items())
		if err != nil {
			t.Fatalf("Score(%s): %v", d, err)
		}
		if v.Get(d) != bank.Size {
			t.Errorf("dimension %s: expected %d, got %d", d, bank.Size, v.Get(d))
		}
		if v.Total() != bank.Size {
			t.Errorf("dimension %s: expected total %d, got %d", d, bank.Size, v.Total())
		}
	}
}

func TestScoreTotalAlwaysBankSize(t *testing.T) {
	// Rotate across dimensions per item so the counts spread out.
	answers := model.AnswerSet{}
	for i, it := range bank.Items() {
		answers[it.ID] = i % 4
	}
	v, err := Score(answers, bank.Items())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if v.Total() != bank.Size {
		t.Errorf("expected total %d, got %d", bank.Size, v.Total())
	}
}

func TestScoreMissingItems(t *testing.T) {
	answers := answersByDim(t, model.DimD)
	delete(answers, 13)
	delete(answers, 2)

	_, err := Score(answers, bank.Items())
	if err == nil {
		t.Fatal("expected error for incomplete answers")
	}
	var incErr *IncompleteAnswerSetError
	if !errors.As(err, &incErr) {
		t.Fatalf("expected IncompleteAnswerSetError, got %T", err)
	}
	if len(incErr.Missing) != 2 || incErr.Missing[0] != 2 || incErr.Missing[1] != 13 {
		t.Errorf("expected missing [2 13], got %v", incErr.Missing)
	}
	if want := "incomplete answer set: missing items 2, 13"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestScoreOutOfRangeIndex(t *testing.T) {
	answers := answersByDim(t, model.DimS)
	answers[7] = 4
	answers[9] = -1

	_, err := Score(answers, bank.Items())
	var incErr *IncompleteAnswerSetError
	if !errors.As(err, &incErr) {
		t.Fatalf("expected IncompleteAnswerSetError, got %v", err)
	}
	if len(incErr.Missing) != 2 || incErr.Missing[0] != 7 || incErr.Missing[1] != 9 {
		t.Errorf("expected missing [7 9], got %v", incErr.Missing)
	}
}

func TestScoreDeterministic(t *testing.T) {
	answers := model.AnswerSet{}
	for i, it := range bank.Items() {
		answers[it.ID] = (i * 3) % 4
	}
	v1, err := Score(answers, bank.Items())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	v2, err := Score(answers, bank.Items())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if v1 != v2 {
		t.Errorf("same answers scored differently: %+v vs %+v", v1, v2)
	}
}

func TestScoreMixedAnswerSet(t *testing.T) {
	// Items 1-10 toward D, 11-17 toward I, 18-22 toward S, 23-25
	// toward C: a clean DI profile assembled from the real bank.
	dimFor := func(id int) model.Dimension {
		switch {
		case id <= 10:
			return model.DimD
		case id <= 17:
			return model.DimI
		case id <= 22:
			return model.DimS
		default:
			return model.DimC
		}
	}
	answers := model.AnswerSet{}
	for _, it := range bank.Items() {
		want := dimFor(it.ID)
		for idx, opt := range it.Options {
			if opt.Dim == want {
				answers[it.ID] = idx
				break
			}
		}
	}

	v, err := Score(answers, bank.Items())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if want := (model.ScoreVector{D: 10, I: 7, S: 5, C: 3}); v != want {
		t.Fatalf("expected %+v, got %+v", want, v)
	}

	ranking := Rank(v)
	if ranking.StyleCode() != "DI" {
		t.Errorf("expected style DI, got %s", ranking.StyleCode())
	}
	if top := ranking.TopTwo(); top != [2]model.Dimension{model.DimD, model.DimI} {
		t.Errorf("expected top dims [D I], got %v", top)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name      string
		v         model.ScoreVector
		wantOrder [4]model.Dimension
		wantStyle string
	}{
		{
			name:      "distinct scores",
			v:         model.ScoreVector{D: 10, I: 7, S: 5, C: 3},
			wantOrder: [4]model.Dimension{model.DimD, model.DimI, model.DimS, model.DimC},
			wantStyle: "DI",
		},
		{
			name:      "single winner with three-way tie",
			v:         model.ScoreVector{D: 5, I: 5, S: 10, C: 5},
			wantOrder: [4]model.Dimension{model.DimS, model.DimD, model.DimI, model.DimC},
			wantStyle: "SD",
		},
		{
			name:      "all equal falls back to priority order",
			v:         model.ScoreVector{D: 6, I: 6, S: 6, C: 7},
			wantOrder: [4]model.Dimension{model.DimC, model.DimD, model.DimI, model.DimS},
			wantStyle: "CD",
		},
		{
			name:      "full tie",
			v:         model.ScoreVector{D: 6, I: 6, S: 6, C: 6},
			wantOrder: [4]model.Dimension{model.DimD, model.DimI, model.DimS, model.DimC},
			wantStyle: "DI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rank(tt.v)
			for i, want := range tt.wantOrder {
				if r[i].Dim != want {
					t.Errorf("position %d: expected %s, got %s", i, want, r[i].Dim)
				}
				if r[i].Score != tt.v.Get(want) {
					t.Errorf("position %d: expected score %d, got %d", i, tt.v.Get(want), r[i].Score)
				}
			}
			if r.StyleCode() != tt.wantStyle {
				t.Errorf("expected style %s, got %s", tt.wantStyle, r.StyleCode())
			}
		})
	}
}

func TestChoices(t *testing.T) {
	answers := answersByDim(t, model.DimI)
	choices := Choices(answers, bank.Items())
	if len(choices) != bank.Size {
		t.Fatalf("expected %d choices, got %d", bank.Size, len(choices))
	}
	for i, c := range choices {
		if c.QID != i+1 {
			t.Errorf("choice %d: expected qid %d, got %d", i, i+1, c.QID)
		}
		if c.Dim != model.DimI {
			t.Errorf("choice %d: expected dim I, got %s", i, c.Dim)
		}
		if c.Choice == "" {
			t.Errorf("choice %d has empty label", i)
		}
	}
}
