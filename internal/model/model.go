package model

import (
	"context"
	"strings"
	"time"
)

// Dimension is one of the four DISC behavioral dimensions.
type Dimension string

const (
	// DimD is Dominance: results-oriented, direct, likes to decide.
	DimD Dimension = "D"
	// DimI is Influence: sociable, expressive, likes to convince.
	DimI Dimension = "I"
	// DimS is Stability: calm, cooperative, seeks harmony.
	DimS Dimension = "S"
	// DimC is Conformity: rigorous, structured, quality-driven.
	DimC Dimension = "C"
)

// Dimensions lists the four dimensions in their fixed priority order.
// This order is also the tie-break order when ranking scores.
var Dimensions = [4]Dimension{DimD, DimI, DimS, DimC}

// DimensionName returns the full French name of a dimension.
func DimensionName(d Dimension) string {
	switch d {
	case DimD:
		return "Dominance"
	case DimI:
		return "Influence"
	case DimS:
		return "Stabilité"
	case DimC:
		return "Conformité"
	}
	return string(d)
}

// Option is one of the four choices offered by an item, pre-tagged
// with the dimension it counts toward.
type Option struct {
	Label string    `json:"label"`
	Dim   Dimension `json:"dim"`
}

// Item is a forced-choice questionnaire item. Each of its four
// options maps to a distinct dimension.
type Item struct {
	ID      int      `json:"id"`
	Stem    string   `json:"stem"`
	Options []Option `json:"options"`
}

// AnswerSet maps an item ID to the index of the selected option.
// A complete set holds exactly one entry per item in the bank.
type AnswerSet map[int]int

// ScoreVector holds the tally per dimension. For a complete answer
// set the four counts sum to the number of items in the bank.
type ScoreVector struct {
	D int `json:"D"`
	I int `json:"I"`
	S int `json:"S"`
	C int `json:"C"`
}

// Get returns the count for a dimension.
func (v ScoreVector) Get(d Dimension) int {
	switch d {
	case DimD:
		return v.D
	case DimI:
		return v.I
	case DimS:
		return v.S
	case DimC:
		return v.C
	}
	return 0
}

// Add increments the count for a dimension.
func (v *ScoreVector) Add(d Dimension) {
	switch d {
	case DimD:
		v.D++
	case DimI:
		v.I++
	case DimS:
		v.S++
	case DimC:
		v.C++
	}
}

// Total returns the sum of the four counts.
func (v ScoreVector) Total() int {
	return v.D + v.I + v.S + v.C
}

// RankedDimension pairs a dimension with its score.
type RankedDimension struct {
	Dim   Dimension `json:"dim"`
	Score int       `json:"score"`
}

// Ranking is the four dimensions ordered by score descending,
// ties broken by the fixed priority D > I > S > C.
type Ranking [4]RankedDimension

// TopTwo returns the two highest-ranked dimensions.
func (r Ranking) TopTwo() [2]Dimension {
	return [2]Dimension{r[0].Dim, r[1].Dim}
}

// StyleCode is the two-letter code of the top two dimensions, e.g. "DI".
func (r Ranking) StyleCode() string {
	return string(r[0].Dim) + string(r[1].Dim)
}

// Dominant returns the highest-ranked dimension.
func (r Ranking) Dominant() Dimension {
	return r[0].Dim
}

// Choice records one answered item for the session log.
type Choice struct {
	QID    int       `json:"qid"`
	Choice string    `json:"choice"`
	Dim    Dimension `json:"dim"`
}

// RecordVersion is the current session record schema version.
const RecordVersion = 1

// SessionRecord is one completed questionnaire submission. Records
// are immutable once written and appended to the session log.
type SessionRecord struct {
	Version int          `json:"v"`
	TS      string       `json:"ts"`
	User    string       `json:"user"`
	Scores  ScoreVector  `json:"scores"`
	Style   string       `json:"style"`
	TopDims [2]Dimension `json:"top_dims"`
	Choices []Choice     `json:"choices"`
}

// NewSessionRecord assembles an immutable record for a completed
// submission, stamped with the current UTC time.
func NewSessionRecord(key string, scores ScoreVector, ranking Ranking, choices []Choice) SessionRecord {
	return SessionRecord{
		Version: RecordVersion,
		TS:      time.Now().UTC().Format(time.RFC3339),
		User:    NormalizeKey(key),
		Scores:  scores,
		Style:   ranking.StyleCode(),
		TopDims: ranking.TopTwo(),
		Choices: choices,
	}
}

// NormalizeKey applies the respondent-key comparison contract:
// trimmed and lower-cased.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Respondent holds the identity supplied by the identity collaborator.
// The core only uses it as an opaque lookup key and for display.
type Respondent struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	JobTitle  string
	Company   string
	Bio       string
	CreatedAt time.Time
}

// Key returns the normalized respondent key used for log lookups.
func (r Respondent) Key() string {
	return NormalizeKey(r.Email)
}

// DisplayName returns the first name, falling back to the local part
// of the e-mail address.
func (r Respondent) DisplayName() string {
	if name := strings.TrimSpace(r.FirstName); name != "" {
		return name
	}
	if at := strings.IndexByte(r.Email, '@'); at > 0 {
		return r.Email[:at]
	}
	return "participant"
}

// NarrativeLine is one templated sentence attributed to a dimension.
type NarrativeLine struct {
	Dim  Dimension `json:"dim"`
	Name string    `json:"name"`
	Text string    `json:"text"`
}

// NarrativeSections is the structured narrative built from a score
// vector and its ranking. Plain text only; rendering is layered on top.
type NarrativeSections struct {
	Identity    string          `json:"identity"`
	Strengths   []NarrativeLine `json:"strengths"`
	Excesses    []NarrativeLine `json:"excesses"`
	Development []NarrativeLine `json:"development"`
}

// Reflections holds the two free-text action-plan blocks entered by
// the respondent, possibly empty.
type Reflections struct {
	Success   string `json:"success"`
	Difficult string `json:"difficult"`
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	BasePath      string // URL prefix for sub-path deployments (e.g. "/fr")
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
	PortalURL     string // Where denied visitors are sent to request access
	RequireToken  bool   // Gate every page behind the access validator
}

type respondentCtxKey struct{}

// ContextWithRespondent stores a respondent in the request context.
func ContextWithRespondent(ctx context.Context, r *Respondent) context.Context {
	return context.WithValue(ctx, respondentCtxKey{}, r)
}

// RespondentFromContext retrieves the respondent from context, or nil.
func RespondentFromContext(ctx context.Context) *Respondent {
	r, _ := ctx.Value(respondentCtxKey{}).(*Respondent)
	return r
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}
