// Package handler wires the HTTP surface of the questionnaire: the
// identity form, the forced-choice form, the scored results page and
// its downloadable artifacts. Validation happens here at the
// boundary; the scoring pipeline itself assumes complete input.
package handler

import (
	"encoding/base64"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/everinsight/discprofile/internal/access"
	"github.com/everinsight/discprofile/internal/bank"
	"github.com/everinsight/discprofile/internal/chart"
	"github.com/everinsight/discprofile/internal/coach"
	appI18n "github.com/everinsight/discprofile/internal/i18n"
	"github.com/everinsight/discprofile/internal/model"
	"github.com/everinsight/discprofile/internal/narrative"
	"github.com/everinsight/discprofile/internal/notify"
	"github.com/everinsight/discprofile/internal/report"
	"github.com/everinsight/discprofile/internal/scorer"
	"github.com/everinsight/discprofile/internal/sessionlog"
	"github.com/everinsight/discprofile/internal/store"
)

const respondentCookie = "respondent"

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	log       *sessionlog.Log
	validator access.Validator
	notifier  notify.Notifier
	coach     *coach.Client // nil when not configured
	config    model.AppConfig
}

// New creates a new Handler.
func New(s *store.Store, l *sessionlog.Log, v access.Validator, n notify.Notifier, c *coach.Client, cfg model.AppConfig) *Handler {
	if v == nil {
		v = access.AllowAll{}
	}
	if n == nil {
		n = notify.Nop{}
	}
	return &Handler{store: s, log: l, validator: v, notifier: n, coach: c, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.config.RequireToken {
			r.Use(h.accessMiddleware)
		}
		r.Get("/", h.handleHome)
		r.Post("/profile", h.handleSaveProfile)
		r.Get("/questionnaire", h.handleQuestionnaire)
		r.Post("/questionnaire", h.handleSubmit)
		r.Get("/results", h.handleLookupPage)
		r.Post("/results/lookup", h.handleLookup)
		r.Get("/results/chart.png", h.handleChartPNG)
		r.Get("/results/record.json", h.handleRecordJSON)
		r.Post("/results/report.pdf", h.handleReportPDF)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireFacilitator)
		r.Get("/sessions", h.handleAdminSessions)
	})
}

// BasePathMiddleware stores the configured base path in the request context.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}

// accessMiddleware enforces the remote approval gate: no token in the
// URL always denies; the token must validate to approved.
func (h *Handler) accessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if _, err := h.validator.Validate(r.Context(), token); err != nil {
			if !errors.Is(err, access.ErrDenied) {
				slog.Warn("access validation failed", "error", err)
			}
			w.WriteHeader(http.StatusForbidden)
			h.render(w, r, "denied.html", appI18n.T(r.Context(), "AccessDeniedTitle"), struct {
				PortalURL string
			}{PortalURL: h.config.PortalURL})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- identity ----

type homeView struct {
	Respondent *model.Respondent
	Error      string
	Saved      string
}

func (h *Handler) currentRespondent(r *http.Request) *model.Respondent {
	cookie, err := r.Cookie(respondentCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	resp, err := h.store.GetRespondentByEmail(cookie.Value)
	if err != nil {
		slog.Error("load respondent", "error", err)
		return nil
	}
	return resp
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html", appI18n.T(r.Context(), "AppTitle"), homeView{
		Respondent: h.currentRespondent(r),
	})
}

func (h *Handler) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	resp := model.Respondent{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Email:     model.NormalizeKey(r.FormValue("email")),
		JobTitle:  strings.TrimSpace(r.FormValue("job_title")),
		Company:   strings.TrimSpace(r.FormValue("company")),
	}

	if resp.FirstName == "" || resp.LastName == "" || !strings.Contains(resp.Email, "@") {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "home.html", appI18n.T(r.Context(), "AppTitle"), homeView{
			Respondent: &resp,
			Error:      appI18n.T(r.Context(), "ProfileInvalid"),
		})
		return
	}

	if _, err := h.store.UpsertRespondent(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cookiePath := "/"
	if h.config.BasePath != "" {
		cookiePath = h.config.BasePath + "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     respondentCookie,
		Value:    resp.Email,
		Path:     cookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.SecureCookies,
	})

	h.render(w, r, "home.html", appI18n.T(r.Context(), "AppTitle"), homeView{
		Respondent: &resp,
		Saved: appI18n.Td(r.Context(), "ProfileSaved", map[string]any{
			"Name": resp.FirstName,
		}),
	})
}

// ---- questionnaire ----

type questionnaireView struct {
	Items    []model.Item
	Selected model.AnswerSet
	Error    string
}

func (h *Handler) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "questionnaire.html", appI18n.T(r.Context(), "QuestionnaireTitle"), questionnaireView{
		Items:    bank.Items(),
		Selected: selectionFor(nil),
	})
}

// selectionFor pads an answer set so templates can compare every
// item's selection without tripping on missing keys (-1 marks
// unanswered).
func selectionFor(answers model.AnswerSet) model.AnswerSet {
	out := model.AnswerSet{}
	for _, it := range bank.Items() {
		idx, ok := answers[it.ID]
		if !ok {
			idx = -1
		}
		out[it.ID] = idx
	}
	return out
}

// parseAnswers reads the q_<id> form fields into an answer set.
// Unanswered items are simply absent; range checking belongs to the
// scorer.
func parseAnswers(r *http.Request) model.AnswerSet {
	answers := model.AnswerSet{}
	for _, it := range bank.Items() {
		raw := r.FormValue("q_" + strconv.Itoa(it.ID))
		if raw == "" {
			continue
		}
		idx, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		answers[it.ID] = idx
	}
	return answers
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	answers := parseAnswers(r)

	scores, err := scorer.Score(answers, bank.Items())
	if err != nil {
		var incomplete *scorer.IncompleteAnswerSetError
		if errors.As(err, &incomplete) {
			ids := make([]string, len(incomplete.Missing))
			for i, id := range incomplete.Missing {
				ids[i] = strconv.Itoa(id)
			}
			w.WriteHeader(http.StatusBadRequest)
			h.render(w, r, "questionnaire.html", appI18n.T(r.Context(), "QuestionnaireTitle"), questionnaireView{
				Items:    bank.Items(),
				Selected: selectionFor(answers),
				Error: appI18n.Td(r.Context(), "MissingAnswers", map[string]any{
					"IDs": strings.Join(ids, ", "),
				}),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Respondent key: the saved profile's e-mail, or a generated
	// anonymous id when the questionnaire was taken without one.
	key := ""
	displayName := ""
	if resp := h.currentRespondent(r); resp != nil {
		key = resp.Key()
		displayName = resp.DisplayName()
	}
	if key == "" {
		key = "anon-" + uuid.NewString()
		displayName = "participant"
	}

	ranking := scorer.Rank(scores)
	choices := scorer.Choices(answers, bank.Items())
	rec := model.NewSessionRecord(key, scores, ranking, choices)

	// Display-before-persist: a store failure downgrades to a
	// warning banner, the in-memory results stay fully usable.
	warning := ""
	if err := h.log.Append(rec); err != nil {
		slog.Error("session log append failed", "user", rec.User, "error", err)
		warning = appI18n.T(r.Context(), "StoreWarning")
	} else {
		h.notifier.Event(r.Context(), rec.User, "disc_submitted", "questionnaire", map[string]any{
			"style": rec.Style,
		})
	}

	h.renderResults(w, r, rec, displayName, warning, "")
}

// ---- results ----

type resultsView struct {
	Record    model.SessionRecord
	Rows      []model.RankedDimension
	RowNames  map[model.Dimension]string
	Narrative model.NarrativeSections
	ChartURI  template.URL
	Warning   string
	CoachText string
	Key       string
}

func (h *Handler) renderResults(w http.ResponseWriter, r *http.Request, rec model.SessionRecord, displayName, warning, coachText string) {
	ranking := scorer.Rank(rec.Scores)
	narr := narrative.Build(rec.Scores, ranking)

	var chartURI template.URL
	png, err := chart.Render(rec.Scores, ranking, displayName)
	if err != nil {
		slog.Error("chart render failed", "error", err)
	} else {
		chartURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	if coachText == "" && h.coach != nil {
		coachText = h.coach.Suggest(r.Context(), ranking)
	}

	names := map[model.Dimension]string{}
	for _, d := range model.Dimensions {
		names[d] = model.DimensionName(d)
	}

	h.render(w, r, "results.html", appI18n.T(r.Context(), "ResultsTitle"), resultsView{
		Record:    rec,
		Rows:      ranking[:],
		RowNames:  names,
		Narrative: narr,
		ChartURI:  chartURI,
		Warning:   warning,
		CoachText: coachText,
		Key:       rec.User,
	})
}

type lookupView struct {
	Email string
	Error string
}

func (h *Handler) handleLookupPage(w http.ResponseWriter, r *http.Request) {
	email := ""
	if resp := h.currentRespondent(r); resp != nil {
		email = resp.Key()
	}
	h.render(w, r, "lookup.html", appI18n.T(r.Context(), "ResultsTitle"), lookupView{Email: email})
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	email := model.NormalizeKey(r.FormValue("email"))
	if email == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "lookup.html", appI18n.T(r.Context(), "ResultsTitle"), lookupView{
			Error: appI18n.T(r.Context(), "KeyMissing"),
		})
		return
	}

	rec, err := h.log.FindLatestByKey(email)
	if err != nil {
		if errors.Is(err, sessionlog.ErrNotFound) {
			h.render(w, r, "lookup.html", appI18n.T(r.Context(), "ResultsTitle"), lookupView{
				Email: email,
				Error: appI18n.T(r.Context(), "NoResults"),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	displayName := email
	if resp, err := h.store.GetRespondentByEmail(email); err == nil && resp != nil {
		displayName = resp.DisplayName()
	}
	h.renderResults(w, r, rec, displayName, "", "")
}

// findRecord resolves the record for a download request, reporting
// the missing-key and not-found cases with user-facing statuses.
func (h *Handler) findRecord(w http.ResponseWriter, r *http.Request) (model.SessionRecord, bool) {
	email := model.NormalizeKey(r.FormValue("email"))
	if email == "" {
		http.Error(w, appI18n.T(r.Context(), "KeyMissing"), http.StatusBadRequest)
		return model.SessionRecord{}, false
	}
	rec, err := h.log.FindLatestByKey(email)
	if err != nil {
		if errors.Is(err, sessionlog.ErrNotFound) {
			http.Error(w, appI18n.T(r.Context(), "NoResults"), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return model.SessionRecord{}, false
	}
	return rec, true
}

func (h *Handler) handleRecordJSON(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.findRecord(w, r)
	if !ok {
		return
	}
	data, err := report.ExportJSON(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="profil_disc.json"`)
	_, _ = w.Write(data)
}

func (h *Handler) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.findRecord(w, r)
	if !ok {
		return
	}
	displayName := rec.User
	if resp, err := h.store.GetRespondentByEmail(rec.User); err == nil && resp != nil {
		displayName = resp.DisplayName()
	}
	png, err := chart.Render(rec.Scores, scorer.Rank(rec.Scores), displayName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.findRecord(w, r)
	if !ok {
		return
	}
	refl := model.Reflections{
		Success:   strings.TrimSpace(r.FormValue("situation_success")),
		Difficult: strings.TrimSpace(r.FormValue("situation_difficult")),
	}
	ranking := scorer.Rank(rec.Scores)
	narr := narrative.Build(rec.Scores, ranking)

	// The chart is embedded when it renders; a drawing failure only
	// costs the figure, not the document.
	png, err := chart.Render(rec.Scores, ranking, rec.User)
	if err != nil {
		slog.Error("chart render for PDF failed", "error", err)
		png = nil
	}

	pdf, err := report.BuildPDF(rec.User, rec.Scores, narr, refl, png)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="profil_disc_synthese.pdf"`)
	_, _ = w.Write(pdf)
}
