package handler

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	appI18n "github.com/everinsight/discprofile/internal/i18n"
	"github.com/everinsight/discprofile/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"home.html",
		"questionnaire.html",
		"results.html",
		"lookup.html",
		"denied.html",
		"admin_sessions.html",
	} {
		pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name))
	}
}

// page holds what every template needs beside its own data.
type page struct {
	Title    string
	BasePath string
	Strings  map[string]string
	Data     any
}

// uiStrings collects the localized chrome strings referenced by the
// templates. Narrative text never goes through here.
func uiStrings(ctx context.Context) map[string]string {
	out := map[string]string{}
	for _, id := range []string{
		"AppTitle", "HomeIntro", "YourInfo", "FirstName", "LastName",
		"Email", "EmailHelp", "JobTitle", "Company", "SaveProfile",
		"ProfileRequired", "ProfileInvalid",
		"QuestionnaireTitle", "QuestionnaireIntro", "SubmitAnswers",
		"YourScores", "ResultsTitle", "ProfileReading",
		"NaturalStrengths", "GrowthAxes", "UseWithoutExcess",
		"DevelopLessNatural", "RadarCaption",
		"LookupIntro", "LookupSubmit", "NoResults", "KeyMissing",
		"StoreWarning", "ActionPlanSuccess", "ActionPlanDifficult",
		"DownloadJSON", "DownloadPDF", "DownloadChart", "CoachHint",
		"AdminSessions", "AccessDeniedTitle", "AccessDeniedBody",
		"RequestAccess",
	} {
		out[id] = appI18n.T(ctx, id)
	}
	return out
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	p := page{
		Title:    title,
		BasePath: model.BasePathFromContext(r.Context()),
		Strings:  uiStrings(r.Context()),
		Data:     data,
	}
	if err := pages[name].ExecuteTemplate(w, "layout.html", p); err != nil {
		slog.Error("render error", "template", name, "error", err)
	}
}
