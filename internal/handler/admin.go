package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	appI18n "github.com/everinsight/discprofile/internal/i18n"
	"github.com/everinsight/discprofile/internal/model"
)

// requireFacilitator guards the admin views with HTTP basic auth
// checked against the facilitator accounts.
func (h *Handler) requireFacilitator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			h.denyFacilitator(w)
			return
		}
		fac, err := h.store.GetFacilitator(username)
		if err != nil {
			slog.Error("load facilitator", "error", err)
			h.denyFacilitator(w)
			return
		}
		if fac == nil {
			h.denyFacilitator(w)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(fac.PasswordHash), []byte(password)); err != nil {
			h.denyFacilitator(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) denyFacilitator(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="discprofile admin"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

type adminSessionsView struct {
	Records []model.SessionRecord
}

func (h *Handler) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	records, err := h.log.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "admin_sessions.html", appI18n.T(r.Context(), "AdminSessions"), adminSessionsView{
		Records: records,
	})
}
