package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dmitrymomot/langsync"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
)

const maxBodySize = 1 << 10

type page struct {
	Language  string `json:"language"`
	Dir       string `json:"dir"`
	Title     string `json:"title"`
	Greeting  string `json:"greeting"`
	Available string `json:"available"`
}

type languageInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Dir      string `json:"dir"`
	Fallback bool   `json:"fallback,omitempty"`
}

type changeRequest struct {
	Language string `json:"language"`
}

type changeResult struct {
	Language string `json:"language"`
	Dir      string `json:"dir"`
	Message  string `json:"message"`
}

// greeting renders the page data of the request language. An explicit
// language segment that is not supported is a 404.
func (a *app) greeting(w http.ResponseWriter, r *http.Request) {
	inst := a.instance(r)
	if lng := chi.URLParam(r, "lng"); lng != "" && a.engine.Match(lng) == "" {
		writeError(w, http.StatusNotFound, "unsupported_language",
			inst.T("errors.unsupported_language", "language", lng))
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = inst.T("guest")
	}

	writeJSON(w, http.StatusOK, page{
		Language:  inst.ResolvedLanguage(),
		Dir:       inst.Dir(),
		Title:     inst.T("common:title"),
		Greeting:  inst.T("greeting", "name", name),
		Available: inst.N("common:items", len(inst.Languages())),
	})
}

// changeLanguage switches the request to the posted language through an
// interactive session, which persists it into the jar when it differs from
// the stored value.
func (a *app) changeLanguage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inst := a.instance(r)

	var req changeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil || req.Language == "" {
		writeError(w, http.StatusBadRequest, "bad_request", inst.T("errors.bad_request"))
		return
	}
	lang := a.engine.Match(req.Language)
	if lang == "" {
		writeError(w, http.StatusUnprocessableEntity, "unsupported_language",
			inst.T("errors.unsupported_language", "language", req.Language))
		return
	}

	sess := langsync.NewSession(ctx, inst, a.jar(w, r),
		langsync.WithCookieName(a.engine.Settings().CookieName),
		langsync.WithSessionLogger(a.log),
	)
	defer sess.Close()

	sess.Render(lang)
	if err := sess.Settle(ctx); err != nil {
		// the dispatcher may still be writing cookies to w
		_ = sess.Close()
		a.log.ErrorContext(ctx, "Language change did not settle", logger.Requested(lang), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "not_settled", err.Error())
		return
	}

	active := sess.ActiveLanguage()
	w.Header().Set("Content-Language", active)
	writeJSON(w, http.StatusOK, changeResult{
		Language: active,
		Dir:      i18n.Dir(active),
		Message:  inst.Tl(active, "language_changed", "language", displayName(active)),
	})
}

func (a *app) listLanguages(w http.ResponseWriter, _ *http.Request) {
	fallback := a.engine.FallbackLanguage()
	langs := a.engine.Languages()

	out := make([]languageInfo, 0, len(langs))
	for _, code := range langs {
		out = append(out, languageInfo{
			Code:     code,
			Name:     displayName(code),
			Dir:      i18n.Dir(code),
			Fallback: code == fallback,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// exportBundle serves one namespace bundle as JSON, the backend format of
// client-side translation loaders.
func (a *app) exportBundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lng, ns := chi.URLParam(r, "lng"), chi.URLParam(r, "ns")

	data, err := a.engine.ExportJSON(ctx, lng, ns)
	if err != nil {
		var unsupported *i18n.ErrLanguageNotSupported
		if errors.As(err, &unsupported) || errors.Is(err, i18n.ErrBundleNotFound) {
			writeError(w, http.StatusNotFound, "bundle_not_found", err.Error())
			return
		}
		a.log.ErrorContext(ctx, "Failed to export bundle",
			logger.Language(lng), logger.Namespace(ns), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// instance returns the per-request engine installed by the middleware.
func (a *app) instance(r *http.Request) *i18n.Engine {
	if inst, ok := i18n.FromContext(r.Context()); ok {
		return inst
	}
	return a.engine
}

// displayName is the name of a language in that language, e.g. "français".
func displayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
