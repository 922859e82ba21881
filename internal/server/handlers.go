package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/capture"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/exporter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/filter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/logger"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/store"
)

func (s *Server) handleLanding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := baseURL(r)
		s.mu.Lock()
		doc := s.store.Document()
		data := landingData{
			BaseURL:           base,
			DirectBookmarklet: bookmarklet(base, false),
			PopupBookmarklet:  bookmarklet(base, true),
			ActiveCount:       doc.ActiveCount(),
			ArchivedCount:     doc.ArchivedCount(),
		}
		s.mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := landingPage.Execute(w, data); err != nil {
			s.logger.Error("render landing", logger.Error(err))
		}
	}
}

func (s *Server) handleCaptureGet() http.HandlerFunc {
	delays := capture.DefaultDelays()

	return func(w http.ResponseWriter, r *http.Request) {
		intent := capture.ParseIntent(r.URL.Query())
		if intent == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		if intent.Mode == capture.ModePopup {
			draft := intent.Draft()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			err := captureFormPage.Execute(w, captureFormData{
				URL:         draft.URL,
				Title:       draft.Title,
				Tags:        strings.Join(draft.Tags, ", "),
				Description: draft.Description,
			})
			if err != nil {
				s.logger.Error("render capture form", logger.Error(err))
			}
			return
		}

		s.saveAndComplete(w, intent, delays.CloseDirect, delays.CloseGrace)
	}
}

func (s *Server) handleCapturePost() http.HandlerFunc {
	delays := capture.DefaultDelays()

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.writeError(w, &model.FormatError{Reason: "form body is not valid"})
			return
		}
		intent := capture.ParseIntent(r.PostForm)
		if intent == nil {
			s.writeError(w, &model.ValidationError{Field: "add", Reason: "capture requires an add parameter"})
			return
		}
		s.saveAndComplete(w, intent, delays.ClosePopup, delays.CloseGrace)
	}
}

// saveAndComplete stores the capture and renders the completion page that
// signals the opener and self-closes.
func (s *Server) saveAndComplete(w http.ResponseWriter, intent *capture.Intent, closeDelay, graceDelay time.Duration) {
	s.mu.Lock()
	_, err := s.store.Add(store.AddParams{
		URL:         intent.URL,
		Title:       intent.Title,
		Tags:        intent.Tags,
		Description: intent.Description,
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("capture save failed", logger.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderErr := completionPage.Execute(w, completionData{
		Success:     err == nil,
		MessageType: capture.MessageType,
		Source:      capture.Source,
		CloseDelay:  closeDelay.Milliseconds(),
		GraceDelay:  graceDelay.Milliseconds(),
	})
	if renderErr != nil {
		s.logger.Error("render completion", logger.Error(renderErr))
	}
}

func (s *Server) handleListBookmarks() http.HandlerFunc {
	type response struct {
		Bookmarks []model.Bookmark `json:"bookmarks"`
		Total     int              `json:"total"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := filter.ParseSpec(r.URL.Query())
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.mu.Lock()
		matched := filter.Apply(s.store.Document().Bookmarks, spec, time.Now())
		s.mu.Unlock()

		s.writeJSON(w, http.StatusOK, response{Bookmarks: matched, Total: len(matched)})
	}
}

func (s *Server) handleAddBookmark() http.HandlerFunc {
	type request struct {
		URL         string   `json:"url"`
		Title       string   `json:"title"`
		Tags        []string `json:"tags"`
		Description string   `json:"description"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, &model.FormatError{Reason: "request body is not valid JSON"})
			return
		}

		s.mu.Lock()
		saved, err := s.store.Add(store.AddParams{
			URL:         req.URL,
			Title:       req.Title,
			Tags:        req.Tags,
			Description: req.Description,
		})
		s.mu.Unlock()

		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, saved)
	}
}

func (s *Server) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		s.mu.Lock()
		err := s.store.MarkExported(now)
		var data []byte
		if err == nil {
			data, err = exporter.ExportJSON(s.store.Document())
		}
		s.mu.Unlock()

		if err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", exporter.Filename(now)))
		_, _ = w.Write(data)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", logger.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	var formatErr *model.FormatError
	var persistenceErr *model.PersistenceError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &formatErr):
		status = http.StatusBadRequest
	case errors.As(err, &persistenceErr):
		status = http.StatusInternalServerError
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// bookmarklet builds the javascript: link that sends the current page to the
// capture endpoint. The popup variant opens a small window and waits for the
// completion signal; the direct variant opens a tab that saves on its own.
func bookmarklet(base string, popup bool) template.URL {
	captureURL := base + "/capture"
	var js string
	if popup {
		js = fmt.Sprintf(
			"javascript:(function(){window.open(%q+'?add='+encodeURIComponent(location.href)+'&title='+encodeURIComponent(document.title)+'&popup=1','cliptuck','width=440,height=560');})();",
			captureURL)
	} else {
		js = fmt.Sprintf(
			"javascript:(function(){window.open(%q+'?add='+encodeURIComponent(location.href)+'&title='+encodeURIComponent(document.title),'_blank');})();",
			captureURL)
	}
	return template.URL(js)
}
