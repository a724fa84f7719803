package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/eternallight/lumen/core/bible"
	"github.com/eternallight/lumen/core/broadcast"
	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/core/songs"
)

// verseResponse wraps a resolved verse with the delivery flag where
// relevant.
type verseResponse struct {
	Verse     *bible.ResolvedVerse `json:"verse"`
	Delivered bool                 `json:"delivered,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Query     string `json:"query"`
		Broadcast bool   `json:"broadcast,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	verse, err := s.controller.HandleQuery(req.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := verseResponse{Verse: verse}
	if req.Broadcast {
		resp.Delivered, _ = s.controller.BroadcastCurrent()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	s.mu.Lock()
	hits, err := s.controller.Search(r.URL.Query().Get("q"), limit)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": hits, "count": len(hits)})
}

func (s *Server) handleTranslation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		t := s.controller.Translation()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"translation": t})

	case http.MethodPost:
		var req struct {
			Translation string `json:"translation"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.mu.Lock()
		verse, err := s.controller.SetTranslation(req.Translation)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, verseResponse{Verse: verse})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNextVerse(w http.ResponseWriter, r *http.Request) {
	s.stepVerse(w, r, true)
}

func (s *Server) handlePrevVerse(w http.ResponseWriter, r *http.Request) {
	s.stepVerse(w, r, false)
}

func (s *Server) stepVerse(w http.ResponseWriter, r *http.Request, forward bool) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Broadcast bool `json:"broadcast,omitempty"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var verse *bible.ResolvedVerse
	var err error
	if forward {
		verse, err = s.controller.NextVerse()
	} else {
		verse, err = s.controller.PrevVerse()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if verse == nil {
		// Canon boundary: nothing to move to.
		writeJSON(w, http.StatusOK, verseResponse{})
		return
	}

	resp := verseResponse{Verse: verse}
	if req.Broadcast {
		resp.Delivered, _ = s.controller.BroadcastCurrent()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.mu.Lock()
	delivered, err := s.controller.BroadcastCurrent()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.mu.Lock()
	delivered := s.controller.Hide()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.Lock()
	history := s.controller.History()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Text string `json:"text"`
		Live bool   `json:"live,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" && !req.Live {
		writeError(w, lumerr.NewValidation("text", "note text is empty"))
		return
	}

	s.mu.Lock()
	delivered := s.controller.BroadcastNote(req.Text, req.Live)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

// handleEdit sets or removes a single manual verse edit in the active
// translation.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Book    string `json:"book"`
			Chapter string `json:"chapter"`
			Verse   string `json:"verse"`
			Text    string `json:"text"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		s.mu.Lock()
		err := s.controller.SetEdit(req.Book, req.Chapter, req.Verse, req.Text)
		verse := s.controller.CurrentVerse()
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, verseResponse{Verse: verse})

	case http.MethodDelete:
		q := r.URL.Query()
		book, chapter, verse := q.Get("book"), q.Get("chapter"), q.Get("verse")
		if book == "" || chapter == "" || verse == "" {
			writeError(w, lumerr.NewValidation("edit", "book, chapter and verse are required"))
			return
		}
		s.mu.Lock()
		err := s.controller.RemoveEdit(book, chapter, verse)
		current := s.controller.CurrentVerse()
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, verseResponse{Verse: current})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		results := s.controller.Library().Search(r.URL.Query().Get("q"), r.URL.Query().Get("book"))
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"songs": results, "count": len(results)})

	case http.MethodPost:
		var song songs.Song
		if !decodeBody(w, r, &song) {
			return
		}
		s.mu.Lock()
		saved, err := s.controller.Library().Save(song)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, lumerr.NewValidation("id", "song id is required"))
			return
		}
		s.mu.Lock()
		err := s.controller.Library().Delete(id)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSongSelect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	song, stanzas, err := s.controller.SelectSong(req.ID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"song": song, "stanzas": stanzas})
}

func (s *Server) handleStanza(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Delta     int  `json:"delta"`
		Broadcast bool `json:"broadcast,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stanza, err := s.controller.StepStanza(req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	delivered := false
	if req.Broadcast {
		delivered, _ = s.controller.BroadcastStanza()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stanza":    stanza,
		"index":     s.controller.CurrentStanza(),
		"delivered": delivered,
	})
}

func (s *Server) handleSongBroadcast(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.mu.Lock()
	delivered, err := s.controller.BroadcastStanza()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.store.LoadSettings()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPost:
		var p broadcast.SettingsPayload
		if !decodeBody(w, r, &p) {
			return
		}
		s.mu.Lock()
		err := s.controller.UpdateSettings(p)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}
		settings, err := s.store.LoadSettings()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		DataURL string `json:"dataUrl"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	delivered := s.controller.SetBackground(req.DataURL)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.preview.State())
}

func (s *Server) handlePresentations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		withDeleted := r.URL.Query().Get("deleted") == "true"
		list, err := s.store.ListPresentations(withDeleted)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"presentations": list})

	case http.MethodPost:
		var req struct {
			Title  string   `json:"title"`
			Slides []string `json:"slides"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		p, err := s.store.CreatePresentation(req.Title, req.Slides)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePresentationByID serves /api/presentations/{id}[/restore].
func (s *Server) handlePresentationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/presentations/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		p, err := s.store.GetPresentation(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)

	case r.Method == http.MethodDelete && action == "":
		if err := s.store.DeletePresentation(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	case r.Method == http.MethodPost && action == "restore":
		if err := s.store.RestorePresentation(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"restored": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBackgrounds(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		withDeleted := r.URL.Query().Get("deleted") == "true"
		list, err := s.store.ListBackgrounds(withDeleted)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"backgrounds": list})

	case http.MethodPost:
		var req struct {
			Title  string `json:"title"`
			Digest string `json:"digest"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		b, err := s.store.CreateBackground(req.Title, req.Digest)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleBackgroundByID serves /api/backgrounds/{id}[/restore].
func (s *Server) handleBackgroundByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/backgrounds/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.Method == http.MethodDelete && action == "":
		if err := s.store.DeleteBackground(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	case r.Method == http.MethodPost && action == "restore":
		if err := s.store.RestoreBackground(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"restored": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// maxBlobSize bounds slide and background image uploads.
const maxBlobSize = 16 << 20

// handleBlobUpload stores raw image bytes and returns their digest.
func (s *Server) handleBlobUpload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.blobs == nil {
		http.NotFound(w, r)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
	if err != nil {
		writeError(w, lumerr.NewValidation("body", "reading upload: "+err.Error()))
		return
	}
	if len(data) == 0 {
		writeError(w, lumerr.NewValidation("body", "upload is empty"))
		return
	}
	digest, err := s.blobs.Put(data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"digest": digest})
}

func (s *Server) handleSlideSelect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	p, err := s.controller.SelectPresentation(req.ID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSlideStep(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Delta     int  `json:"delta"`
		Broadcast bool `json:"broadcast,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	digest, err := s.controller.StepSlide(req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	delivered := false
	if req.Broadcast {
		delivered, _ = s.controller.BroadcastSlide()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"digest":    digest,
		"index":     s.controller.CurrentSlide(),
		"delivered": delivered,
	})
}

func (s *Server) handleSlideBroadcast(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.mu.Lock()
	delivered, err := s.controller.BroadcastSlide()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

// handleBlob streams a stored image by digest.
func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.blobs == nil {
		http.NotFound(w, r)
		return
	}
	digest := strings.TrimPrefix(r.URL.Path, "/api/blobs/")
	data, err := s.blobs.Get(digest)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
