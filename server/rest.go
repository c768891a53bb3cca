package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/umputun/html2rss/pkg/domain"
)

// packHandler packs request parameters into a token and returns the feed url serving it
func (s *Server) packHandler(w http.ResponseWriter, r *http.Request) {
	var p domain.Params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		renderFailure(w, r, domain.Validationf("can't decode parameters: %v", err))
		return
	}

	tkn, feedURL, err := s.converter.Pack(p)
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"token": tkn, "feed_url": feedURL})
}

// listPresetsHandler returns all saved presets
func (s *Server) listPresetsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w, r) {
		return
	}
	if err := s.converter.CheckCode(r.URL.Query().Get("code")); err != nil {
		renderFailure(w, r, err)
		return
	}

	presets, err := s.presets.ListPresets(r.Context())
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, presets)
}

// savePresetHandler stores a packed token under a name, the token must carry the right code
func (s *Server) savePresetHandler(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w, r) {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderFailure(w, r, domain.Validationf("can't decode preset: %v", err))
		return
	}
	if err := s.converter.CheckToken(req.Token); err != nil {
		renderFailure(w, r, err)
		return
	}

	preset, err := s.presets.SavePreset(r.Context(), req.Name, req.Token)
	if err != nil {
		renderFailure(w, r, err)
		return
	}
	log.Printf("[INFO] preset %q saved", preset.Name)
	renderJSON(w, r, http.StatusOK, preset)
}

// deletePresetHandler removes a preset
func (s *Server) deletePresetHandler(w http.ResponseWriter, r *http.Request) {
	if !s.presetsEnabled(w, r) {
		return
	}
	if err := s.converter.CheckCode(r.URL.Query().Get("code")); err != nil {
		renderFailure(w, r, err)
		return
	}

	name := r.PathValue("name")
	if err := s.presets.DeletePreset(r.Context(), name); err != nil {
		renderFailure(w, r, err)
		return
	}
	log.Printf("[INFO] preset %q deleted", name)
	renderJSON(w, r, http.StatusOK, map[string]string{"deleted": name})
}
