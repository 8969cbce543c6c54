package server

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/markup"
	"github.com/arthur-debert/mcgen/pkg/render"
)

type textRequest struct {
	Input string `json:"input"`
	// Width wraps the plain rendering when positive.
	Width int `json:"width,omitempty"`
}

type textResponse struct {
	generator.TextResult
	Plain  string   `json:"plain"`
	Legacy string   `json:"legacy"`
	Lines  []string `json:"lines,omitempty"`
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := s.gen.Text(r.Context(), req.Input)
	if err != nil {
		respondError(w, err)
		return
	}

	out := textResponse{
		TextResult: res,
		Plain:      markup.PlainText(res.Runs),
		Legacy:     markup.ToLegacy(res.Runs, '&'),
	}
	if req.Width > 0 {
		for _, line := range markup.Wrap(res.Runs, req.Width) {
			out.Lines = append(out.Lines, markup.PlainText(line))
		}
	}
	respondJSON(w, http.StatusOK, out)
}

type recipeRequest struct {
	Input string `json:"input"`
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := s.gen.Recipe(r.Context(), req.Input)
	if err != nil {
		respondError(w, err)
		return
	}
	if wantsImage(r) && res.Image != nil {
		respondImage(w, render.Result{Frames: []render.Frame{{Image: res.Image}}})
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	var req generator.InventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := s.gen.Inventory(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	if wantsImage(r) && res.Image != nil {
		respondImage(w, render.Result{Frames: []render.Frame{{Image: res.Image}}})
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("overlay")
	if name == "" {
		respondError(w, errors.New(errors.ErrInvalidInput, "overlay is required"))
		return
	}

	res, err := s.gen.Color(name, q.Get("color"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleOverlays(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"overlays": s.gen.Overlays().Names()})
}

type itemRequest struct {
	generator.ItemRequest
	// Texture is an optional base64 PNG replacing the atlas lookup.
	Texture string `json:"texture,omitempty"`
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Texture != "" {
		raw, err := base64.StdEncoding.DecodeString(req.Texture)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.ErrInvalidInput, "texture is not valid base64"))
			return
		}
		img, err := render.DecodeImage(bytes.NewReader(raw))
		if err != nil {
			respondError(w, err)
			return
		}
		req.ItemRequest.Texture = img
	}

	res, err := s.gen.Item(r.Context(), req.ItemRequest)
	if err != nil {
		respondError(w, err)
		return
	}
	respondImage(w, res)
}

func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	var req generator.HeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	img, err := s.gen.Head(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondImage(w, render.Result{Frames: []render.Frame{{Image: img}}})
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	var req generator.TooltipRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	img, err := s.gen.Tooltip(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondImage(w, render.Result{Frames: []render.Frame{{Image: img}}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// wantsImage reports whether the caller asked for the rendered grid
// instead of the parse result.
func wantsImage(r *http.Request) bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get("image")); err == nil {
		return v
	}
	return r.Header.Get("Accept") == "image/png"
}
