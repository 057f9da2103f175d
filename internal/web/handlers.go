package web

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/lexgate/lexgate/internal/analyze"
	"github.com/lexgate/lexgate/internal/errors"
)

// maxBodyBytes bounds request bodies before JSON decoding.
const maxBodyBytes = 4 << 20

// Handlers contains HTTP route handlers for the JSON API.
type Handlers struct {
	svc     *analyze.Service
	version string
}

type documentRequest struct {
	Text          string `json:"text"`
	AllowNonLegal bool   `json:"allow_non_legal"`
	MaxClauses    int    `json:"max_clauses"`
}

type templateRequest struct {
	Name         string `json:"name"`
	Text         string `json:"text"`
	ContractType string `json:"contract_type"`
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleClassify handles POST /v1/classify. Runs the admission gate only.
func (h *Handlers) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	verdict, err := h.svc.Classify(r.Context(), analyze.ClassifyInput{Text: req.Text})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, verdict)
}

// HandleAnalyze handles POST /v1/analyze, the full pipeline. A gate
// rejection maps to 422 with the verdict in the error payload.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	out, err := h.svc.Analyze(r.Context(), analyze.AnalyzeInput{
		Text:          req.Text,
		AllowNonLegal: req.AllowNonLegal,
		MaxClauses:    req.MaxClauses,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleRedFlags handles POST /v1/redflags. Rule scan without gating.
func (h *Handlers) HandleRedFlags(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	out, err := h.svc.RedFlags(r.Context(), analyze.RedFlagsInput{Text: req.Text})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleTemplateIngest handles POST /v1/templates.
func (h *Handlers) HandleTemplateIngest(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeBody(w, r, &req); err != nil {
		renderError(w, err)
		return
	}

	tpl, err := h.svc.Corpus.Ingest(r.Context(), req.Name, req.Text, req.ContractType)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, tpl)
}

// HandleTemplateList handles GET /v1/templates.
func (h *Handlers) HandleTemplateList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.Corpus.List(r.Context(), r.URL.Query().Get("contract_type"))
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

// HandleTemplateDelete handles DELETE /v1/templates/{id}.
func (h *Handlers) HandleTemplateDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Corpus.Delete(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body with a size cap and a
// content-type check. Plain text bodies are accepted for document
// endpoints by wrapping the raw body as the text field.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return errors.NewUnsupportedMedia(contentType)
		}
		switch mediaType {
		case "application/json":
			// fall through to the decoder
		case "text/plain":
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return errors.NewInvalidRequest("failed to read request body")
			}
			if req, ok := dst.(*documentRequest); ok {
				req.Text = string(body)
				return nil
			}
			return errors.NewUnsupportedMedia(contentType)
		default:
			return errors.NewUnsupportedMedia(contentType)
		}
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errors.NewPayloadTooLarge(maxBodyBytes, maxBodyBytes+1)
		}
		return errors.NewInvalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
