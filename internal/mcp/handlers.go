package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lexgate/lexgate/internal/analyze"
	"github.com/lexgate/lexgate/internal/errors"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *analyze.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *analyze.Service) *Handlers {
	return &Handlers{svc: svc}
}

// decode unmarshals MCP request arguments into a typed struct.
// Avoids unsafe type assertions and handles JSON decoding safely.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	args := req.GetArguments()
	b, err := json.Marshal(args)
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// Request types for each tool

// ClassifyRequest represents the arguments for document_classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// AnalyzeRequest represents the arguments for document_analyze.
type AnalyzeRequest struct {
	Text          string `json:"text"`
	AllowNonLegal bool   `json:"allow_non_legal,omitempty"`
	MaxClauses    int    `json:"max_clauses,omitempty"`
}

// RedFlagsRequest represents the arguments for document_redflags.
type RedFlagsRequest struct {
	Text string `json:"text"`
}

// IngestRequest represents the arguments for template_ingest.
type IngestRequest struct {
	Name         string `json:"name"`
	Text         string `json:"text"`
	ContractType string `json:"contract_type,omitempty"`
}

// ListRequest represents the arguments for template_list.
type ListRequest struct {
	ContractType string `json:"contract_type,omitempty"`
}

// DeleteRequest represents the arguments for template_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// Handler implementations

// HandleClassify handles the document_classify tool call.
func (h *Handlers) HandleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClassifyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	verdict, err := h.svc.Classify(ctx, analyze.ClassifyInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(verdict)
}

// HandleAnalyze handles the document_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.Analyze(ctx, analyze.AnalyzeInput{
		Text:          input.Text,
		AllowNonLegal: input.AllowNonLegal,
		MaxClauses:    input.MaxClauses,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRedFlags handles the document_redflags tool call.
func (h *Handlers) HandleRedFlags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RedFlagsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.RedFlags(ctx, analyze.RedFlagsInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleIngest handles the template_ingest tool call.
func (h *Handlers) HandleIngest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IngestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	tmpl, err := h.svc.Corpus.Ingest(ctx, input.Name, input.Text, input.ContractType)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(tmpl)
}

// HandleList handles the template_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	templates, err := h.svc.Corpus.List(ctx, input.ContractType)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

// HandleDelete handles the template_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	if err := h.svc.Corpus.Delete(ctx, input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"deleted": input.ID})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var gateErr *errors.GateError
	if stderrors.As(err, &gateErr) {
		message := gateErr.Message
		if err.Error() != gateErr.Error() {
			// Preserve wrapper context added above the GateError.
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    gateErr.Code,
			"message": message,
			"status":  gateErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if gateErr.Code != errors.ErrInternal && gateErr.Details != nil {
			errorObj["details"] = gateErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
