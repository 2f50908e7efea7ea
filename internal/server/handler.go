// Package server serves the directive formatter over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_shebang/internal/core/domain"
	"github.com/baditaflorin/go_shebang/internal/ports"
	"github.com/baditaflorin/go_shebang/pkg/plugin"
)

// Outcome header values set on /format responses.
const (
	OutcomeHeader   = "X-Shebang-Outcome"
	OutcomeChanged  = "changed"
	OutcomeNoChange = "unchanged"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// InfoResponse is returned by /info.
type InfoResponse struct {
	Plugin       plugin.Info             `json:"plugin"`
	FileMatching plugin.FileMatchingInfo `json:"fileMatching"`
}

// Handler routes requests to the formatter.
type Handler struct {
	plugin *plugin.Plugin
	logger ports.Logger
}

// NewHandler creates a new request handler.
func NewHandler(p *plugin.Plugin, logger ports.Logger) *Handler {
	return &Handler{plugin: p, logger: logger}
}

// HandleRequest is the main fasthttp request handler
func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Server", "ShebangServer")

	switch string(ctx.Path()) {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/info":
		h.handleInfo(ctx)
	case "/license":
		h.handleLicense(ctx)
	case "/format":
		h.handleFormat(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	h.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (h *Handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleInfo(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, InfoResponse{
		Plugin:       h.plugin.Info(),
		FileMatching: h.plugin.FileMatching(),
	})
}

func (h *Handler) handleLicense(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(h.plugin.LicenseText())
}

// handleFormat formats the request body. The optional query arguments are
// path (checked against the file matching table unless force is set),
// start and end (a byte range of the body).
func (h *Handler) handleFormat(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}

	args := ctx.QueryArgs()
	path := string(args.Peek("path"))
	if path != "" && !args.GetBool("force") && !h.plugin.Matches(path) {
		ctx.SetStatusCode(fasthttp.StatusUnsupportedMediaType)
		h.writeJSONError(ctx, "File is not handled by this formatter: "+path)
		return
	}

	body := ctx.PostBody()
	rng, err := parseRange(args, len(body))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, err.Error())
		return
	}

	formatted, changed, err := h.plugin.Format(plugin.Request{
		Path:      path,
		FileBytes: body,
		Range:     rng,
	})
	switch {
	case errors.Is(err, domain.ErrDecode):
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		h.writeJSONError(ctx, err.Error())
		return
	case errors.Is(err, plugin.ErrInvalidRange):
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, err.Error())
		return
	case err != nil:
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.writeJSONError(ctx, "Internal server error")
		h.logger.Error("Format failed", "path", path, "error", err)
		return
	}

	if !changed {
		ctx.Response.Header.Set(OutcomeHeader, OutcomeNoChange)
		ctx.SetStatusCode(fasthttp.StatusNoContent)
		return
	}
	ctx.Response.Header.Set(OutcomeHeader, OutcomeChanged)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/octet-stream")
	ctx.SetBody(formatted)
}

// parseRange reads the start and end query arguments. It returns nil when
// neither is present; a missing end defaults to size.
func parseRange(args *fasthttp.Args, size int) (*plugin.Range, error) {
	if !args.Has("start") && !args.Has("end") {
		return nil, nil
	}
	rng := &plugin.Range{End: size}
	if args.Has("start") {
		start, err := strconv.Atoi(string(args.Peek("start")))
		if err != nil || start < 0 {
			return nil, errors.New("invalid start offset")
		}
		rng.Start = start
	}
	if args.Has("end") {
		end, err := strconv.Atoi(string(args.Peek("end")))
		if err != nil || end < 0 {
			return nil, errors.New("invalid end offset")
		}
		rng.End = end
	}
	return rng, nil
}

// writeJSONResponse writes a JSON response to the context
func (h *Handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *Handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
