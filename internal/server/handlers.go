package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/image-list-mcp/internal/imaging"
	"github.com/ironsheep/image-list-mcp/internal/order"
	"github.com/ironsheep/image-list-mcp/internal/selection"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_list_sort").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramsError marks a tool failure caused by the caller's arguments.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string { return e.err.Error() }
func (e *paramsError) Unwrap() error { return e.err }

func invalidParams(err error) error {
	return &paramsError{err: err}
}

// decodeArgs unmarshals tool arguments, treating a missing object as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams(err)
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602; any other tool error returns -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
		var pe *paramsError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Image List Operations
	case "image_list_sort":
		return s.handleImageListSort(ctx, args)
	case "image_list_dirs":
		return s.handleImageListDirs(args)

	// Selection Operations
	case "image_selection":
		return s.handleImageSelection(args)
	case "image_crop_selection":
		return s.handleImageCropSelection(args)
	case "image_selection_overlay":
		return s.handleImageSelectionOverlay(args)

	default:
		return nil, invalidParams(fmt.Errorf("unknown tool: %s", name))
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) validate() error {
	if a.Path == "" {
		return invalidParams(errors.New("path is required"))
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Image List Handlers ===

type imageListSortArgs struct {
	Paths      []string `json:"paths"`
	OrderBy    string   `json:"order_by"`
	OrderType  string   `json:"order_type"`
	GroupByDir *bool    `json:"group_by_dir"`
	Expand     bool     `json:"expand"`
}

type unavailablePath struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type imageListSortResult struct {
	Paths       []string          `json:"paths"`
	Count       int               `json:"count"`
	OrderBy     string            `json:"order_by"`
	OrderType   string            `json:"order_type"`
	GroupByDir  bool              `json:"group_by_dir"`
	Unavailable []unavailablePath `json:"unavailable,omitempty"`
}

func (s *Server) handleImageListSort(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageListSortArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	opts := s.cfg.Sort.Options
	if a.OrderBy != "" {
		by, err := order.ParseOrderBy(a.OrderBy)
		if err != nil {
			return nil, invalidParams(err)
		}
		opts.OrderBy = by
	}
	if a.OrderType != "" {
		typ, err := order.ParseOrderType(a.OrderType)
		if err != nil {
			return nil, invalidParams(err)
		}
		opts.OrderType = typ
	}
	if a.GroupByDir != nil {
		opts.GroupByDir = *a.GroupByDir
	}

	paths := a.Paths
	if a.Expand {
		var err error
		if paths, err = order.Expand(paths, nil); err != nil {
			return nil, err
		}
	}

	res, err := s.sorter.Sort(ctx, paths, opts)
	if err != nil {
		return nil, err
	}

	out := &imageListSortResult{
		Paths:      res.Paths,
		Count:      len(res.Paths),
		OrderBy:    opts.OrderBy.String(),
		OrderType:  opts.OrderType.String(),
		GroupByDir: opts.GroupByDir,
	}
	if out.Paths == nil {
		out.Paths = []string{}
	}
	for _, e := range res.Unavailable {
		out.Unavailable = append(out.Unavailable, unavailablePath{Path: e.Path, Error: e.Err.Error()})
	}
	return out, nil
}

type imageListDirsArgs struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleImageListDirs(args json.RawMessage) (interface{}, error) {
	var a imageListDirsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"dirs": order.DistinctDirs(a.Paths),
	}, nil
}

// === Selection Handlers ===

// selectionArgs describes a selection either by its drag corners or as a
// "left;top;width;height" string.
type selectionArgs struct {
	From      *selection.Point `json:"from"`
	To        *selection.Point `json:"to"`
	Selection string           `json:"selection"`
}

// resolve returns the selection clipped to bounds.
func (a selectionArgs) resolve(bounds selection.Rect) (selection.Rect, error) {
	if a.Selection != "" {
		r, err := selection.ParseRect(a.Selection)
		if err != nil {
			return selection.Rect{}, invalidParams(err)
		}
		return r.Intersect(bounds), nil
	}
	if a.From == nil || a.To == nil {
		return selection.Rect{}, invalidParams(errors.New("from and to, or selection, are required"))
	}
	return selection.Compute(a.From, a.To, bounds), nil
}

type imageSelectionArgs struct {
	selectionArgs
	Path       string   `json:"path"`
	Bounds     string   `json:"bounds"`
	HandleSize *float64 `json:"handle_size"`
}

type imageSelectionResult struct {
	Selection selection.Rect      `json:"selection"`
	Rect      string              `json:"rect"`
	Empty     bool                `json:"empty"`
	Resizers  []selection.Resizer `json:"resizers,omitempty"`
}

func (s *Server) handleImageSelection(args json.RawMessage) (interface{}, error) {
	var a imageSelectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var bounds selection.Rect
	switch {
	case a.Bounds != "":
		b, err := selection.ParseRect(a.Bounds)
		if err != nil {
			return nil, invalidParams(err)
		}
		bounds = b
	case a.Path != "":
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		bounds = selection.FromImage(img.Bounds())
	default:
		return nil, invalidParams(errors.New("path or bounds is required"))
	}

	sel, err := a.resolve(bounds)
	if err != nil {
		return nil, err
	}

	size := s.cfg.Selection.HandleSize
	if a.HandleSize != nil {
		size = *a.HandleSize
	}

	return &imageSelectionResult{
		Selection: sel,
		Rect:      selection.FormatRect(sel),
		Empty:     sel.IsEmpty(),
		Resizers:  selection.Resizers(sel, size),
	}, nil
}

type imageCropSelectionArgs struct {
	selectionArgs
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCropSelection(args json.RawMessage) (interface{}, error) {
	var a imageCropSelectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams(errors.New("path is required"))
	}
	if a.Scale < 0 {
		return nil, invalidParams(fmt.Errorf("scale must not be negative, got %g", a.Scale))
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sel, err := a.resolve(selection.FromImage(img.Bounds()))
	if err != nil {
		return nil, err
	}
	return imaging.CropSelection(img, sel, a.Scale)
}

type imageSelectionOverlayArgs struct {
	selectionArgs
	Path       string   `json:"path"`
	Color      string   `json:"color"`
	Dim        *float64 `json:"dim"`
	HandleSize *float64 `json:"handle_size"`
	ShowLabel  *bool    `json:"show_label"`
}

func (s *Server) handleImageSelectionOverlay(args json.RawMessage) (interface{}, error) {
	var a imageSelectionOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams(errors.New("path is required"))
	}

	opts := imaging.OverlayOptions{
		Color:      s.cfg.Overlay.Color,
		Dim:        0.5,
		HandleSize: s.cfg.Selection.HandleSize,
		ShowLabel:  true,
	}
	if a.Color != "" {
		opts.Color = a.Color
	}
	if a.Dim != nil {
		opts.Dim = *a.Dim
	}
	if a.HandleSize != nil {
		opts.HandleSize = *a.HandleSize
	}
	if a.ShowLabel != nil {
		opts.ShowLabel = *a.ShowLabel
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sel, err := a.resolve(selection.FromImage(img.Bounds()))
	if err != nil {
		return nil, err
	}
	return imaging.SelectionOverlay(img, sel, opts)
}
