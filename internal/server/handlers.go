package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pixeldesk/image-edit-mcp/internal/codec"
	"github.com/pixeldesk/image-edit-mcp/internal/editlog"
	"github.com/pixeldesk/image-edit-mcp/internal/session"
	"github.com/pixeldesk/image-edit-mcp/internal/thumbnail"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "edit_rotate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A failed tool call never disturbs session state: the source bytes and
// edit history are exactly what they were before the call.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "image_load":
		return s.handleImageLoad(args)
	case "image_info":
		return s.sess.Inspect()

	// Edit operations
	case "edit_rotate":
		return s.handleEditRotate(args)
	case "edit_flip":
		return s.handleEditFlip(args)
	case "edit_resize":
		return s.handleEditResize(args)
	case "edit_grayscale":
		return s.appendOp(editlog.Grayscale())
	case "edit_brightness":
		return s.handleEditBrightness(args)
	case "edit_convert":
		return s.handleEditConvert(args)

	// History
	case "edit_undo":
		return s.handleEditUndo()
	case "edit_redo":
		return s.handleEditRedo()
	case "edit_history":
		return s.handleEditHistory()
	case "edit_reset":
		return s.handleEditReset()

	// Rendering
	case "image_render":
		return s.handleImageRender(args)

	// Thumbnails
	case "thumbnail_get":
		return s.handleThumbnailGet(args)
	case "thumbnail_clear":
		s.thumbs.Clear()
		return map[string]interface{}{"cleared": true}, nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

// === Session Handlers ===

type imageLoadArgs struct {
	Name       string `json:"name"`
	DataBase64 string `json:"data_base64"`
}

// LoadResult describes the freshly loaded session source.
type LoadResult struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(a.DataBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	if err := s.sess.Load(a.Name, data); err != nil {
		return nil, err
	}
	w, h := s.sess.SourceSize()
	return &LoadResult{Name: s.sess.Name(), Width: w, Height: h}, nil
}

// === Edit Operation Handlers ===

// EditResult reports the state of the edit history after a change.
type EditResult struct {
	Appended   string `json:"appended,omitempty"`
	Operations int    `json:"operations"`
	CanUndo    bool   `json:"can_undo"`
	CanRedo    bool   `json:"can_redo"`
}

// appendOp validates and appends op to the session log. Loading an image
// first is required so a stray edit can never target an empty session.
func (s *Server) appendOp(op editlog.Operation) (interface{}, error) {
	if !s.sess.Loaded() {
		return nil, session.ErrNoImage
	}
	log := s.sess.Log()
	if err := log.Append(op); err != nil {
		return nil, err
	}
	return &EditResult{
		Appended:   op.Describe(),
		Operations: log.Len(),
		CanUndo:    log.CanUndo(),
		CanRedo:    log.CanRedo(),
	}, nil
}

type editRotateArgs struct {
	Direction string `json:"direction"`
}

func (s *Server) handleEditRotate(args json.RawMessage) (interface{}, error) {
	var a editRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch a.Direction {
	case "right":
		return s.appendOp(editlog.RotateRight())
	case "left":
		return s.appendOp(editlog.RotateLeft())
	default:
		return nil, fmt.Errorf("unknown rotation direction: %q", a.Direction)
	}
}

type editFlipArgs struct {
	Axis string `json:"axis"`
}

func (s *Server) handleEditFlip(args json.RawMessage) (interface{}, error) {
	var a editFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	switch a.Axis {
	case "horizontal":
		return s.appendOp(editlog.FlipHorizontal())
	case "vertical":
		return s.appendOp(editlog.FlipVertical())
	default:
		return nil, fmt.Errorf("unknown flip axis: %q", a.Axis)
	}
}

type editResizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleEditResize(args json.RawMessage) (interface{}, error) {
	var a editResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.appendOp(editlog.Resize(a.Width, a.Height))
}

type editBrightnessArgs struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleEditBrightness(args json.RawMessage) (interface{}, error) {
	var a editBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.appendOp(editlog.Brightness(a.Amount))
}

type editConvertArgs struct {
	Format string `json:"format"`
}

func (s *Server) handleEditConvert(args json.RawMessage) (interface{}, error) {
	var a editConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	format, err := codec.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	return s.appendOp(editlog.ConvertFormat(format))
}

// === History Handlers ===

func (s *Server) handleEditUndo() (interface{}, error) {
	log := s.sess.Log()
	if !log.Undo() {
		return nil, errors.New("nothing to undo")
	}
	return &EditResult{
		Operations: log.Len(),
		CanUndo:    log.CanUndo(),
		CanRedo:    log.CanRedo(),
	}, nil
}

func (s *Server) handleEditRedo() (interface{}, error) {
	log := s.sess.Log()
	if !log.Redo() {
		return nil, errors.New("nothing to redo")
	}
	return &EditResult{
		Operations: log.Len(),
		CanUndo:    log.CanUndo(),
		CanRedo:    log.CanRedo(),
	}, nil
}

// HistoryEntry is one operation in an edit_history listing.
type HistoryEntry struct {
	Index     int    `json:"index"`
	Operation string `json:"operation"`
	CreatedAt string `json:"created_at"`
}

// HistoryResult lists the active operations in application order.
type HistoryResult struct {
	Operations []HistoryEntry `json:"operations"`
	CanUndo    bool           `json:"can_undo"`
	CanRedo    bool           `json:"can_redo"`
}

func (s *Server) handleEditHistory() (interface{}, error) {
	log := s.sess.Log()
	ops := log.Operations()
	entries := make([]HistoryEntry, len(ops))
	for i, op := range ops {
		entries[i] = HistoryEntry{
			Index:     i,
			Operation: op.Describe(),
			CreatedAt: op.CreatedAt.Format(time.RFC3339),
		}
	}
	return &HistoryResult{
		Operations: entries,
		CanUndo:    log.CanUndo(),
		CanRedo:    log.CanRedo(),
	}, nil
}

func (s *Server) handleEditReset() (interface{}, error) {
	s.sess.Log().Clear()
	return &EditResult{Operations: 0}, nil
}

// === Rendering Handlers ===

type imageRenderArgs struct {
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

// RenderResult carries an encoded render to the export sink. Format,
// Filename, and MIMEType reflect the bytes actually written, so a WEBP
// request served by the PNG fallback is labeled as PNG throughout.
type RenderResult struct {
	DataBase64 string `json:"data_base64"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
	Filename   string `json:"filename"`
	MIMEType   string `json:"mime_type"`
}

func (s *Server) handleImageRender(args json.RawMessage) (interface{}, error) {
	var a imageRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	format, err := codec.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	res, err := s.sess.Render(format, a.Quality)
	if err != nil {
		return nil, err
	}
	return &RenderResult{
		DataBase64: base64.StdEncoding.EncodeToString(res.Data),
		Width:      res.Width,
		Height:     res.Height,
		Format:     res.Format.String(),
		Filename:   s.sess.ExportFilename(res.Format),
		MIMEType:   res.Format.MIMEType(),
	}, nil
}

// === Thumbnail Handlers ===

type thumbnailGetArgs struct {
	Key        string `json:"key"`
	Filename   string `json:"filename"`
	DataBase64 string `json:"data_base64"`
}

// ThumbnailResult carries one cached thumbnail for grid display.
type ThumbnailResult struct {
	Key       string `json:"key"`
	Filename  string `json:"filename"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	PNGBase64 string `json:"png_base64"`
}

func (s *Server) handleThumbnailGet(args json.RawMessage) (interface{}, error) {
	var a thumbnailGetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(a.DataBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	entry, err := s.thumbs.GetOrCreate(a.Key, a.Filename, data)
	if err != nil {
		return nil, err
	}
	return &ThumbnailResult{
		Key:       entry.Key,
		Filename:  entry.Filename,
		Width:     thumbnail.Width,
		Height:    thumbnail.Height,
		PNGBase64: base64.StdEncoding.EncodeToString(entry.PNG),
	}, nil
}
