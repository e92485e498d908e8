package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer() *Server {
	return New(zerolog.Nop())
}

func sourcePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x % 256), uint8(y % 256), 32, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode source: %v", err)
	}
	return buf.Bytes()
}

func makeRequest(t *testing.T, method string, params interface{}) *MCPRequest {
	t.Helper()
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		raw = b
	}
	return &MCPRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: raw}
}

// callTool invokes a tool through the full tools/call path and decodes
// the JSON payload from the MCP content wrapper into out.
func callTool(t *testing.T, s *Server, name string, args interface{}, out interface{}) {
	t.Helper()
	resp := callToolRaw(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("tool %s failed: %s (%v)", name, resp.Error.Message, resp.Error.Data)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content shape: %#v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if out != nil {
		if err := json.Unmarshal([]byte(text), out); err != nil {
			t.Fatalf("decode tool result: %v\n%s", err, text)
		}
	}
}

func callToolRaw(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	req := makeRequest(t, "tools/call", map[string]interface{}{
		"name":      name,
		"arguments": json.RawMessage(argsJSON),
	})
	resp := s.handleRequest(req)
	if resp == nil {
		t.Fatal("tools/call returned no response")
	}
	return resp
}

func loadTestImage(t *testing.T, s *Server, name string, width, height int) {
	t.Helper()
	var res LoadResult
	callTool(t, s, "image_load", map[string]string{
		"name":        name,
		"data_base64": base64.StdEncoding.EncodeToString(sourcePNG(t, width, height)),
	}, &res)
	if res.Width != width || res.Height != height {
		t.Fatalf("load dimensions: got %dx%d, want %dx%d", res.Width, res.Height, width, height)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(makeRequest(t, "initialize", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "image-edit-mcp" {
		t.Errorf("server name: got %v", info["name"])
	}
}

func TestHandleInitialized_NoResponse(t *testing.T) {
	s := newTestServer()
	if resp := s.handleRequest(makeRequest(t, "notifications/initialized", nil)); resp != nil {
		t.Error("initialized notification should not produce a response")
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(makeRequest(t, "bogus/method", nil))
	if resp == nil || resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("expected -32601 error, got %+v", resp)
	}
}

func TestToolsList(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(makeRequest(t, "tools/list", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	tools := resp.Result.(map[string]interface{})["tools"].([]Tool)
	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if tool.Description == "" || tool.InputSchema == nil {
			t.Errorf("tool %s missing description or schema", tool.Name)
		}
		names[tool.Name] = true
	}

	for _, want := range []string{
		"image_load", "image_info",
		"edit_rotate", "edit_flip", "edit_resize", "edit_grayscale",
		"edit_brightness", "edit_convert",
		"edit_undo", "edit_redo", "edit_history", "edit_reset",
		"image_render", "thumbnail_get", "thumbnail_clear",
	} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}

func TestUnknownTool(t *testing.T) {
	s := newTestServer()
	resp := callToolRaw(t, s, "image_teleport", map[string]string{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000 error, got %+v", resp)
	}
}

func TestEditBeforeLoadFails(t *testing.T) {
	s := newTestServer()
	resp := callToolRaw(t, s, "edit_rotate", map[string]string{"direction": "right"})
	if resp.Error == nil {
		t.Fatal("editing without a loaded image should fail")
	}
}

func TestLoadRejectsBadBase64(t *testing.T) {
	s := newTestServer()
	resp := callToolRaw(t, s, "image_load", map[string]string{
		"name":        "x.png",
		"data_base64": "!!!not-base64!!!",
	})
	if resp.Error == nil {
		t.Fatal("image_load should reject invalid base64")
	}
}

func TestLoadRejectsNonImage(t *testing.T) {
	s := newTestServer()
	resp := callToolRaw(t, s, "image_load", map[string]string{
		"name":        "x.png",
		"data_base64": base64.StdEncoding.EncodeToString([]byte("hello")),
	})
	if resp.Error == nil {
		t.Fatal("image_load should reject undecodable bytes")
	}
}

func TestEditAndRenderFlow(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 40, 30)

	var edit EditResult
	callTool(t, s, "edit_rotate", map[string]string{"direction": "right"}, &edit)
	if edit.Operations != 1 || !edit.CanUndo {
		t.Fatalf("edit state: %+v", edit)
	}

	var render RenderResult
	callTool(t, s, "image_render", map[string]interface{}{"format": "png"}, &render)

	if render.Width != 30 || render.Height != 40 {
		t.Errorf("render dimensions: got %dx%d, want 30x40", render.Width, render.Height)
	}
	if render.Format != "png" || render.MIMEType != "image/png" {
		t.Errorf("render format: got %s / %s", render.Format, render.MIMEType)
	}
	if render.Filename != "photo.png" {
		t.Errorf("filename: got %q, want photo.png", render.Filename)
	}

	data, err := base64.StdEncoding.DecodeString(render.DataBase64)
	if err != nil {
		t.Fatalf("render payload is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("render payload is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 40 {
		t.Error("decoded payload dimensions disagree with reported dimensions")
	}
}

func TestRenderReportsWrittenFormat(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 16, 16)

	var render RenderResult
	callTool(t, s, "image_render", map[string]interface{}{"format": "webp"}, &render)

	// Without the webp build tag the render falls back to PNG and every
	// label follows the bytes actually written.
	switch render.Format {
	case "png":
		if render.MIMEType != "image/png" || !strings.HasSuffix(render.Filename, ".png") {
			t.Errorf("fallback labels inconsistent: %+v", render)
		}
	case "webp":
		if render.MIMEType != "image/webp" || !strings.HasSuffix(render.Filename, ".webp") {
			t.Errorf("webp labels inconsistent: %+v", render)
		}
	default:
		t.Errorf("unexpected format %q", render.Format)
	}
}

func TestUndoRedoFlow(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 40, 30)

	callTool(t, s, "edit_rotate", map[string]string{"direction": "right"}, nil)
	callTool(t, s, "edit_flip", map[string]string{"axis": "horizontal"}, nil)

	var edit EditResult
	callTool(t, s, "edit_undo", nil, &edit)
	if edit.Operations != 1 || !edit.CanRedo {
		t.Fatalf("after undo: %+v", edit)
	}

	callTool(t, s, "edit_redo", nil, &edit)
	if edit.Operations != 2 || edit.CanRedo {
		t.Fatalf("after redo: %+v", edit)
	}

	callTool(t, s, "edit_undo", nil, nil)
	callTool(t, s, "edit_undo", nil, nil)
	if resp := callToolRaw(t, s, "edit_undo", nil); resp.Error == nil {
		t.Error("undo past the beginning should fail")
	}
}

func TestEditHistory(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 40, 30)

	callTool(t, s, "edit_rotate", map[string]string{"direction": "left"}, nil)
	callTool(t, s, "edit_resize", map[string]int{"width": 20}, nil)
	callTool(t, s, "edit_convert", map[string]string{"format": "jpeg"}, nil)

	var history HistoryResult
	callTool(t, s, "edit_history", nil, &history)

	if len(history.Operations) != 3 {
		t.Fatalf("history length: got %d, want 3", len(history.Operations))
	}
	wantOps := []string{"rotate_left", "resize 20x0", "convert_format to jpeg"}
	for i, entry := range history.Operations {
		if entry.Operation != wantOps[i] {
			t.Errorf("entry %d: got %q, want %q", i, entry.Operation, wantOps[i])
		}
		if entry.CreatedAt == "" {
			t.Errorf("entry %d missing timestamp", i)
		}
	}
}

func TestEditReset(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 40, 30)
	callTool(t, s, "edit_rotate", map[string]string{"direction": "right"}, nil)

	var edit EditResult
	callTool(t, s, "edit_reset", nil, &edit)
	if edit.Operations != 0 {
		t.Errorf("after reset: %+v", edit)
	}

	var render RenderResult
	callTool(t, s, "image_render", map[string]interface{}{"format": "png"}, &render)
	if render.Width != 40 || render.Height != 30 {
		t.Errorf("reset render: got %dx%d, want pristine 40x30", render.Width, render.Height)
	}
}

func TestImageInfo(t *testing.T) {
	s := newTestServer()
	loadTestImage(t, s, "photo.png", 24, 18)

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	callTool(t, s, "image_info", nil, &info)
	if info.Width != 24 || info.Height != 18 || info.Format != "png" {
		t.Errorf("info: %+v", info)
	}
}

func TestThumbnailFlow(t *testing.T) {
	s := newTestServer()
	data := base64.StdEncoding.EncodeToString(sourcePNG(t, 300, 200))

	var thumb ThumbnailResult
	callTool(t, s, "thumbnail_get", map[string]string{
		"key":         "img-1",
		"filename":    "a.png",
		"data_base64": data,
	}, &thumb)

	if thumb.Width != 140 || thumb.Height != 120 {
		t.Errorf("thumbnail dimensions: got %dx%d, want 140x120", thumb.Width, thumb.Height)
	}
	raw, err := base64.StdEncoding.DecodeString(thumb.PNGBase64)
	if err != nil {
		t.Fatalf("thumbnail payload is not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("thumbnail payload is not PNG: %v", err)
	}

	// Same key from different bytes still returns the cached entry.
	var again ThumbnailResult
	callTool(t, s, "thumbnail_get", map[string]string{
		"key":         "img-1",
		"filename":    "a.png",
		"data_base64": base64.StdEncoding.EncodeToString(sourcePNG(t, 80, 80)),
	}, &again)
	if again.PNGBase64 != thumb.PNGBase64 {
		t.Error("cached entry should be returned for a known key")
	}

	callTool(t, s, "thumbnail_clear", nil, nil)
	if s.thumbs.Len() != 0 {
		t.Error("thumbnail_clear should empty the cache")
	}
}

func TestServe_EndToEnd(t *testing.T) {
	s := newTestServer()

	var in bytes.Buffer
	in.WriteString(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")
	in.WriteString("\n") // blank lines are skipped
	in.WriteString(`not json` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","id":3,"method":"ping"}` + "\n")

	var out bytes.Buffer
	if err := s.Serve(&in, &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("response count: got %d, want 3", len(lines))
	}
	for i, line := range lines {
		var resp map[string]interface{}
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Errorf("response %d is not JSON: %v", i, err)
		}
	}
}
