package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	noArgs := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}

	return []Tool{
		// Session
		{
			Name:        "image_load",
			Description: "Load an image from base64-encoded bytes and make it the active editing session source. Clears any existing edit history. Supports JPEG, PNG, BMP, GIF, and WEBP input.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Display filename, used to derive the export filename",
					},
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Raw image bytes, base64-encoded",
					},
				},
				"required": []string{"name", "data_base64"},
			},
		},
		{
			Name:        "image_info",
			Description: "Describe the active source image: dimensions, detected format, alpha presence, and average color.",
			InputSchema: noArgs,
		},

		// Edit operations (appended to the session's edit log)
		{
			Name:        "edit_rotate",
			Description: "Append a 90-degree rotation to the edit history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"right", "left"},
						"description": "Rotation direction: right is clockwise",
					},
				},
				"required": []string{"direction"},
			},
		},
		{
			Name:        "edit_flip",
			Description: "Append a mirror flip to the edit history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"axis": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Mirror axis",
					},
				},
				"required": []string{"axis"},
			},
		},
		{
			Name:        "edit_resize",
			Description: "Append a resize to the edit history. With both dimensions the output is exactly that size; with one, the other is derived from the aspect ratio at that point in the history; with neither, the operation is a no-op.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels (0 = derive from height)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels (0 = derive from width)",
					},
				},
			},
		},
		{
			Name:        "edit_grayscale",
			Description: "Append a grayscale conversion to the edit history.",
			InputSchema: noArgs,
		},
		{
			Name:        "edit_brightness",
			Description: "Append a brightness adjustment to the edit history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"amount": map[string]interface{}{
						"type":        "number",
						"description": "Adjustment in [-1, 1]: -1 black, 0 unchanged, 1 doubles channel values",
					},
				},
				"required": []string{"amount"},
			},
		},
		{
			Name:        "edit_convert",
			Description: "Record the intended export format in the edit history. Has no pixel effect; the format is applied when rendering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "png", "bmp", "gif", "webp"},
						"description": "Target format",
					},
				},
				"required": []string{"format"},
			},
		},

		// History
		{
			Name:        "edit_undo",
			Description: "Step the edit history back one operation. A subsequent edit discards the undone tail.",
			InputSchema: noArgs,
		},
		{
			Name:        "edit_redo",
			Description: "Re-apply the most recently undone operation.",
			InputSchema: noArgs,
		},
		{
			Name:        "edit_history",
			Description: "List the active edit operations in application order, with timestamps.",
			InputSchema: noArgs,
		},
		{
			Name:        "edit_reset",
			Description: "Clear the entire edit history, returning the preview to the pristine source.",
			InputSchema: noArgs,
		},

		// Rendering
		{
			Name:        "image_render",
			Description: "Replay the edit history against the pristine source and return the encoded result. The response reports the format actually written: a webp request falls back to png when this build has no webp encoder.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "png", "bmp", "gif", "webp"},
						"description": "Output format",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG/WEBP quality 1-100 (default 90); ignored for lossless formats",
						"default":     90,
					},
				},
				"required": []string{"format"},
			},
		},

		// Thumbnails
		{
			Name:        "thumbnail_get",
			Description: "Return a memoized 140x120 PNG thumbnail for the given key, generating it from the supplied bytes on first request. Subsequent requests for the same key return the cached entry without decoding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Stable cache key for this image",
					},
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Display filename stored with the thumbnail",
					},
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Raw image bytes, base64-encoded. Ignored when the key is already cached.",
					},
				},
				"required": []string{"key", "filename", "data_base64"},
			},
		},
		{
			Name:        "thumbnail_clear",
			Description: "Empty the thumbnail cache.",
			InputSchema: noArgs,
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
