package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var orderByEnum = []string{
	"name", "file_size", "creation_time", "last_access_time",
	"last_write_time", "extension", "random", "exif_date_taken",
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func pointProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "number"},
			"y": map[string]interface{}{"type": "number"},
		},
		"required":    []string{"x", "y"},
		"description": description,
	}
}

// selectionProperties are shared by the tools that act on a drag selection.
func selectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"from": pointProperty("Corner where the drag started, in image pixels"),
		"to":   pointProperty("Corner where the drag ended, in image pixels"),
		"selection": map[string]interface{}{
			"type":        "string",
			"description": "Selection as \"left;top;width;height\". Used instead of from/to.",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, decoded format, size and modification time. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Image List Operations
		{
			Name:        "image_list_sort",
			Description: "Sort a list of image paths the way a viewer orders its folder: natural name order (2.jpg before 10.jpg), or by size, date, extension or at random, optionally grouped by directory. Files whose metadata cannot be read are kept, sorted last and reported.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image files, or directories to list when expand is set",
					},
					"order_by": map[string]interface{}{
						"type":        "string",
						"enum":        orderByEnum,
						"description": "Primary sort key. Defaults to the server configuration.",
					},
					"order_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"asc", "desc"},
						"description": "Sort direction. Ignored for random.",
					},
					"group_by_dir": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep files of the same directory together",
					},
					"expand": map[string]interface{}{
						"type":        "boolean",
						"description": "List directories in paths (one level, image extensions only)",
						"default":     false,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "image_list_dirs",
			Description: "Return the distinct directories referenced by a list of paths, in order of first appearance. Missing paths are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Files or directories",
					},
				},
				"required": []string{"paths"},
			},
		},

		// Selection Operations
		{
			Name:        "image_selection",
			Description: "Compute the selection rectangle spanned by two drag corners, clipped to the image or to explicit bounds, together with its eight resize handles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image whose bounds clip the selection. Optional when bounds is given.",
					},
					"bounds": map[string]interface{}{
						"type":        "string",
						"description": "Clip bounds as \"left;top;width;height\"",
					},
					"from": pointProperty("Corner where the drag started"),
					"to":   pointProperty("Corner where the drag ended"),
					"handle_size": map[string]interface{}{
						"type":        "number",
						"description": "Side of the square resize handles. Defaults to the server configuration.",
					},
				},
				"required": []string{"from", "to"},
			},
		},
		{
			Name:        "image_crop_selection",
			Description: "Crop a drag selection out of an image and return it as base64-encoded PNG. The selection is clipped to the image and rounded outward to whole pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(selectionProperties(), map[string]interface{}{
					"path": pathProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
						"minimum":     0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_selection_overlay",
			Description: "Render the image with a selection highlighted as a crop tool shows it: outside dimmed, selection outlined, resize handles and an optional size label. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(selectionProperties(), map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline and handle colour as #RRGGBB. Defaults to the server configuration.",
					},
					"dim": map[string]interface{}{
						"type":        "number",
						"description": "How much to darken outside the selection, 0 to 1",
						"default":     0.5,
					},
					"handle_size": map[string]interface{}{
						"type":        "number",
						"description": "Side of the square resize handles. Defaults to the server configuration.",
					},
					"show_label": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the selection size in its top-left corner",
						"default":     true,
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
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
