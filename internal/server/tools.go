package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_translate",
			Description: "Replace Simplified Chinese text in an image with Traditional Chinese. " +
				"Text is detected with OCR, converted, and redrawn in place with a contrasting outline. " +
				"Writes the result to output_path when given, otherwise returns it base64-encoded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"font_color": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"white", "black", "auto"},
						"description": "Fill color of the redrawn text. auto samples the original text color. Defaults to the server setting",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write. The format follows the extension (.png, .jpg, .jpeg)",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "jpg"},
						"description": "Encoding of the returned image when no output_path is given. Defaults to the input format",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_detect_text",
			Description: "Run text detection on an image and list every region with its text, confidence and box, " +
				"marking which regions would be translated and why the others are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a PNG with accepted regions outlined in green and skipped ones in red",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_text_color",
			Description: "Estimate the dominant text color inside a region and the black or white color that contrasts with it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_fit_font_size",
			Description: "Find the largest font size at which text fits a box, using the configured font.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Box width in pixels (at most 8192)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Box height in pixels (at most 8192)",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to fit",
					},
				},
				"required": []string{"width", "height", "text"},
			},
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
