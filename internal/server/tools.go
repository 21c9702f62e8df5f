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
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
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

		// Filters
		{
			Name:        "image_filter",
			Description: "Apply a convolution filter and return the result as base64-encoded PNG. 'gaussian' is a 5x5 blur; 'sobel' is a 3x3 gradient magnitude over the gray average. Border pixels are copied unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gaussian", "sobel"},
						"description": "Filter to apply",
					},
				},
				"required": []string{"path", "filter"},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Segment an image into regions of similar color and paint each region with a random color. Small regions and dark pixels are painted black. Returns the segmented image as base64-encoded PNG plus region statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"epsilon": map[string]interface{}{
						"type":        "number",
						"description": "Similarity threshold; neighbors closer than this merge. Default 48",
					},
					"prefilter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "gaussian", "sobel"},
						"description": "Filter applied before grouping. Default sobel",
					},
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"red", "rgb", "lab"},
						"description": "Color distance. 'red' compares the red channel and ignores pixels with red below 40. Default red",
					},
					"size_rule": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"partial", "final"},
						"description": "Which pixel count decides whether a region is too small. Default partial",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Seed for region colors. 0 or omitted uses the clock",
					},
					"legacy_write": map[string]interface{}{
						"type":        "boolean",
						"description": "Write pixels during discovery, as the single-pass renderer does",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied before segmenting. Default 1.0",
						"default":     1.0,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the segmented image to; the extension picks the format",
					},
				},
				"required": []string{"path"},
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
