package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image-segment-mcp/internal/config"
	"github.com/ironsheep/image-segment-mcp/internal/filter"
	"github.com/ironsheep/image-segment-mcp/internal/imaging"
	"github.com/ironsheep/image-segment-mcp/internal/pixel"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/filter/segment function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Filters
	case "image_filter":
		return s.handleImageFilter(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Filter Handlers ===

type imageFilterArgs struct {
	Path   string `json:"path"`
	Filter string `json:"filter"`
}

// FilterResult is the output of image_filter.
type FilterResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var apply func(*pixel.Buffer) *pixel.Buffer
	switch a.Filter {
	case "gaussian":
		apply = filter.Gaussian
	case "sobel":
		apply = filter.Sobel
	default:
		return nil, fmt.Errorf("unknown filter: %s (use gaussian or sobel)", a.Filter)
	}

	buf, err := s.cache.LoadBuffer(a.Path, s.defaults.MaxPixels)
	if err != nil {
		return nil, err
	}
	out := apply(buf)

	encoded, err := imaging.EncodePNGBase64(out)
	if err != nil {
		return nil, err
	}
	return &FilterResult{
		Width:       out.Width,
		Height:      out.Height,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// === Segmentation Handlers ===

type imageSegmentArgs struct {
	Path        string   `json:"path"`
	Epsilon     *float64 `json:"epsilon"`
	Prefilter   string   `json:"prefilter"`
	Metric      string   `json:"metric"`
	SizeRule    string   `json:"size_rule"`
	Seed        uint64   `json:"seed"`
	LegacyWrite *bool    `json:"legacy_write"`
	Scale       float64  `json:"scale"`
	OutputPath  string   `json:"output_path"`
}

// SegmentResult is the output of image_segment.
type SegmentResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	segment.Stats
	Merges     int    `json:"merges"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := s.defaults
	cfg.Resolve(config.Flags{
		Epsilon:     a.Epsilon,
		Prefilter:   a.Prefilter,
		Metric:      a.Metric,
		SizeRule:    a.SizeRule,
		Seed:        a.Seed,
		LegacyWrite: a.LegacyWrite,
		Scale:       a.Scale,
	})
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	buf, err := s.cache.LoadBuffer(a.Path, cfg.MaxPixels)
	if err != nil {
		return nil, err
	}
	buf, err = imaging.Scale(buf, cfg.Scale, cfg.MaxPixels)
	if err != nil {
		return nil, err
	}

	res, err := segment.Segment(buf, opts)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.Encode(a.OutputPath, res.Pixels); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodePNGBase64(res.Pixels)
	if err != nil {
		return nil, err
	}
	return &SegmentResult{
		Width:       res.Pixels.Width,
		Height:      res.Pixels.Height,
		ImageBase64: encoded,
		MimeType:    "image/png",
		Stats:       res.Stats,
		Merges:      res.Merges,
		OutputPath:  a.OutputPath,
	}, nil
}
