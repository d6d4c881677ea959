package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
	"github.com/ironsheep/hotspot-map/internal/imaging"
	"github.com/ironsheep/hotspot-map/internal/plot"
)

// defaultPreviewSize bounds the longest side of a hotspot_plot preview.
const defaultPreviewSize = 800

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "hotspot_plot", "raster_extent").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
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
	case "hotspot_plot":
		return s.handleHotspotPlot(ctx, args)
	case "raster_extent":
		return s.handleRasterExtent(args)
	case "hotspot_classify":
		return s.handleHotspotClassify(args)
	case "output_path":
		return s.handleOutputPath(args)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Rendering ===

type hotspotPlotArgs struct {
	ImagePath        string `json:"image_path"`
	HotspotPath      string `json:"hotspot_path"`
	HotspotLocations bool   `json:"hotspot_locations"`
	BordersPath      string `json:"borders_path"`
	Preview          bool   `json:"preview"`
	PreviewSize      int    `json:"preview_size"`
}

type hotspotPlotResult struct {
	*plot.Result
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

func (s *Server) handleHotspotPlot(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a hotspotPlotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ImagePath == "" || a.HotspotPath == "" {
		return nil, errors.New("image_path and hotspot_path are required")
	}
	if a.PreviewSize == 0 {
		a.PreviewSize = defaultPreviewSize
	}

	cfg := *s.cfg
	if a.BordersPath != "" {
		cfg.Borders.Path = a.BordersPath
	}

	res, err := plot.New(&cfg, s.logger, plot.WithBordersLoader(s.cache)).Run(ctx, plot.Request{
		ImagePath:        a.ImagePath,
		HotspotPath:      a.HotspotPath,
		HotspotLocations: a.HotspotLocations,
	})
	if err != nil {
		return nil, err
	}

	out := hotspotPlotResult{Result: res}
	if a.Preview {
		out.Preview, err = imaging.Preview(res.Image, a.PreviewSize)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// === Inputs ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleRasterExtent(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	md, err := geotiff.ReadMetadata(a.Path)
	if err != nil {
		return nil, err
	}
	if _, err := md.GeoExtent(); err != nil {
		return nil, fmt.Errorf("%s: %w", a.Path, err)
	}
	return md, nil
}

type hotspotClassifyArgs struct {
	HotspotPath string `json:"hotspot_path"`
	BordersPath string `json:"borders_path"`
}

type hotspotClassifyResult struct {
	Rows    []hotspot.Row   `json:"rows"`
	Summary hotspot.Summary `json:"summary"`
}

func (s *Server) handleHotspotClassify(args json.RawMessage) (interface{}, error) {
	var a hotspotClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BordersPath == "" {
		a.BordersPath = s.cfg.Borders.Path
	}

	set, err := hotspot.Load(a.HotspotPath)
	if err != nil {
		return nil, err
	}
	ds, err := s.cache.Load(a.BordersPath, s.cfg.Borders.NameField)
	if err != nil {
		return nil, err
	}

	countries := ds.ClassifyAll(set)
	rows, err := hotspot.Rows(set, countries)
	if err != nil {
		return nil, err
	}
	return hotspotClassifyResult{Rows: rows, Summary: hotspot.Summarize(countries)}, nil
}

type outputPathArgs struct {
	ImagePath string `json:"image_path"`
}

func (s *Server) handleOutputPath(args json.RawMessage) (interface{}, error) {
	var a outputPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return map[string]string{
		"output_path": plot.OutputPath(a.ImagePath, s.cfg.Output.Suffix),
	}, nil
}
