package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Rendering
		{
			Name:        "hotspot_plot",
			Description: "Render the hotspot map for a GeoTIFF and its detection file. Writes <image>-hotspot.png next to the image and returns the per-country counts. Optionally returns a downscaled base64 PNG preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the GeoTIFF image",
					},
					"hotspot_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the netCDF-4/HDF5 detection file",
					},
					"hotspot_locations": map[string]interface{}{
						"type":        "boolean",
						"description": "Add the per-point latitude/longitude/country table. Default false",
						"default":     false,
					},
					"borders_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional country borders shapefile. Defaults to the configured dataset",
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a base64 PNG preview of the rendered map. Default false",
						"default":     false,
					},
					"preview_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview in pixels. Default 800",
						"default":     800,
					},
				},
				"required": []string{"image_path", "hotspot_path"},
			},
		},

		// Inputs
		{
			Name:        "raster_extent",
			Description: "Read the size, band count and geographic extent of a GeoTIFF without decoding its pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the GeoTIFF image",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hotspot_classify",
			Description: "Assign every detection in a hotspot file to a country. Returns the rows (coordinates rounded to 2 decimals) and the per-country counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hotspot_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the netCDF-4/HDF5 detection file",
					},
					"borders_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional country borders shapefile. Defaults to the configured dataset",
					},
				},
				"required": []string{"hotspot_path"},
			},
		},
		{
			Name:        "output_path",
			Description: "Return the map file name that hotspot_plot would write for an image path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the GeoTIFF image",
					},
				},
				"required": []string{"image_path"},
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
