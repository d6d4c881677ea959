// Package imaging renders the hotspot map: a square canvas with a map frame
// fitted inside the figure axes, the satellite raster drawn into that frame,
// vector overlays on top and text tables anchored to the axes corners.
//
// # Coordinate System
//
// Canvas pixels are 0-based with the origin at the top-left corner, X
// increasing rightward and Y downward. Geographic positions are converted
// with a Projection, which maps the raster extent onto the map frame with one
// degree of longitude and one degree of latitude covering the same number of
// pixels.
//
// # Drawing Order
//
// Later calls paint over earlier ones. The usual order is DrawBase,
// DrawMarkers, DrawPolylines, DrawGraticule and finally DrawTable. Markers,
// lines and the base image are clipped to the map frame; tables may extend
// past it but never past the canvas.
//
// # Thread Safety
//
// A Canvas is not safe for concurrent drawing. Separate canvases may be drawn
// concurrently.
package imaging
