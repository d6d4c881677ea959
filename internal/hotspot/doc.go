// Package hotspot loads thermal hotspot detections and derives the tables
// drawn on the output image.
//
// Detections are stored as two parallel one-dimensional variables,
// FP_latitude and FP_longitude, in a netCDF-4/HDF5 or classic netCDF
// container. Load returns them as an ordered Set that follows storage order;
// duplicate coordinates are kept.
//
// Rows and Summarize turn a Set plus its parallel country assignments into
// the per-point table and the per-country count table.
package hotspot
