// Package main provides the hotspot-map command.
//
// hotspot-map overlays fire/thermal hotspot detections onto a georeferenced
// satellite image, tags each detection with its country and writes a PNG
// summary map next to the image.
//
// Usage:
//
//	hotspot-map <image-file> <metadata-file> [-l|--hotspotloc]
//	hotspot-map serve
//
// See --help for all available options.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
