package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/ironsheep/hotspot-map/internal/config"
	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"usage", fmt.Errorf("%w: expected 2 arguments, got 3", ErrUsage), msgUsage},
		{"missing file", fmt.Errorf("failed to open raster: %w", fs.ErrNotExist), msgNoFile},
		{"unreadable raster", fmt.Errorf("x.tif: %w", geotiff.ErrUnreadable), msgNoFile},
		{"not georeferenced", fmt.Errorf("x.tif: %w", geotiff.ErrNotGeoreferenced), msgNoFile},
		{"projected", fmt.Errorf("x.tif: %w: model type 1", geotiff.ErrNotGeographic), msgNoFile},
		{"bad container", fmt.Errorf("%w: truncated", hotspot.ErrContainer), msgContainer},
		{"bad pixels", fmt.Errorf("%w: x.tif", geotiff.ErrPixelData), msgPixels},
		{"other", config.ErrInvalidDPI, "error: " + config.ErrInvalidDPI.Error()},
		{"plain", errors.New("boom"), "error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := message(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
