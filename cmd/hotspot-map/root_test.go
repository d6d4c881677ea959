package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/ironsheep/hotspot-map/internal/borders/borderstest"
	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/geotiff/geotifftest"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
	"github.com/ironsheep/hotspot-map/internal/hotspot/hotspottest"
)

type inputs struct {
	dir     string
	image   string
	hotspot string
	borders string
}

// setup writes the three input files into a fresh working directory and
// isolates the test from any config file on the machine.
func setup(t *testing.T) inputs {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	ext := geotiff.Extent{LonMin: 100, LonMax: 110, LatMin: -5, LatMax: 5}
	return inputs{
		dir:   dir,
		image: geotifftest.WriteFile(t, dir, "storm.tif", geotifftest.Gray(16, 16, 0, 255), &ext),
		hotspot: hotspottest.WriteSet(t, dir, "fires.nc", hotspot.Set{
			{Lat: 2, Lon: 102},
			{Lat: -2, Lon: 108},
		}),
		borders: borderstest.WriteFile(t, dir, "world", "NAME",
			borderstest.Box("Alpha", 100, 0, 105, 5),
		),
	}
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if !strings.HasPrefix(cmd.Use, "hotspot-map ") {
		t.Errorf("Use: got %q", cmd.Use)
	}
	if cmd.Version == "" {
		t.Error("expected non-empty version")
	}

	flag := cmd.Flags().Lookup("hotspotloc")
	if flag == nil {
		t.Fatal("expected hotspotloc flag")
	}
	if flag.Shorthand != "l" || flag.DefValue != "false" {
		t.Errorf("hotspotloc: got -%s default %s, want -l default false", flag.Shorthand, flag.DefValue)
	}
	for _, name := range []string{"config", "borders", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %s", name)
		}
	}

	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"serve", "version"} {
		if !subs[name] {
			t.Errorf("expected %s subcommand", name)
		}
	}
}

func TestRun_Success(t *testing.T) {
	in := setup(t)

	code, _, stderr := runCLI(in.image, in.hotspot, "--borders", in.borders, "--dpi", "20")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(in.dir, "storm-hotspot.png")); err != nil {
		t.Errorf("map not written: %v", err)
	}
	for _, msg := range []string{"Plotting hotspots image", "Plotting IR image"} {
		if !strings.Contains(stderr, msg) {
			t.Errorf("stderr missing %q:\n%s", msg, stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(in.dir, "storm-hotspot.md")); err == nil {
		t.Error("report written without --report")
	}
}

func TestRun_FloatRaster(t *testing.T) {
	in := setup(t)
	ir := geotifftest.WriteFile(t, in.dir, "ir.tif", geotifftest.Ramp(16, 16, 220, 310),
		&geotiff.Extent{LonMin: 100, LonMax: 110, LatMin: -5, LatMax: 5})

	code, _, stderr := runCLI(ir, in.hotspot, "--borders", in.borders, "--dpi", "20")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(in.dir, "ir-hotspot.png")); err != nil {
		t.Errorf("map not written: %v", err)
	}
}

func TestRun_FlagsAnywhere(t *testing.T) {
	in := setup(t)

	code, _, stderr := runCLI("-l", in.image, "--report", in.hotspot, "--borders", in.borders, "--dpi", "20")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(in.dir, "storm-hotspot.md"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !bytes.Contains(data, []byte("Hotspot Locations")) {
		t.Error("report should list locations with -l")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	in := setup(t)
	cfg := "borders:\n  path: " + in.borders + "\noutput:\n  suffix: fires\n"
	if err := os.WriteFile(".hotspot-map.yaml", []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(in.image, in.hotspot, "--dpi", "20")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr %q)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(in.dir, "storm-fires.png")); err != nil {
		t.Errorf("map not written with configured suffix: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T, in inputs) []string
		want string
	}{
		{"no arguments", func(*testing.T, inputs) []string { return nil }, msgUsage},
		{"one argument", func(_ *testing.T, in inputs) []string { return []string{in.image} }, msgUsage},
		{"three arguments", func(_ *testing.T, in inputs) []string {
			return []string{in.image, in.hotspot, "extra", "--borders", in.borders}
		}, msgUsage},
		{"unknown flag", func(_ *testing.T, in inputs) []string {
			return []string{in.image, in.hotspot, "--bogus"}
		}, msgUsage},
		{"missing image", func(_ *testing.T, in inputs) []string {
			return []string{"nope.tif", in.hotspot, "--borders", in.borders}
		}, msgNoFile},
		{"missing hotspot file", func(_ *testing.T, in inputs) []string {
			return []string{in.image, "nope.nc", "--borders", in.borders}
		}, msgNoFile},
		{"missing borders", func(_ *testing.T, in inputs) []string {
			return []string{in.image, in.hotspot}
		}, msgNoFile},
		{"projected raster", func(t *testing.T, in inputs) []string {
			path := geotifftest.WriteFile(t, in.dir, "mercator.tif", geotifftest.Gray(8, 8, 0, 255),
				&geotiff.Extent{LonMin: 100, LonMax: 110, LatMin: -5, LatMax: 5},
				geotifftest.ModelType(geotiff.ModelTypeProjected))
			return []string{path, in.hotspot, "--borders", in.borders}
		}, msgNoFile},
		{"corrupt container", func(t *testing.T, in inputs) []string {
			bad := filepath.Join(in.dir, "bad.nc")
			if err := os.WriteFile(bad, []byte("definitely not HDF5"), 0o644); err != nil {
				t.Fatal(err)
			}
			return []string{in.image, bad, "--borders", in.borders}
		}, msgContainer},
		{"corrupt pixels", func(t *testing.T, in inputs) []string {
			path := geotifftest.WriteFile(t, in.dir, "cut.tif", geotifftest.Gray(64, 64, 0, 255),
				&geotiff.Extent{LonMin: 100, LonMax: 110, LatMin: -5, LatMax: 5})
			geotifftest.CorruptPixels(t, path)
			return []string{path, in.hotspot, "--borders", in.borders}
		}, msgPixels},
		{"invalid dpi", func(_ *testing.T, in inputs) []string {
			return []string{in.image, in.hotspot, "--borders", in.borders, "--dpi", "0"}
		}, "error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := setup(t)
			code, stdout, stderr := runCLI(tt.args(t, in)...)

			if code != 1 {
				t.Errorf("exit code: got %d, want 1", code)
			}
			lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
			last := lines[len(lines)-1]
			if !strings.HasPrefix(last, tt.want) {
				t.Errorf("message: got %q, want %q", last, tt.want)
			}
			if strings.Count(stderr, last) != 1 {
				t.Errorf("message should be printed once:\n%s", stderr)
			}
			if stdout != "" {
				t.Errorf("stdout should be empty, got %q", stdout)
			}

			matches, _ := filepath.Glob(filepath.Join(in.dir, "*-hotspot.png"))
			if len(matches) != 0 {
				t.Errorf("no map expected on failure, found %v", matches)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI("--help")
	if code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stdout, "--hotspotloc") {
		t.Errorf("help should document --hotspotloc:\n%s", stdout)
	}
}

func TestRun_Serve(t *testing.T) {
	in := setup(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve", "--borders", in.borders})
	cmd.SetIn(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"output_path","arguments":{"image_path":"a.tif"}}}` + "\n"))
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("serve failed: %v (stderr %q)", err, errb.String())
	}

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("bad response %q: %v", out.String(), err)
	}
	if len(resp.Result.Content) != 1 || !strings.Contains(resp.Result.Content[0].Text, "a-hotspot.png") {
		t.Errorf("unexpected response: %s", out.String())
	}
}
