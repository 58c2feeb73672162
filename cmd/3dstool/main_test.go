package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Areng14/BeePEE/internal/config"

	"github.com/Areng14/BeePEE/pkg/formats"
	"github.com/Areng14/BeePEE/pkg/math"
	"github.com/Areng14/BeePEE/pkg/mesh"
)

func TestPrintInfo(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}},
	}
	m.AddPolygon([]int{0, 1, 2})

	data, err := formats.Encode3DS(m, formats.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode3DS failed: %v", err)
	}

	var buf bytes.Buffer
	if err := printInfo(&buf, "tri.3ds", data); err != nil {
		t.Fatalf("printInfo failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"File:   tri.3ds",
		"0x4D4D",
		"0x4110",
		"0x4120",
		`Object:    "collision"`,
		"Vertices:  3",
		"Triangles: 1",
		"Bounds:    (0, 0, 0) - (2, 3, 0)",
		"Extent:    2 x 3 x 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintInfo_Invalid(t *testing.T) {
	var buf bytes.Buffer
	if err := printInfo(&buf, "bad.3ds", []byte{0x00, 0x01}); err == nil {
		t.Error("expected error for truncated data")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "obj23ds.yaml")

	got, err := writeDefaultConfig([]string{path})
	if err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	if got != path {
		t.Errorf("expected %s, got %s", path, got)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Convert.ObjectName != "collision" || cfg.Convert.Scale != 1 {
		t.Errorf("unexpected config %+v", cfg.Convert)
	}
}

func TestWriteDefaultConfig_UserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))

	got, err := writeDefaultConfig(nil)
	if err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	if got != config.DefaultPath() {
		t.Errorf("expected %s, got %s", config.DefaultPath(), got)
	}
	if !strings.HasPrefix(got, home) {
		t.Errorf("expected config under %s, got %s", home, got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}
