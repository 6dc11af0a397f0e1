package main

import "testing"
import "os"
import "io"
import "bytes"
import "path/filepath"

import "github.com/sirupsen/logrus"

import "github.com/tinne26/t4atlas"
import "github.com/tinne26/t4atlas/emit"

func TestParseRange(t *testing.T) {
	start, end, err := parseRange("U+0020..U+007E")
	if err != nil { t.Fatalf("unexpected parseRange() error: %s", err) }
	if start != 0x20 || end != 0x7E { t.Fatalf("expected 0x20..0x7E, got 0x%X..0x%X", start, end) }

	for _, bad := range []string{ "U+0020-U+007E", "U+7E..U+20", "20..7E" } {
		_, _, err = parseRange(bad)
		if err == nil { t.Fatalf("expected parseRange('%s') to fail", bad) }
	}
}

func TestBuildFont(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "font9.txt")
	content := "font height=2\nrange U+0041..U+0042\nglyph U+0041\n10\n01\nend\nglyph U+0050\n11\n11\nend\n"
	err := os.WriteFile(fontPath, []byte(content), 0644)
	if err != nil { t.Fatal(err) }

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	config := buildConfig{
		outDir: filepath.Join(dir, "out"),
		pack: t4atlas.PackConfig{ PageSize: 16, Ink: 1 },
		emit: emit.DefaultOptions(),
		writeBin: true,
		writePNG: true,
		scale: 2,
	}
	err = os.MkdirAll(config.outDir, 0755)
	if err != nil { t.Fatal(err) }
	desc, err := t4atlas.ParseFile(fontPath)
	if err != nil { t.Fatalf("unexpected ParseFile() error: %s", err) }
	err = buildFont(desc, fontPath, &config, logger)
	if err != nil { t.Fatalf("unexpected buildFont() error: %s", err) }

	for _, name := range []string{ "font9_atlas.h", "font9_atlas.c", "font9.t4a", "font9_page0.png" } {
		_, err := os.Stat(filepath.Join(config.outDir, name))
		if err != nil { t.Fatalf("expected output file '%s': %s", name, err) }
	}

	data, err := os.ReadFile(filepath.Join(config.outDir, "font9.t4a"))
	if err != nil { t.Fatal(err) }
	atlas, err := t4atlas.ParseAtlas(bytes.NewReader(data))
	if err != nil { t.Fatalf("unexpected ParseAtlas() error: %s", err) }
	if atlas.Name != "font9" || len(atlas.GlyphTable) != 2 {
		t.Fatalf("unexpected atlas '%s' with %d entries", atlas.Name, len(atlas.GlyphTable))
	}

	// layout failures don't write anything
	desc = &t4atlas.FontDescription{
		Name: "huge", Height: 20, RangeStart: 'A', RangeEnd: 'A',
		DefaultCodepoint: t4atlas.DefaultCodepoint,
		Glyphs: map[rune]*t4atlas.GlyphDef{},
	}
	err = buildFont(desc, "huge.txt", &config, logger)
	if err == nil { t.Fatalf("expected buildFont() to fail on cells larger than the page") }
	_, err = os.Stat(filepath.Join(config.outDir, "huge_atlas.c"))
	if !os.IsNotExist(err) { t.Fatalf("expected no output for a font that can't be packed") }
}

func writeDescription(t *testing.T, path string, content string) {
	t.Helper()
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil { t.Fatal(err) }
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil { t.Fatal(err) }
}

func TestRunBuild(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	fontA := filepath.Join(dir, "a", "font.txt")
	other := filepath.Join(dir, "other.txt")
	broken := filepath.Join(dir, "broken.txt")
	writeDescription(t, fontA, "font height=1\nrange U+41..U+41\nglyph U+41\n1\nend\n")
	writeDescription(t, other, "font name=my-font height=1\nrange U+43..U+43\n")
	writeDescription(t, broken, "font height=2\nglyph U+41\n1\nend\n")

	tests := []struct{
		Name string
		Args []string
		ExitCode int
	}{
		{"no files", []string{"-o", outDir}, 2},
		{"bad flag", []string{"-unknown", fontA}, 2},
		{"ink overflow", []string{"-o", outDir, "-ink", "16", fontA}, 2},
		{"success", []string{"-o", outDir, "-page", "16", fontA, other}, 0},
		{"broken description", []string{"-o", outDir, "-page", "16", broken, other}, 1},
	}
	for _, test := range tests {
		code := runBuild(test.Args)
		if code != test.ExitCode {
			t.Fatalf("test '%s': expected exit code %d, got %d", test.Name, test.ExitCode, code)
		}
	}
	_, err := os.Stat(filepath.Join(outDir, "my_font_atlas.c"))
	if err != nil { t.Fatalf("expected sanitized output file: %s", err) }
}

func TestRunBuildNameCollision(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	fontA := filepath.Join(dir, "a", "font.txt")
	fontB := filepath.Join(dir, "b", "font.txt")
	writeDescription(t, fontA, "font height=1\nrange U+41..U+41\nglyph U+41\n1\nend\n")
	writeDescription(t, fontB, "font height=2\nrange U+42..U+43\nglyph U+42\n11\n11\nend\n")

	code := runBuild([]string{"-o", outDir, "-j", "2", "-page", "8", "-bin", fontA, fontB})
	if code != 1 { t.Fatalf("expected exit code 1 on output name collision, got %d", code) }

	// the first font keeps its outputs, untouched by the second
	data, err := os.ReadFile(filepath.Join(outDir, "font.t4a"))
	if err != nil { t.Fatalf("expected output of the first font: %s", err) }
	atlas, err := t4atlas.ParseAtlas(bytes.NewReader(data))
	if err != nil { t.Fatalf("unexpected ParseAtlas() error: %s", err) }
	if atlas.RangeStart != 'A' || atlas.RangeEnd != 'A' || atlas.CellHeight != 1 {
		t.Fatalf("expected the atlas of the first font, got range %s..%s", t4atlas.FormatCodepoint(atlas.RangeStart), t4atlas.FormatCodepoint(atlas.RangeEnd))
	}

	// names that sanitize to the same identifier collide too
	dashed := filepath.Join(dir, "dashed.txt")
	underscored := filepath.Join(dir, "underscored.txt")
	writeDescription(t, dashed, "font name=my-font height=1\n")
	writeDescription(t, underscored, "font name=my_font height=1\n")
	code = runBuild([]string{"-o", outDir, "-page", "8", dashed, underscored})
	if code != 1 { t.Fatalf("expected exit code 1 on sanitized name collision, got %d", code) }
}

func TestRunImport(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "basic.txt")
	code := runImport([]string{"-basic", "-range", "U+0041..U+0042", "-o", outPath})
	if code != 0 { t.Fatalf("expected exit code 0, got %d", code) }

	desc, err := t4atlas.ParseFile(outPath)
	if err != nil { t.Fatalf("imported description doesn't parse: %s", err) }
	if desc.Name != "basic7x13" || desc.Height != 13 || len(desc.Glyphs) != 2 {
		t.Fatalf("unexpected imported font '%s' with height %d and %d glyphs", desc.Name, desc.Height, len(desc.Glyphs))
	}

	tests := []struct{
		Name string
		Args []string
		ExitCode int
	}{
		{"no source", []string{"-range", "U+0041..U+0042"}, 2},
		{"two sources", []string{"-basic", "-bdf", "font.bdf"}, 2},
		{"bad range", []string{"-basic", "-range", "U+0042..U+0041"}, 2},
		{"missing bdf", []string{"-bdf", filepath.Join(dir, "missing.bdf")}, 1},
	}
	for _, test := range tests {
		code := runImport(test.Args)
		if code != test.ExitCode {
			t.Fatalf("test '%s': expected exit code %d, got %d", test.Name, test.ExitCode, code)
		}
	}
}
