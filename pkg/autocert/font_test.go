package autocert

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFontLoaderEmbedded(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		fontName string
	}{
		{name: "nil config", cfg: nil, fontName: ""},
		{name: "default name", cfg: &Config{}, fontName: DefaultFontName},
		{name: "missing metadata file", cfg: &Config{FontMetadataPath: filepath.Join(t.TempDir(), "none.json")}, fontName: "Roboto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fontFamily, err := NewFontLoader(tt.cfg).LoadFont(tt.fontName)
			if err != nil {
				t.Fatalf("LoadFont failed: %v", err)
			}
			if fontFamily == nil {
				t.Fatal("LoadFont returned nil fontFamily")
			}
		})
	}
}

func TestGetAvailableFonts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font_metadata.json")
	if err := os.WriteFile(path, []byte(`[{"name":"Roboto","path":"fonts/Roboto.ttf"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	fonts, err := GetAvailableFonts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fonts) != 1 || fonts[0].Name != "Roboto" || fonts[0].Path != "fonts/Roboto.ttf" {
		t.Errorf("unexpected metadata %+v", fonts)
	}

	fl := &FontLoader{AvailableFonts: fonts}
	if _, err := fl.GetAvailableFontMetadataByName("Arial"); err == nil {
		t.Error("expected error for unknown font")
	}
}

func TestScanFontDirSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	fonts, err := ScanFontDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fonts) != 0 {
		t.Errorf("expected no fonts, got %v", fonts)
	}
}
