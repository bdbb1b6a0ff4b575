package autocert

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// DefaultFontName is the embedded Go font family used when no custom font is configured.
const DefaultFontName = "Go"

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

type Font struct {
	Name   string
	Size   float64
	Color  string
	Weight FontWeight
}

// Get font weight of canvas type
func (f *Font) GetFontStyle() canvas.FontStyle {
	switch f.Weight {
	case FontWeightBold:
		return canvas.FontBold
	default:
		return canvas.FontRegular
	}
}

type FontMetadata struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	return &FontMetadata{
		Name: name,
		Path: fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// List the available font family and its path
func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("error unmarshalling font metadata: %w", err)
	}

	return fonts, nil
}

type FontLoader struct {
	Cfg            *Config
	AvailableFonts []*FontMetadata
}

// NewFontLoader reads the font metadata file when one is configured. A missing file only
// leaves the embedded Go fonts available.
func NewFontLoader(cfg *Config) *FontLoader {
	fl := &FontLoader{Cfg: cfg}
	if cfg == nil || cfg.FontMetadataPath == "" {
		return fl
	}

	fonts, err := GetAvailableFonts(cfg.FontMetadataPath)
	if err != nil {
		log.Printf("font metadata not loaded, using embedded fonts: %v", err)
		return fl
	}
	fl.AvailableFonts = fonts
	return fl
}

func (fl *FontLoader) GetAvailableFontMetadataByName(fontName string) (*FontMetadata, error) {
	for _, font := range fl.AvailableFonts {
		if font.Name == fontName {
			return font, nil
		}
	}
	return nil, fmt.Errorf("font %s not found", fontName)
}

// LoadFont loads a font family with regular and bold faces. The embedded Go fonts are
// used for DefaultFontName, an empty name or a name missing from the metadata.
func (fl *FontLoader) LoadFont(fontName string) (*canvas.FontFamily, error) {
	if fontName != "" && fontName != DefaultFontName {
		fontMetadata, err := fl.GetAvailableFontMetadataByName(fontName)
		if err == nil {
			fontFamily := canvas.NewFontFamily(fontMetadata.Name)
			if err := fontFamily.LoadFontFile(fontMetadata.Path, canvas.FontRegular); err != nil {
				return nil, fmt.Errorf("%w: failed to load font file: %v", ErrExternalTool, err)
			}
			// Custom fonts ship a single file which backs both styles.
			if err := fontFamily.LoadFontFile(fontMetadata.Path, canvas.FontBold); err != nil {
				return nil, fmt.Errorf("%w: failed to load font file: %v", ErrExternalTool, err)
			}
			return fontFamily, nil
		}
		log.Printf("font %q not available, using embedded fonts", fontName)
	}

	fontFamily := canvas.NewFontFamily(DefaultFontName)
	if err := fontFamily.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: failed to load embedded font: %v", ErrExternalTool, err)
	}
	if err := fontFamily.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("%w: failed to load embedded font: %v", ErrExternalTool, err)
	}
	return fontFamily, nil
}
