package autocert

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	// A path to json where it store font name and path to the font file
	FontMetadataPath string
	// FontName selects a font from the metadata, empty uses the embedded Go fonts
	FontName string
	// Directory where the temporary files are stored during processing, the file will be deleted after processing
	TmpDir string
	// VerifyURLPattern is a fmt pattern receiving the certificate number, e.g.
	// "https://example.com/verify/%s". Empty disables certificate numbers and QR codes.
	VerifyURLPattern string
	// Workers bounds parallel rendering during export, zero picks a value from GOMAXPROCS
	Workers int
}

func NewDefaultConfig() *Config {
	cfg := Config{
		FontMetadataPath: "font_metadata.json",
		TmpDir:           filepath.Join(os.TempDir(), "certgen", "tmp"),
	}

	// Create the directories if they do not exist
	// 0755 mean owner can read, write and execute
	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
	}

	return &cfg
}

func (c *Config) tmpDir() string {
	if c == nil || c.TmpDir == "" {
		return os.TempDir()
	}
	return c.TmpDir
}
