// Package export packages a rendered e-card into a downloadable zip:
// the rendered page, the static template assets, and a generated
// vCard contact entry.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
)

// TemplateFile is the raw template source inside the asset directory.
// It is excluded from the archive; the rendered page takes its slot.
const TemplateFile = "index.html"

// templateVCF is the placeholder vcard shipped with the template
// assets, superseded by the generated one.
const templateVCF = "template.vcf"

// SafeName derives an archive/vcard filename from the display name:
// whitespace runs collapse to a single underscore. Other characters
// pass through unchanged.
func SafeName(displayName string) string {
	name := strings.Join(strings.Fields(displayName), "_")
	if name == "" {
		return "ecard"
	}
	return name
}

// VCard builds a minimal vCard 3.0 block for the card, one field per
// line. Missing fields render as empty values, not dropped lines.
func VCard(card *models.Card) string {
	return "BEGIN:VCARD\n" +
		"VERSION:3.0\n" +
		"FN:" + card.DisplayName() + "\n" +
		"TEL:" + card.Phone + "\n" +
		"EMAIL:" + card.Email + "\n" +
		"END:VCARD"
}

// Archive streams the export bundle onto w as it is built. Entries:
// the rendered page under index.html, every asset file under
// templateDir at its relative path, and the generated vcard. The
// writer is finalized before returning; a failure mid-stream leaves w
// truncated and is not recoverable here.
func Archive(w io.Writer, card *models.Card, renderedHTML, templateDir string) error {
	zw := zip.NewWriter(w)

	page, err := zw.Create(TemplateFile)
	if err != nil {
		return fmt.Errorf("failed to create page entry: %w", err)
	}
	if _, err := io.WriteString(page, renderedHTML); err != nil {
		return fmt.Errorf("failed to write page entry: %w", err)
	}

	if err := addAssets(zw, templateDir); err != nil {
		return err
	}

	vcf, err := zw.Create(SafeName(card.DisplayName()) + ".vcf")
	if err != nil {
		return fmt.Errorf("failed to create vcard entry: %w", err)
	}
	if _, err := io.WriteString(vcf, VCard(card)); err != nil {
		return fmt.Errorf("failed to write vcard entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// addAssets walks the template directory and copies every file into
// the archive at its relative path, preserving structure. The raw
// template page and the placeholder vcard are skipped by exact name.
func addAssets(zw *zip.Writer, templateDir string) error {
	return filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk template dir: %w", err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve asset path %s: %w", path, err)
		}
		name := filepath.ToSlash(rel)

		if name == TemplateFile || name == templateVCF {
			return nil
		}

		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create asset entry %s: %w", name, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open asset %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(entry, f); err != nil {
			return fmt.Errorf("failed to copy asset %s: %w", name, err)
		}
		return nil
	})
}
