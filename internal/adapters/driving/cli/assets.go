package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// saveAssets writes each visualization asset in the outcome to dir as a
// PNG file named after the asset. Assets arrive as base64 data URLs.
func saveAssets(cmd *cobra.Command, outcome *domain.ClusterOutcome, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create asset directory: %w", err)
	}

	for _, name := range domain.AssetNames {
		payload, ok := outcome.Asset(name)
		if !ok {
			continue
		}

		data, err := decodeDataURL(payload)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}

		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		cmd.Printf("Saved %s\n", path)
	}
	return nil
}

// decodeDataURL strips an optional data-URL prefix and decodes the
// base64 body.
func decodeDataURL(s string) ([]byte, error) {
	if idx := strings.Index(s, "base64,"); idx >= 0 {
		s = s[idx+len("base64,"):]
	}
	return base64.StdEncoding.DecodeString(s)
}

// printThemes renders the clustered theme map in display order.
func printThemes(cmd *cobra.Command, outcome *domain.ClusterOutcome) {
	if len(outcome.Themes) == 0 {
		cmd.Println("No themes in result.")
		return
	}

	labels := make([]string, 0, len(outcome.Themes))
	for theme := range outcome.Themes {
		labels = append(labels, theme)
	}
	sort.Strings(labels)

	cmd.Println("Themes:")
	for _, theme := range labels {
		words := outcome.Themes[theme]
		cmd.Printf("  %s (%d)\n", theme, len(words))
		for _, w := range words {
			cmd.Printf("    - %s\n", w)
		}
	}
}
