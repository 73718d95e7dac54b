package utils

import (
	"fmt"
	"os"

	"github.com/meshplace/hxa/go/hxa"
)

// RunUpgradeHXA decodes inPath, raises its declared version to target and
// writes the re-encoded file to outPath. A file already at or past target is
// rewritten unchanged.
func RunUpgradeHXA(inPath, outPath string, target uint32) error {
	f, err := hxa.Load(inPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", inPath, err)
	}
	hxa.Upgrade(f, target)
	if err := hxa.Save(f, outPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf("%s written at version %d (%d bytes)\n", outPath, f.Version, fi.Size())
	}
	return nil
}
