package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
)

const timestampLayout = "20060102150405"

// maxNameAttempts bounds the -N suffixes tried when a report name is already taken.
const maxNameAttempts = 100

// reportBaseName builds "<account>_<timestamp>", prefixed with "<reportName>_" when set.
func reportBaseName(run *entity.CollectionRun, reportName string) string {
	base := fmt.Sprintf("%s_%s", run.AccountID, run.Timestamp.Format(timestampLayout))
	if reportName != "" {
		base = reportName + "_" + base
	}
	return base
}

// writeReport stores data under a fresh name in dir. The content is written to a temporary
// file first and linked into place only when complete, so a failure never leaves a partial
// report and an existing report is never overwritten.
func writeReport(run *entity.CollectionRun, reportName, dir, ext string, data []byte) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return "", fmt.Errorf("error creating temporary report file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error flushing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("error closing report: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("error setting report permissions: %w", err)
	}

	base := reportBaseName(run, reportName)
	for i := 0; i < maxNameAttempts; i++ {
		name := fmt.Sprintf("%s.%s", base, ext)
		if i > 0 {
			name = fmt.Sprintf("%s-%d.%s", base, i, ext)
		}
		target := filepath.Join(dir, name)

		err := placeFile(tmpName, target)
		if err == nil {
			return filepath.Abs(target)
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("error moving report into place: %w", err)
		}
	}
	return "", fmt.Errorf("no free report name for %s.%s in %s", base, ext, dir)
}

// placeFile publishes src at target without replacing an existing file. Hard links give an
// atomic no-clobber; filesystems without link support fall back to a checked rename.
func placeFile(src, target string) error {
	err := os.Link(src, target)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return err
	}
	if _, statErr := os.Stat(target); statErr == nil {
		return fs.ErrExist
	}
	return os.Rename(src, target)
}
