// =============================================================================
// Game Ledger - Flat File Utility
// =============================================================================
//
// This module provides the line-oriented file access used by every store:
//   - Reading a file as a slice of lines
//   - Rewriting a file from a slice of lines (overwrite semantics)
//   - Archiving a processed transaction log
//
// The ledger operations own all record semantics; this package never
// interprets line contents.
//
// =============================================================================

package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadLines reads every line of the file at path, without trailing newlines.
//
// PARAMETERS:
//   - path: The file to read.
//
// RETURNS:
//   - The lines of the file in order. A missing final newline does not drop
//     the last line.
//   - An error if the file cannot be opened or read.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return lines, nil
}

// WriteLines rewrites the file at path with the given lines, one per line,
// replacing any previous contents.
func WriteLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// Archive moves the file at path into archiveDir, creating the directory if
// needed. If a file with the same name already exists in the archive, the
// moved file gets a uuid suffix instead of overwriting it.
//
// RETURNS:
//   - The path of the archived file.
//   - An error if the move fails.
func Archive(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(archiveDir, filepath.Base(path))
	if Exists(archivePath) {
		archivePath = uniqueName(archivePath)
	}

	if err := os.Rename(path, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// uniqueName inserts a uuid between the base name and the extension.
func uniqueName(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String(), ext)
}

// copyFile copies src to dst, preserving contents only.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}
