package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^\w\s\p{Han}-]`)
var whitespace = regexp.MustCompile(`\s+`)

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SanitizeTitle turns an arbitrary video title into a safe file stem.
func SanitizeTitle(title string) string {
	clean := unsafeChars.ReplaceAllString(title, "")
	clean = whitespace.ReplaceAllString(strings.TrimSpace(clean), "_")
	if clean == "" {
		clean = "untitled"
	}
	return clean
}

// CopyFile copies src to dst, creating parent directories as needed.
// Existing destinations are left untouched so reprocessing an input never
// duplicates work.
func CopyFile(src, dst string) error {
	if Exists(dst) {
		return nil
	}
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

// ReadBatchList reads a batch input file: one input per line, blank lines
// and lines starting with '#' skipped.
func ReadBatchList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file %s: %w", path, err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file %s: %w", path, err)
	}
	return inputs, nil
}

// ReadTextFile reads a whole file and trims surrounding whitespace.
func ReadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

// WriteTextFile writes content to path, creating parent directories.
func WriteTextFile(path string, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
