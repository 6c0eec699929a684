package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SetKeyInFile updates or adds key in section ("" for global) of the config
// file at path, preserving every other line. An existing key is replaced in
// place. A new global key goes before the first section header, a new section
// key goes at the end of its section, and a missing section is appended.
//
// The file is replaced atomically, so readers never see a partial write.
func SetKeyInFile(path, section, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	newLine := key
	if value != "" {
		newLine = key + " " + value
	}

	lines = setKey(lines, section, key, newLine)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return atomicWriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func setKey(lines []string, section, key, newLine string) []string {
	var (
		current     string
		inTarget    = section == ""
		seenTarget  = section == ""
		insertIndex = -1
	)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if inTarget && insertIndex < 0 {
				insertIndex = trimTrailingBlank(lines, i)
			}
			current = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			inTarget = current == section && section != ""
			if inTarget {
				seenTarget = true
			}
			continue
		}

		if !inTarget || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = newLine
			return lines
		}
	}

	switch {
	case inTarget && insertIndex < 0:
		// the target is the last section, or global with no sections
		return append(lines, newLine)
	case insertIndex >= 0:
		return insertAt(lines, insertIndex, newLine)
	case !seenTarget:
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		return append(lines, "["+section+"]", newLine)
	}
	return append(lines, newLine)
}

// trimTrailingBlank returns the index just past the last non-blank line
// before i, so inserted keys sit with their section rather than after the
// blank line separating it from the next header.
func trimTrailingBlank(lines []string, i int) int {
	for i > 0 && strings.TrimSpace(lines[i-1]) == "" {
		i--
	}
	return i
}

func insertAt(lines []string, i int, line string) []string {
	lines = append(lines, "")
	copy(lines[i+1:], lines[i:])
	lines[i] = line
	return lines
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
