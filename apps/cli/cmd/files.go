package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// TestFileExt is the extension of axotly test files
const TestFileExt = ".ax"

// collectFiles expands files and directories into the .ax files they name.
// Directories are walked recursively in lexical order, so the result is
// stable across runs. A path named twice is kept once.
func collectFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !isTestFile(arg) {
				return nil, fmt.Errorf("%s is not a %s file", arg, TestFileExt)
			}
			add(arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isTestFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}

	return files, nil
}

func isTestFile(path string) bool {
	return filepath.Ext(path) == TestFileExt
}

// watchDirs returns every directory whose changes can affect the run: the
// parents of named files and each directory tree named on the command line.
func watchDirs(args []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(filepath.Clean(arg)))
			continue
		}
		_ = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}
