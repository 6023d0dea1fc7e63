package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FileExists returns if the given path exists.
func FileExists(filePath string) (bool, fs.FileInfo) {
	stat, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	return true, stat
}

// IsDir returns if the given file is a directory.
func IsDir(fileInfo fs.FileInfo) bool {
	return fileInfo.Mode()&fs.ModeDir != 0
}

// IsWritable checks if the directory at the given path is writable.
// Important: This function uses the unix package, which only works on unix systems.
func IsWritable(path string) (bool, error) {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return false, err
	}
	return true, nil
}

// IsDirAndWritable checks if the file is a directory and is writable.
func IsDirAndWritable(filePath string, fileInfo fs.FileInfo) (bool, error) {
	if dir := IsDir(fileInfo); !dir {
		return false, fmt.Errorf("given file path is not a directory: %s", filePath)
	}
	_, err := IsWritable(filePath)
	if err != nil {
		return false, fmt.Errorf("given file path is not writable: %v", err)
	}
	return true, nil
}

// CopyFile copies the file from the source path to the destination path.
func CopyFile(srcPath string, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			fmt.Printf("failed to close destination file: %v", err)
		}
	}()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

// CopyDir copies the whole directory tree from the source path into the
// destination path. Existing files at the destination are overwritten.
func CopyDir(srcPath string, destPath string) error {
	return filepath.WalkDir(srcPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(srcPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destPath, relPath)
		if entry.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}
		if !entry.Type().IsRegular() {
			// sockets, devices and symlink targets outside the tree have no
			// place in a build context
			return nil
		}
		return CopyFile(path, target)
	})
}
