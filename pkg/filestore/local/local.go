package local

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type store struct {
	root  string
	debug bool
}

func New(root string, debug bool) *store {
	return &store{root: root, debug: debug}
}

func (s *store) Upload(ctx context.Context, path, name string) error {
	dst := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("local: couldn't create folder for %q: %w", dst, err)
	}
	if err := copyFile(path, dst); err != nil {
		return fmt.Errorf("local: couldn't copy file %q to %q: %w", path, dst, err)
	}
	if s.debug {
		log.Println("local: stored", dst)
	}
	return nil
}

func (s *store) URL(ctx context.Context, name string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("local: couldn't resolve %q: %w", name, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	// Keep the permissions of the source file
	srcFileInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcFileInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
