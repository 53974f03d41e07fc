package openapi

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source supplies raw OpenAPI document bytes from a named location.
type Source interface {
	Location() string
	Read(ctx context.Context) ([]byte, error)
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", s.path, err)
	}
	return data, nil
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", s.name, err)
	}
	return data, nil
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string {
	return s.name
}

func (s bytesSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}

// SourceFromBytes wraps an in-memory document.
func SourceFromBytes(name string, data []byte) Source {
	if name == "" {
		name = "document"
	}
	return bytesSource{name: name, data: data}
}
