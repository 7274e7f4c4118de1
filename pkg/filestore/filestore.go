// Package filestore uploads exported files to a local folder or a s3
// bucket.
package filestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/igolaizola/songgen/pkg/filestore/local"
	"github.com/igolaizola/songgen/pkg/filestore/s3"
)

type fs interface {
	Upload(ctx context.Context, path, name string) error
	URL(ctx context.Context, name string) (string, error)
}

type Store struct {
	fs fs
}

// Upload stores the file at path under the given name.
func (s *Store) Upload(ctx context.Context, path, name string) error {
	return s.fs.Upload(ctx, path, name)
}

// URL returns where a stored file can be read from.
func (s *Store) URL(ctx context.Context, name string) (string, error) {
	return s.fs.URL(ctx, name)
}

// New creates a store. Conn is a folder for local and
// key:secret@bucket.region for s3 (empty key and secret use the instance
// role).
func New(ctx context.Context, typ, conn string, debug bool) (*Store, error) {
	var fs fs
	switch typ {
	case "s3":
		key, secret, bucket, region, err := parseS3(conn)
		if err != nil {
			return nil, err
		}
		candidate, err := s3.New(ctx, key, secret, region, bucket, debug)
		if err != nil {
			return nil, fmt.Errorf("filestore: %w", err)
		}
		fs = candidate
	case "local", "":
		if conn == "" {
			conn = "."
		}
		fs = local.New(conn, debug)
	default:
		return nil, fmt.Errorf("filestore: unknown file storage type %q", typ)
	}
	return &Store{fs: fs}, nil
}

func parseS3(conn string) (key, secret, bucket, region string, err error) {
	split := strings.Split(conn, "@")
	if len(split) != 2 {
		return "", "", "", "", fmt.Errorf("filestore: invalid s3 connection string %q", conn)
	}
	auth := strings.Split(split[0], ":")
	if len(auth) != 2 {
		return "", "", "", "", fmt.Errorf("filestore: invalid s3 auth string %q", split[0])
	}
	loc := strings.Split(split[1], ".")
	if len(loc) != 2 || loc[0] == "" || loc[1] == "" {
		return "", "", "", "", fmt.Errorf("filestore: invalid s3 location string %q", split[1])
	}
	return auth[0], auth[1], loc[0], loc[1], nil
}
