package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := New(ctx, "local", root, false)
	if err != nil {
		t.Fatalf("New() err = %v; want nil", err)
	}

	src := filepath.Join(t.TempDir(), "songs.csv")
	if err := os.WriteFile(src, []byte("index,title\n1,Hollow Skies\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := store.Upload(ctx, src, "exports/songs.csv"); err != nil {
		t.Fatalf("Upload() err = %v; want nil", err)
	}
	b, err := os.ReadFile(filepath.Join(root, "exports", "songs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "index,title\n1,Hollow Skies\n" {
		t.Fatalf("stored file = %q", b)
	}
	u, err := store.URL(ctx, "exports/songs.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "exports/songs.csv") {
		t.Fatalf("URL() = %q", u)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		typ, conn string
	}{
		{"ftp", "somewhere"},
		{"s3", "bucket.region"},
		{"s3", "key@bucket.region"},
		{"s3", "key:secret@bucket"},
		{"s3", "key:secret@.region"},
	}
	for _, tt := range tests {
		if _, err := New(context.Background(), tt.typ, tt.conn, false); err == nil {
			t.Errorf("New(%q, %q) err = nil; want error", tt.typ, tt.conn)
		}
	}
}

func TestParseS3(t *testing.T) {
	key, secret, bucket, region, err := parseS3("AK:SK@songs.eu-west-1")
	if err != nil {
		t.Fatal(err)
	}
	if key != "AK" || secret != "SK" || bucket != "songs" || region != "eu-west-1" {
		t.Fatalf("parseS3() = %q %q %q %q", key, secret, bucket, region)
	}
	if _, _, _, _, err := parseS3(":@songs.us-east-1"); err != nil {
		t.Fatalf("parseS3() with empty credentials err = %v; want nil", err)
	}
}
