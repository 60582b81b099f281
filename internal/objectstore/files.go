// ABOUTME: Filesystem-backed object stores and the shared copy helper
// ABOUTME: Local maps buckets to directories; Files treats keys as plain paths
package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects under Root/<bucket>/<key>
type Local struct {
	Root string
}

// NewLocal creates a directory-backed store rooted at root
func NewLocal(root string) *Local {
	return &Local{Root: root}
}

// Fetch copies an object to localPath
func (l *Local) Fetch(ctx context.Context, bucket, key, localPath string) error {
	src, err := l.objectPath(bucket, key)
	if err != nil {
		return err
	}
	return copyFile(ctx, src, localPath)
}

// Put copies localPath into the store
func (l *Local) Put(ctx context.Context, localPath, bucket, key string) error {
	dst, err := l.objectPath(bucket, key)
	if err != nil {
		return err
	}
	return copyFile(ctx, localPath, dst)
}

// objectPath resolves bucket/key under Root, refusing keys that escape the bucket
func (l *Local) objectPath(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key must be set")
	}
	bucketDir := filepath.Join(l.Root, bucket)
	p := filepath.Join(bucketDir, key)
	if p != bucketDir && !strings.HasPrefix(p, bucketDir+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes bucket %q", key, bucket)
	}
	return p, nil
}

// Files ignores buckets and treats keys as filesystem paths
type Files struct{}

// Fetch copies key to localPath
func (Files) Fetch(ctx context.Context, _, key, localPath string) error {
	return copyFile(ctx, key, localPath)
}

// Put copies localPath to key
func (Files) Put(ctx context.Context, localPath, _, key string) error {
	return copyFile(ctx, localPath, key)
}

func copyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
