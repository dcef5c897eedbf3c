package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Store keeps uploaded objects under bucket/key.
type Store interface {
	Put(ctx context.Context, bucket, key string, r io.Reader) (int64, error)
	Remove(ctx context.Context, bucket, key string) error
	URL(bucket, key string) string
}

// Disk stores objects as files below Root. Files are served by the HTTP
// layer from Root at BaseURL.
type Disk struct {
	Root    string
	BaseURL string
}

func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage dir %s", root)
	}
	return &Disk{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Disk) Put(ctx context.Context, bucket, key string, r io.Reader) (int64, error) {
	p, err := d.path(bucket, key)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return 0, errors.Wrap(err, "mkdir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return 0, errors.Wrap(err, "create temp")
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "write %s/%s", bucket, key)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, errors.Wrap(err, "rename")
	}
	log.Printf("[storage] stored %s/%s (%d bytes)", bucket, key, n)
	return n, nil
}

// Remove deletes the object; a missing object is not an error.
func (d *Disk) Remove(_ context.Context, bucket, key string) error {
	p, err := d.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s/%s", bucket, key)
	}
	return nil
}

func (d *Disk) URL(bucket, key string) string {
	return d.BaseURL + "/" + path.Join(bucket, key)
}

func (d *Disk) path(bucket, key string) (string, error) {
	if err := checkSegment(bucket); err != nil {
		return "", err
	}
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(d.Root, bucket, filepath.FromSlash(key)), nil
}

func checkSegment(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("invalid bucket %q", s)
	}
	return nil
}
