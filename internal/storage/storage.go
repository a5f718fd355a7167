// Package storage uploads image bytes to the public images bucket and
// removes them again.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// CacheControl is applied to every uploaded object.
const CacheControl = "max-age=3600"

// ErrObjectExists is returned by Put when the key is already taken.
var ErrObjectExists = errors.New("object already exists")

// ObjectStore is the subset of object storage the upload pipeline needs.
// Put never overwrites an existing key.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	PublicURL(key string) string
}

// PathFromURL returns the last two "/"-separated segments of a public
// object URL, e.g. "images/1700000000000-abc-0.png".
func PathFromURL(u string) string {
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return u
	}
	return strings.Join(parts[len(parts)-2:], "/")
}

// objectKey strips a leading "<bucket>/" so a path derived by PathFromURL
// resolves to the key inside the bucket.
func objectKey(bucket, path string) string {
	return strings.TrimPrefix(strings.TrimPrefix(path, "/"), bucket+"/")
}

func publicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}
