// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"time"
)

// BlobLocator records where a blob lives: the object store (bucket) and the
// key within it. Kept structured so callers never parse "s3://bucket/key"
// strings back apart.
type BlobLocator struct {
	Store string
	Key   string
}

// String renders the locator in s3://<store>/<key> form for API responses.
func (l BlobLocator) String() string {
	return fmt.Sprintf("s3://%s/%s", l.Store, l.Key)
}

// Image describes server-side metadata for an uploaded image. The bytes
// themselves live in object storage under StorageKey, which is namespaced
// per owner (user_<id>/<file>).
type Image struct {
	ID         string
	OwnerID    int64
	StorageKey string
	Locator    BlobLocator
	UploadedAt time.Time
}
