package storage

import "strings"

// ResolvePhotoURL turns a stored photo reference into a displayable URL.
// Absolute URLs pass through untouched; transient local-blob markers and
// empty references resolve to no image; anything else is treated as a
// storage path and resolved through the object store. A leading bucket
// prefix left over from older clients is stripped before resolution.
func ResolvePhotoURL(store ObjectStore, ref string) string {
	if ref == "" || strings.Contains(ref, "blob:") {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return store.PublicURL(strings.TrimPrefix(ref, "job-photos/"))
}
