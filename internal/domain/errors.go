package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetchFailed indicates a page could not be obtained from the collection
	// endpoint: network failure, non-2xx status or an undecodable body
	ErrFetchFailed = errors.New("collection fetch failed")

	// ErrUnknownCollection indicates a collection name outside posts/products
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrSnapshotMissing indicates no statically generated first page exists
	ErrSnapshotMissing = errors.New("no snapshot for collection")
)
