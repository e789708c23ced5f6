package storage

import (
	"context"
)

// URLSigner issues time-limited URLs for a single object key
type URLSigner interface {
	// SignedDownloadURL returns a URL permitting GET on key
	SignedDownloadURL(ctx context.Context, key string) (string, error)
	// SignedUploadURL returns a URL permitting PUT on key
	SignedUploadURL(ctx context.Context, key string) (string, error)
}

// Ensure the implementations satisfy URLSigner
var (
	_ URLSigner = (*S3Signer)(nil)
	_ URLSigner = (*CachedSigner)(nil)
)
