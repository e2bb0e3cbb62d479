// Package blob stores generated artifacts such as CSV exports in S3 or
// on the local filesystem and serves them by URL.
//
// The Storage interface is intentionally small: catalog workers write
// whole artifacts once and hand back a download URL. Use NewS3Storage
// in production and NewLocalStorage in development:
//
//	storage, err := blob.NewS3Storage(ctx, blob.S3Config{
//		Bucket: "exports",
//		Region: "us-east-1",
//	})
//	url, err := storage.Upload(ctx, "exports/acme/products.csv", "text/csv", buf)
package blob
