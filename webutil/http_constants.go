package webutil

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"

	ContentTypeJSONUTF8      = "application/json; charset=utf-8"
	ContentTypeHTMLUTF8      = "text/html; charset=utf-8"
	ContentTypeTextPlainUTF8 = "text/plain; charset=utf-8"

	// CacheControlNoStore marks responses built from one-shot board snapshots.
	CacheControlNoStore = "no-store"
)
