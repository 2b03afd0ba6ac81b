package config

const (
	// MaxProjectNameLength is the maximum length for project names after
	// trimming and sanitization. Kept short for reasonable UX.
	MaxProjectNameLength = 100

	// MaxFolderNameLength is the maximum length for folder names after
	// sanitization. 100 succeeds, 101 fails.
	MaxFolderNameLength = 100

	// MaxDocumentTitleLength is the maximum length for document base titles.
	MaxDocumentTitleLength = 255

	// MaxPersonaNameLength is the maximum length for persona names.
	MaxPersonaNameLength = 100

	// MaxSnippetNameLength is the maximum length for snippet names.
	MaxSnippetNameLength = 100

	// MaxPersonaPhotoBytes caps decoded persona photos at 2MiB. Larger
	// images bloat the local blob and eat the quota for no UX benefit.
	MaxPersonaPhotoBytes = 2 << 20

	// DefaultLocalStoreQuota mirrors the ~5MB capacity of browser
	// localStorage so the local cache degrades the same way the web
	// client did.
	DefaultLocalStoreQuota = 5 << 20

	// QuotaWarnThreshold is the usage fraction above which the local
	// store starts logging capacity warnings before writes actually fail.
	QuotaWarnThreshold = 0.9
)
