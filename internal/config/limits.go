package config

const (
	// MaxFileNameLength is the maximum length for uploaded file names.
	MaxFileNameLength = 255

	// MaxDriveNameLength is the maximum length for local drive display names.
	// Drive names end up in the sidebar, so they are kept short.
	MaxDriveNameLength = 64

	// MaxRepoURLLength bounds the clone URL accepted from the GitHub dialog.
	MaxRepoURLLength = 2048

	// MaxCommitMessageLength is the maximum length for simulated push messages.
	MaxCommitMessageLength = 500

	// MaxReadmeDescriptionLength bounds the free-text description sent to
	// the README generator.
	MaxReadmeDescriptionLength = 4000

	// MaxContentLength bounds saved file content (opaque payloads, including
	// data-URI images). httputil.MaxBodyBytes leaves room for it in a JSON body.
	MaxContentLength = 10 << 20
)
