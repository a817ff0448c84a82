package config

const (
	// MaxResumeUploadBytes is the ceiling for resume PDF uploads, and the
	// largest per-category ceiling in the media registry; the upload
	// handlers use it as the multipart transport cap. Image category
	// ceilings live in the registry's embedded YAML.
	MaxResumeUploadBytes = 10 << 20

	// MaxUploadFilenameLength bounds the sanitized base name of an uploaded
	// file before the timestamp suffix is appended.
	MaxUploadFilenameLength = 100

	// MaxContactNameLength is the maximum length for a contact message sender name.
	MaxContactNameLength = 200

	// MaxContactEmailLength is the maximum length for a contact message email.
	MaxContactEmailLength = 254

	// MaxContactBodyLength is the maximum length for a contact message body.
	MaxContactBodyLength = 10000

	// MaxRequestBodyBytes limits JSON request bodies. Section payloads carry
	// whole entity lists (including inline blog blocks) so this is larger
	// than a typical API would need.
	MaxRequestBodyBytes = 10 << 20
)
