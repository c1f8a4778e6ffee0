package transport

import (
	"io"
	"net/url"
)

// Request describes one outbound HTTP call. Requests are ephemeral
// values; nothing in them is persisted.
type Request struct {
	Method string
	Path   string

	// Body is JSON-encoded when non-nil, unless Parts is set.
	Body any

	// Query is appended to the request URL.
	Query url.Values

	// Parts switches the request to multipart/form-data. The
	// dispatcher generates the boundary and content type itself.
	Parts []Part

	// Upload marks a long body transfer. The dispatcher runs it on its
	// upload client, whose timeout accommodates video-sized payloads.
	Upload bool

	// RequiresAuth attaches the current bearer token when one exists.
	// A missing token does not block the call; optionally-authenticated
	// endpoints are the backend's business, and it answers 401 when it
	// actually requires one.
	RequiresAuth bool
}

// Part is one field of a multipart payload: either a plain text value
// or a binary attachment with filename and content type.
type Part struct {
	Field    string
	Value    string
	Filename string
	MIME     string
	Reader   io.Reader
}

// TextPart returns a plain form field.
func TextPart(field, value string) Part {
	return Part{Field: field, Value: value}
}

// FilePart returns a binary attachment part.
func FilePart(field, filename, mime string, r io.Reader) Part {
	return Part{Field: field, Filename: filename, MIME: mime, Reader: r}
}
