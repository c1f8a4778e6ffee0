package transport

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// encodeMultipart streams parts as a multipart/form-data body and
// returns the reader with the generated boundary. Callers never set
// their own boundary; the content type is derived from the returned
// value. Part payloads are piped out as the request body is read, so
// a large video attachment never sits fully in memory; a failing part
// reader aborts the request through the pipe's error.
func encodeMultipart(parts []Part) (io.Reader, string, error) {
	for _, part := range parts {
		if part.Field == "" {
			return nil, "", errors.New("[encodeMultipart] part field name is required")
		}
		if part.Reader != nil && part.Filename == "" {
			return nil, "", errors.Errorf("[encodeMultipart] attachment %q needs a filename", part.Field)
		}
	}

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(w, parts))
	}()
	return pr, w.Boundary(), nil
}

func writeParts(w *multipart.Writer, parts []Part) error {
	for _, part := range parts {
		if part.Reader == nil {
			if err := w.WriteField(part.Field, part.Value); err != nil {
				return errors.Wrapf(err, "[encodeMultipart] field %q", part.Field)
			}
			continue
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.Field), quoteEscaper.Replace(part.Filename)))
		mime := part.MIME
		if mime == "" {
			mime = "application/octet-stream"
		}
		header.Set("Content-Type", mime)

		dst, err := w.CreatePart(header)
		if err != nil {
			return errors.Wrapf(err, "[encodeMultipart] attachment %q", part.Field)
		}
		if _, err := io.Copy(dst, part.Reader); err != nil {
			return errors.Wrapf(err, "[encodeMultipart] copy %q", part.Field)
		}
	}

	return errors.Wrap(w.Close(), "[encodeMultipart] close writer")
}
