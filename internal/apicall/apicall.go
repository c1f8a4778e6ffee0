// Package apicall is the shared request/decode step for feature clients:
// dispatch, check the backend's status envelope, unmarshal.
package apicall

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pitchside/pitchside-go/internal/fieldmap"
	"github.com/pitchside/pitchside-go/transport"
)

// JSON dispatches req and decodes the answer into T. A 2xx body whose
// envelope reads {"status":"error"} is surfaced as a rejection, since
// the backend frequently reports business failures that way.
func JSON[T any](ctx context.Context, d *transport.Dispatcher, req transport.Request) (T, error) {
	var out T

	raw, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if ok, msg := fieldmap.Status(raw); !ok {
		return out, &transport.RejectedError{Status: http.StatusOK, Message: msg}
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Wrapf(err, "[apicall] decode %s %s", req.Method, req.Path)
	}
	return out, nil
}

// Raw dispatches req, applies the envelope check, and hands back the
// undecoded body for callers with dynamic response shapes.
func Raw(ctx context.Context, d *transport.Dispatcher, req transport.Request) (json.RawMessage, error) {
	raw, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if ok, msg := fieldmap.Status(raw); !ok {
		return nil, &transport.RejectedError{Status: http.StatusOK, Message: msg}
	}
	return raw, nil
}
