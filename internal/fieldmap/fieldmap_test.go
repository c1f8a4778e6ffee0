package fieldmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/internal/fieldmap"
)

func TestStringAliases(t *testing.T) {
	obj := fieldmap.Decode([]byte(`{"_id":"u1","email":"a@b.com"}`))
	require.NotNil(t, obj)

	require.Equal(t, "u1", fieldmap.String(obj, "id", "_id", "user_id"))
	require.Equal(t, "a@b.com", fieldmap.String(obj, "email"))
	require.Empty(t, fieldmap.String(obj, "username"))
}

func TestStringSkipsNonStrings(t *testing.T) {
	obj := fieldmap.Decode([]byte(`{"id":42,"user_id":"u9"}`))
	require.Equal(t, "u9", fieldmap.String(obj, "id", "user_id"))
}

func TestFloatAliases(t *testing.T) {
	obj := fieldmap.Decode([]byte(`{"height_cm":180.5}`))

	f, ok := fieldmap.Float(obj, "height", "height_cm")
	require.True(t, ok)
	require.Equal(t, 180.5, f)

	_, ok = fieldmap.Float(obj, "weight", "weight_kg")
	require.False(t, ok)
}

func TestObjectAndStrings(t *testing.T) {
	obj := fieldmap.Decode([]byte(`{"user":{"_id":"u1"},"participants":["a","b",3]}`))

	user := fieldmap.Object(obj, "user", "data")
	require.NotNil(t, user)
	require.Equal(t, "u1", fieldmap.String(user, "_id"))

	require.Equal(t, []string{"a", "b"}, fieldmap.Strings(obj, "participants"))
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	require.Nil(t, fieldmap.Decode([]byte(`[1,2,3]`)))
	require.Nil(t, fieldmap.Decode([]byte(`not json`)))
	require.Nil(t, fieldmap.Decode(nil))
}

func TestStatusEnvelope(t *testing.T) {
	ok, msg := fieldmap.Status([]byte(`{"status":"success","matches":[]}`))
	require.True(t, ok)
	require.Empty(t, msg)

	ok, msg = fieldmap.Status([]byte(`{"status":"error","message":"Match not found"}`))
	require.False(t, ok)
	require.Equal(t, "Match not found", msg)

	// Responses without the envelope pass through untouched.
	ok, _ = fieldmap.Status([]byte(`{"bmi":22.5}`))
	require.True(t, ok)
}
