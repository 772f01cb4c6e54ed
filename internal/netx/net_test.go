package netx

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipartBody_RoundTrip(t *testing.T) {
	body, contentType, err := MultipartBody(
		map[string]string{"product_id": "42", "is_main": "true"},
		"images", "front.jpg", []byte{0xff, 0xd8, 0xff},
	)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body.Bytes()), params["boundary"])
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)

	require.Equal(t, "42", form.Value["product_id"][0])
	require.Equal(t, "true", form.Value["is_main"][0])

	require.Len(t, form.File["images"], 1)
	fh := form.File["images"][0]
	require.Equal(t, "front.jpg", fh.Filename)
	f, err := fh.Open()
	require.NoError(t, err)
	defer f.Close()
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, got)
}
