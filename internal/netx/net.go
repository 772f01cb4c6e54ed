// Package netx contains small HTTP transport helpers shared by the client.
package netx

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// MultipartBody builds a multipart/form-data request body with the given
// string fields and a single file part. It returns the encoded body and the
// Content-Type header value (including the boundary).
func MultipartBody(fields map[string]string, fileField, fileName string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
