package rest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// UploadResult makes the outcome of the best-effort image upload explicit.
// The caller, not the upload step, decides whether to proceed without an
// image.
type UploadResult struct {
	URL    string
	Reason error
}

func Uploaded(url string) UploadResult {
	return UploadResult{URL: url}
}

func Failed(reason error) UploadResult {
	return UploadResult{Reason: reason}
}

func (r UploadResult) OK() bool {
	return r.Reason == nil
}

// UploadImage sends the image as a standalone multipart request and reports
// Uploaded(url) or Failed(reason). It never aborts the surrounding flow
// itself; failures are for the caller to judge.
func (c *Client) UploadImage(ctx context.Context, token, filename string, image io.Reader) UploadResult {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return Failed(errors.Wrap(err, "failed to build multipart form"))
	}
	if _, err := io.Copy(part, image); err != nil {
		return Failed(errors.Wrap(err, "failed to read image"))
	}
	if err := form.Close(); err != nil {
		return Failed(errors.Wrap(err, "failed to finalize multipart form"))
	}

	raw, err := c.do(ctx, http.MethodPost, c.endpoint("core/upload-image", nil), form.FormDataContentType(), token, &buf)
	if err != nil {
		return Failed(err)
	}

	imageURL := gjson.GetBytes(raw, "image_url")
	if !imageURL.Exists() {
		return Failed(errors.New("upload response carried no image_url"))
	}
	return Uploaded(imageURL.String())
}
