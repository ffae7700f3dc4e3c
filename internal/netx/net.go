// Package netx moves bytes to and from presigned object storage URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const errorBodyLimit = 4 << 10

// PutPresigned uploads body to a presigned PUT URL. headers must contain
// every header the URL was signed with. size is sent as Content-Length
// when non-negative.
func PutPresigned(ctx context.Context, hc *http.Client, url string, headers map[string]string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := client(hc).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError("upload", resp)
	}
	return nil
}

// GetPresigned streams the object behind a presigned GET URL into w and
// returns the number of bytes written.
func GetPresigned(ctx context.Context, hc *http.Client, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client(hc).Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return 0, statusError("download", resp)
	}
	return io.Copy(w, resp.Body)
}

func client(hc *http.Client) *http.Client {
	if hc == nil {
		return http.DefaultClient
	}
	return hc
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return fmt.Errorf("%s failed: %s; body: %s", op, resp.Status, string(b))
}
