package blobsvc

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"github.com/festify/console/core"
)

const firebaseHost = "firebasestorage.googleapis.com"

// decodePayload accepts a data URL (data:image/png;base64,...) or raw base64 and returns the bytes and their content type.
func decodePayload(payload string) ([]byte, string, error) {
	if strings.HasPrefix(payload, "data:") {
		du, err := dataurl.DecodeString(payload)
		if err != nil {
			return nil, "", errors.Wrap(core.ErrInvalidImage, err.Error())
		}
		if du.Encoding != dataurl.EncodingBase64 {
			return nil, "", errors.Wrap(core.ErrInvalidImage, "data url is not base64")
		}
		if len(du.Data) == 0 {
			return nil, "", errors.Wrap(core.ErrInvalidImage, "empty image")
		}
		return du.Data, du.ContentType(), nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Wrap(core.ErrInvalidImage, err.Error())
	}
	if len(data) == 0 {
		return nil, "", errors.Wrap(core.ErrInvalidImage, "empty image")
	}
	return data, http.DetectContentType(data), nil
}

// downloadURL is the Firebase download URL of an object carrying a download token.
func downloadURL(bucket, name, token string) string {
	return fmt.Sprintf("https://%s/v0/b/%s/o/%s?alt=media&token=%s",
		firebaseHost, bucket, url.PathEscape(name), url.QueryEscape(token))
}

// objectName extracts the object name from a Firebase download URL or a storage.googleapis.com URL of bucket.
func objectName(bucket, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	switch u.Host {
	case firebaseHost:
		prefix := "/v0/b/" + bucket + "/o/"
		p := u.EscapedPath()
		if !strings.HasPrefix(p, prefix) {
			return "", false
		}
		name, err := url.PathUnescape(p[len(prefix):])
		if err != nil || name == "" {
			return "", false
		}
		return name, true
	case "storage.googleapis.com":
		prefix := "/" + bucket + "/"
		if !strings.HasPrefix(u.Path, prefix) || len(u.Path) == len(prefix) {
			return "", false
		}
		return u.Path[len(prefix):], true
	}
	return "", false
}
