package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidImage = errors.New("image must be a base64 encoded png, jpeg, gif or webp")

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DecodeImage decodes a "data:image/<type>;base64,<data>" URL (or bare base64) and
// returns the bytes with a file extension. The content must sniff as an image.
func DecodeImage(payload string) ([]byte, string, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, "", ErrEmptyPayload
	}

	mimeType, encoded := splitDataURL(trimmed)
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyPayload
	}

	sniffed := http.DetectContentType(data)
	ext, ok := imageExtensions[sniffed]
	if !ok {
		return nil, "", ErrInvalidImage
	}
	if mimeType != "" {
		if _, declared := imageExtensions[mimeType]; !declared {
			return nil, "", ErrInvalidImage
		}
	}
	return data, ext, nil
}

func splitDataURL(value string) (string, string) {
	if !strings.HasPrefix(value, "data:") {
		return "", value
	}
	header, data, found := strings.Cut(value, ",")
	if !found {
		return "", ""
	}
	mimeType := strings.TrimPrefix(header, "data:")
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType)), data
}
