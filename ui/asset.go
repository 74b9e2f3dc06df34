package ui

import (
	stderrors "errors"
	"io/fs"
	"net/http"
	"os"

	"perfdash/internal/errors"
)

// Asset is a static file read once at startup
type Asset struct {
	Path        string
	ContentType string
	Data        []byte
}

// LoadAsset reads the file at path. A missing or empty file is ASSET_MISSING.
func LoadAsset(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.AssetMissing(path)
		}
		return nil, errors.Wrapf(err, "failed to read asset %s", path)
	}
	if len(data) == 0 {
		return nil, errors.AssetMissing(path)
	}

	return &Asset{
		Path:        path,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
