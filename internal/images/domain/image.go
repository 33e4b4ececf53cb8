package domain

import "strconv"

// ImagesPath is the URL prefix under which stored images are listed and served.
const ImagesPath = "/images"

// StoredImage describes one uploaded image on disk.
type StoredImage struct {
	Filename string `json:"filename"`
	Path     string `json:"-"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// StoredName builds the on-disk name for an upload: "<stamp>_<original>".
func StoredName(stamp int64, original string) string {
	return strconv.FormatInt(stamp, 10) + "_" + original
}

// ImageURL returns the static-serve URL of filename relative to baseURL.
func ImageURL(baseURL, filename string) string {
	return baseURL + ImagesPath + "/" + filename
}
