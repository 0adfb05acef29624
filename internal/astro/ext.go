package astro

import "strings"

const rawExtension = "fits"

var processedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"tif":  {},
	"tiff": {},
}

// IsRawExtension reports whether ext names a raw sensor file.
func IsRawExtension(ext string) bool {
	return ext == rawExtension
}

// IsProcessedExtension reports whether ext belongs to a rendered output format.
func IsProcessedExtension(ext string) bool {
	_, ok := processedExtensions[ext]
	return ok
}

// IsJpegFamily reports whether ext is jpg or jpeg.
func IsJpegFamily(ext string) bool {
	return strings.HasPrefix(ext, "jp")
}

// IsTiffFamily reports whether ext is tif or tiff.
func IsTiffFamily(ext string) bool {
	return strings.HasPrefix(ext, "tif")
}

// HasOutputMarker reports whether a file name carries the processed output marker.
func HasOutputMarker(name string) bool {
	return strings.Contains(name, outputMarker)
}
