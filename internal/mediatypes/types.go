package mediatypes

import (
	"path/filepath"
	"strings"
)

// MediaType categorizes an imported asset.
type MediaType string

const (
	// TypeVideo represents a video file.
	TypeVideo MediaType = "video"
	// TypeAudio represents an audio file.
	TypeAudio MediaType = "audio"
	// TypePhoto represents a still image file.
	TypePhoto MediaType = "photo"
	// TypeUnsupported represents a file that cannot enter the import pipeline.
	TypeUnsupported MediaType = "unsupported"
)

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
	".wmv":  true,
	".flv":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// AudioExtensions maps file extensions to whether they are supported audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".m4a":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
	".wma":  true,
	".opus": true,
}

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
	".avif": true,
}

// contentTypeAliases covers declared content types whose prefix alone is not
// enough to place them (e.g. containers commonly mislabeled by browsers).
var contentTypeAliases = map[string]MediaType{
	"application/mp4":        TypeVideo,
	"application/x-matroska": TypeVideo,
	"application/ogg":        TypeAudio,
}

// MimeTypes maps file extensions to their MIME types for serving stored bytes.
var MimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",

	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".wma":  "audio/x-ms-wma",
	".opus": "audio/opus",

	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
}

// Classify determines the media type of a file from its name and declared
// content type. The file extension is consulted first because declared
// content types are often generic or empty for container formats; the
// content type is only a fallback. Returns TypeUnsupported when neither
// matches — such files must not enter the import pipeline.
func Classify(name, contentType string) MediaType {
	ext := strings.ToLower(filepath.Ext(name))

	if VideoExtensions[ext] {
		return TypeVideo
	}
	if AudioExtensions[ext] {
		return TypeAudio
	}
	if ImageExtensions[ext] {
		return TypePhoto
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i != -1 {
		ct = strings.TrimSpace(ct[:i])
	}
	if t, ok := contentTypeAliases[ct]; ok {
		return t
	}
	switch {
	case strings.HasPrefix(ct, "video/"):
		return TypeVideo
	case strings.HasPrefix(ct, "audio/"):
		return TypeAudio
	case strings.HasPrefix(ct, "image/"):
		return TypePhoto
	}

	return TypeUnsupported
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp4").
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsSupported returns true if the name/content-type pair maps to an
// importable media type.
func IsSupported(name, contentType string) bool {
	return Classify(name, contentType) != TypeUnsupported
}
