package assets

import (
	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/headline/internal/model"
)

// InspectEXIF extracts the metadata fields of interest from raw image
// bytes. It returns nil when the image carries no EXIF block or the
// block cannot be parsed; metadata is informational only and never
// worth failing a run over.
func InspectEXIF(data []byte) *model.ImageMeta {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	meta := &model.ImageMeta{}
	for _, entry := range entries {
		switch entry.TagName {
		case "Artist", "Author":
			if meta.Artist == "" {
				meta.Artist = entry.Formatted
			}
		case "Software", "ProcessingSoftware":
			if meta.Software == "" {
				meta.Software = entry.Formatted
			}
		case "Model":
			if meta.CameraModel == "" {
				meta.CameraModel = entry.Formatted
			}
		case "DateTimeOriginal":
			if meta.CapturedAt == "" {
				meta.CapturedAt = entry.Formatted
			}
		}
	}

	if meta.Empty() {
		return nil
	}
	return meta
}
