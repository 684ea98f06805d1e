// Package assets downloads article cover images and stores them on
// disk. Image retrieval is best effort: a failed download marks the
// owning record's asset failure flag and nothing else. Downloaded JPEG
// data is additionally inspected for EXIF metadata of interest.
package assets
