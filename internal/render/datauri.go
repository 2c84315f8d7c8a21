package render

import "encoding/base64"

const (
	MimeSVG = "image/svg+xml"
	MimePNG = "image/png"
)

// DataURI wraps an encoded image as a base64 data URI, the payload a host
// document expects when inserting a picture.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
