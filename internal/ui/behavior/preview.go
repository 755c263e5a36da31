package behavior

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPreviewBytes caps how much of a picked file is inlined.
const MaxPreviewBytes = 5 << 20

var (
	ErrNoFile     = errors.New("preview: no file selected")
	ErrFileTooBig = errors.New("preview: file too large")
)

// PreviewImage is the element built when the preview slot is not an <img>.
type PreviewImage struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Class     string `json:"class"`
	Width     string `json:"width"`
	Height    string `json:"height"`
	ObjectFit string `json:"object_fit"`
}

func NewPreviewImage(src string) PreviewImage {
	return PreviewImage{
		Src:       src,
		Alt:       "Profile picture preview",
		Class:     "img-thumbnail rounded-circle",
		Width:     "150px",
		Height:    "150px",
		ObjectFit: "cover",
	}
}

// Attrs renders the image as element attributes, sizing folded into style.
func (p PreviewImage) Attrs() map[string]string {
	return map[string]string{
		"src":   p.Src,
		"alt":   p.Alt,
		"class": p.Class,
		"style": "width: " + p.Width + "; height: " + p.Height + "; object-fit: " + p.ObjectFit + ";",
	}
}

// DataURL reads a picked file into a data: URL, sniffing its media type.
func DataURL(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}
	b, err := io.ReadAll(io.LimitReader(r, MaxPreviewBytes+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return "", ErrNoFile
	}
	if len(b) > MaxPreviewBytes {
		return "", ErrFileTooBig
	}
	mt := mimetype.Detect(b).String()
	var buf bytes.Buffer
	buf.WriteString("data:")
	buf.WriteString(mt)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(b))
	return buf.String(), nil
}

// PreviewKind says which mutation a preview needs.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	// PreviewSwapSrc replaces the src of an existing <img>.
	PreviewSwapSrc
	// PreviewReplace rebuilds the container with a new <img> and the file input.
	PreviewReplace
)

// PlanPreview picks the mutation for a loaded data URL. Missing preview or
// container elements degrade to PreviewNone.
func PlanPreview(previewFound bool, previewTag string, containerFound bool) PreviewKind {
	switch {
	case !previewFound:
		return PreviewNone
	case previewTag == "IMG" || previewTag == "img":
		return PreviewSwapSrc
	case containerFound:
		return PreviewReplace
	default:
		return PreviewNone
	}
}
