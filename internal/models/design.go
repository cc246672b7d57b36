package models

import "time"

// Field defaults applied when a save request leaves them unset.
const (
	DefaultFontSize     = 48
	DefaultFontColor    = "#ffffff"
	DefaultPositionX    = 50
	DefaultPositionY    = 50
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 400
)

// TextPosition is the anchor point of the text on the canvas.
type TextPosition struct {
	X int `gorm:"column:position_x" json:"x"`
	Y int `gorm:"column:position_y" json:"y"`
}

// Design is one saved design. Records are immutable after creation:
// UpdatedAt is stamped once at insert and never revised.
type Design struct {
	ID           uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Text         string       `gorm:"size:1000;not null" json:"text"`
	FontSize     int          `json:"fontSize"`
	FontColor    string       `gorm:"size:32" json:"fontColor"`
	TextPosition TextPosition `gorm:"embedded" json:"textPosition"`
	FontURL      *string      `gorm:"size:512" json:"fontUrl"`
	CanvasWidth  int          `json:"canvasWidth"`
	CanvasHeight int          `json:"canvasHeight"`

	// Result asset owned by this record (1:1).
	ImageURL  string `gorm:"size:512" json:"imageUrl"`
	ImagePath string `gorm:"size:512" json:"-"`
	MimeType  string `gorm:"size:120" json:"mimeType"`
	SizeBytes int64  `json:"size"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DesignInput carries the client-settable fields of a save request.
// Pointer fields distinguish "absent" from zero values.
type DesignInput struct {
	Text         string        `json:"text"`
	FontSize     *int          `json:"fontSize"`
	FontColor    *string       `json:"fontColor"`
	TextPosition *TextPosition `json:"textPosition"`
	FontURL      *string       `json:"fontUrl"`
	CanvasWidth  *int          `json:"canvasWidth"`
	CanvasHeight *int          `json:"canvasHeight"`
	FinalImage   string        `json:"finalImage"`
}

// NewDesign builds a record from a save request and its ingested result
// asset, filling every unset optional field with its default. ID and the
// timestamps are assigned by the store at insert time.
func NewDesign(in DesignInput, asset *StoredAsset) *Design {
	d := &Design{
		Text:         in.Text,
		FontSize:     DefaultFontSize,
		FontColor:    DefaultFontColor,
		TextPosition: TextPosition{X: DefaultPositionX, Y: DefaultPositionY},
		FontURL:      in.FontURL,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		ImageURL:     asset.PublicRef,
		ImagePath:    asset.Path,
		MimeType:     asset.MimeType,
		SizeBytes:    asset.SizeBytes,
	}
	if in.FontSize != nil {
		d.FontSize = *in.FontSize
	}
	if in.FontColor != nil {
		d.FontColor = *in.FontColor
	}
	if in.TextPosition != nil {
		d.TextPosition = *in.TextPosition
	}
	if in.CanvasWidth != nil {
		d.CanvasWidth = *in.CanvasWidth
	}
	if in.CanvasHeight != nil {
		d.CanvasHeight = *in.CanvasHeight
	}
	return d
}
