// Package ocr recognizes the digit on a normalized cell canvas using Tesseract.
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Digits is the character set a puzzle cell can hold.
const Digits = "123456789"

const (
	upscale = 3  // Tesseract struggles below ~30px glyph height
	border  = 20 // white padding around the glyph
)

// ErrUnrecognized is returned when Tesseract reads no digit from a canvas.
var ErrUnrecognized = errors.New("no digit recognized")

// Classifier turns a centered symbol canvas into a digit in 1..9.
type Classifier interface {
	Classify(canvas *image.Gray) (int, error)
}

// Engine classifies canvases with a single Tesseract client.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates a Tesseract-backed classifier restricted to whitelist.
func NewEngine(language, whitelist string) (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetWhitelist(whitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	// A cell is one glyph, no dictionary lookups
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Classify reads the digit on a canvas.
func (e *Engine) Classify(canvas *image.Gray) (int, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, prepare(canvas), imaging.PNG); err != nil {
		return 0, fmt.Errorf("failed to encode canvas: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("failed to set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return 0, fmt.Errorf("OCR failed: %w", err)
	}
	return parseDigit(text)
}

// prepare turns a white-on-black canvas into an enlarged black-on-white
// glyph with a white border.
func prepare(canvas *image.Gray) *image.NRGBA {
	b := canvas.Bounds()
	inverted := imaging.Invert(canvas)
	scaled := imaging.Resize(inverted, b.Dx()*upscale, b.Dy()*upscale, imaging.Lanczos)

	page := imaging.New(b.Dx()*upscale+2*border, b.Dy()*upscale+2*border, color.White)
	return imaging.PasteCenter(page, scaled)
}

// parseDigit returns the first digit 1..9 in text.
func parseDigit(text string) (int, error) {
	for _, r := range strings.TrimSpace(text) {
		if strings.ContainsRune(Digits, r) {
			return int(r - '0'), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognized, text)
}
