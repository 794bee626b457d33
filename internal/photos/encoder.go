// Package photos turns uploaded review images into data URLs.
package photos

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds the size limit")
)

// Upload is one photo read from a review submission.
type Upload struct {
	Filename string
	Data     []byte
}

// Read buffers at most maxBytes+1 bytes of r, enough for EncodeAll to tell
// an oversized photo from one at the limit. maxBytes <= 0 reads everything.
func Read(filename string, r io.Reader, maxBytes int64) (Upload, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Upload{}, err
	}

	return Upload{Filename: filename, Data: data}, nil
}

type Options struct {
	MaxPhotos int
	MaxBytes  int64
	Workers   int
}

type Encoder struct {
	opts Options
}

// NewEncoder clamps MaxPhotos to models.MaxPhotosPerReview.
func NewEncoder(opts Options) *Encoder {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxPhotos < 1 || opts.MaxPhotos > models.MaxPhotosPerReview {
		opts.MaxPhotos = models.MaxPhotosPerReview
	}

	return &Encoder{opts: opts}
}

func (e *Encoder) MaxPhotos() int {
	return e.opts.MaxPhotos
}

// EncodeAll encodes at most MaxPhotos uploads, in input order. Extra uploads
// are ignored. Any failing upload fails the whole batch and cancels the rest.
func (e *Encoder) EncodeAll(ctx context.Context, files []Upload) ([]string, error) {
	if len(files) > e.opts.MaxPhotos {
		files = files[:e.opts.MaxPhotos]
	}

	out := make([]string, len(files))
	if len(files) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			url, err := e.encode(f)
			if err != nil {
				return fmt.Errorf("photo %q: %w", f.Filename, err)
			}

			out[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Encoder) encode(f Upload) (string, error) {
	if e.opts.MaxBytes > 0 && int64(len(f.Data)) > e.opts.MaxBytes {
		return "", ErrTooLarge
	}

	return DataURL(f.Data)
}

// DataURL encodes an image payload as data:<mime>;base64,<payload>.
func DataURL(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotImage
	}

	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
