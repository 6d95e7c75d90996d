// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/rendergraph"
)

// copyPitchAlignment is the row alignment texture-to-buffer copies need.
const copyPitchAlignment = 256

// RecordInfo describes the Record pass.
var RecordInfo = Info{Name: "Record", Description: "Reads a texture back to the CPU every frame"}

// Sink receives the frames captured by Record. frame counts from 0.
type Sink func(frame int, img image.Image) error

// Encoding selects the file format FileSink writes.
type Encoding int

// Supported file encodings.
const (
	EncodingPNG Encoding = iota
	EncodingBMP
	EncodingTIFF
)

// String returns the file extension of e without the dot.
func (e Encoding) String() string {
	switch e {
	case EncodingBMP:
		return "bmp"
	case EncodingTIFF:
		return "tiff"
	default:
		return "png"
	}
}

// ParseEncoding maps a file extension to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "png":
		return EncodingPNG, nil
	case "bmp":
		return EncodingBMP, nil
	case "tif", "tiff":
		return EncodingTIFF, nil
	}
	return 0, fmt.Errorf("passes: unknown encoding %q", s)
}

// FileSink returns a Sink that writes every frame to
// dir/prefix-NNNNN.ext.
func FileSink(dir, prefix string, enc Encoding) Sink {
	return func(frame int, img image.Image) error {
		name := filepath.Join(dir, fmt.Sprintf("%s-%05d.%s", prefix, frame, enc))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := encodeImage(f, img, enc); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode %s: %w", name, err)
		}
		return f.Close()
	}
}

func encodeImage(f *os.File, img image.Image, enc Encoding) error {
	switch enc {
	case EncodingBMP:
		return bmp.Encode(f, img)
	case EncodingTIFF:
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(f, img)
	}
}

// Record copies its "src" input to the CPU after every frame and hands the
// image to a Sink. Only 8-bit RGBA and BGRA textures can be recorded.
type Record struct {
	Base

	sink Sink

	// Width and Height, when non-zero, scale the captured image.
	Width, Height int

	frame int
	last  *image.RGBA
}

var _ rendergraph.Pass = (*Record)(nil)

// NewRecord returns a Record pass. A nil sink only keeps the last frame.
func NewRecord(sink Sink) *Record {
	var r rendergraph.Reflection
	r.AddInput("src", "texture to read back").Flags(gputypes.TextureUsageCopySrc)
	return &Record{Base: NewBase(RecordInfo, r), sink: sink}
}

// Frames returns how many frames were captured.
func (p *Record) Frames() int { return p.frame }

// Last returns the last captured image, or nil.
func (p *Record) Last() *image.RGBA { return p.last }

// Validate also rejects source formats that can't be read back.
func (p *Record) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return err
	}
	if src := p.InputTexture("src"); src != nil && !readableFormat(src.Format()) {
		return fmt.Errorf("src format %v can't be recorded", src.Format())
	}
	return nil
}

func readableFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

func isBGRA(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatBGRA8UnormSrgb
}

// Execute reads back "src" and passes it to the sink.
func (p *Record) Execute(rc rendergraph.RenderContext) error {
	src := p.InputTexture("src")
	if src == nil || src.Handle() == nil {
		return fmt.Errorf("record: input %q has no texture", "src")
	}
	if rc == nil || rc.Device() == nil {
		return ErrNoDevice
	}

	pixels, err := readTexture(rc, src)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	var img image.Image = pixels
	if p.Width > 0 && p.Height > 0 && (p.Width != pixels.Rect.Dx() || p.Height != pixels.Rect.Dy()) {
		scaled := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), pixels, pixels.Bounds(), draw.Src, nil)
		img = scaled
		pixels = scaled
	}

	frame := p.frame
	p.frame++
	p.last = pixels
	if p.sink == nil {
		return nil
	}
	if err := p.sink(frame, img); err != nil {
		return fmt.Errorf("record: frame %d: %w", frame, err)
	}
	return nil
}

// readTexture copies tex into a staging buffer and returns it as RGBA.
func readTexture(rc rendergraph.RenderContext, tex *rendergraph.Texture) (*image.RGBA, error) {
	device := rc.Device()
	w, h := tex.Width(), tex.Height()

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: tex.Label() + "_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	err = submit(rc, "rendergraph_record", func(enc hal.CommandEncoder) error {
		enc.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex.Handle(),
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		enc.CopyTextureToBuffer(tex.Handle(), stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: tex.Handle(), MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
		enc.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex.Handle(),
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
		return nil
	})
	if err != nil {
		return nil, err
	}

	mapping, err := device.MapBuffer(stagingBuf, 0, stagingBufSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), stagingBufSize)

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	unpackRows(img.Pix, readback, int(w), int(h), int(alignedBytesPerRow), isBGRA(tex.Format()))
	if err := device.UnmapBuffer(stagingBuf); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return img, nil
}

// unpackRows strips row padding from src and swaps B and R when bgra is set.
func unpackRows(dst, src []byte, w, h, srcStride int, bgra bool) {
	rowBytes := w * 4
	for y := 0; y < h; y++ {
		row := dst[y*rowBytes : (y+1)*rowBytes]
		copy(row, src[y*srcStride:y*srcStride+rowBytes])
		if !bgra {
			continue
		}
		for i := 0; i < rowBytes; i += 4 {
			row[i], row[i+2] = row[i+2], row[i]
		}
	}
}
