// Package sample reads colors out of image files so they can be fed to the
// conversion engine.
//
// Images are decoded once and kept in an ImageCache keyed by path. Pixel
// values are returned as sRGB colors with non-premultiplied alpha, at the
// full 16-bit precision the decoder provides.
//
// Coordinates are 0-based with the origin at the top-left corner. For
// regions, (X1, Y1) is inclusive and (X2, Y2) is exclusive.
package sample

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache keeps decoded images keyed by file path.
//
// ImageCache is safe for concurrent use. Entries stay until Evict or Clear
// removes them.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the image at path, decoding it on first use. PNG, JPEG and
// GIF files are supported; JPEG images are rotated according to their EXIF
// orientation.
//
// The cache is keyed by the exact path string, so a relative and an absolute
// path to the same file are separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict drops the image loaded from path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
