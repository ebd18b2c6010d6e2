package media

import (
	"context"
	"errors"
)

var ErrNotImage = errors.New("upload a valid image")

// Storage keeps uploaded post images and returns their public path.
type Storage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
