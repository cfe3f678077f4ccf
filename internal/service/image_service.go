package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"yatube/internal/config"
	"yatube/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir        = "media"
	DefaultMaxUploadSizeMB = 10
	OriginalMaxSize        = 2048
	ThumbnailMaxSize       = 256
	WebPQuality            = 75
)

// UploadImageInput carries a raw post image upload.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StoredImage points at the saved original and its thumbnail,
// as paths relative to the media dir.
type StoredImage struct {
	Path      string
	ThumbPath string
}

type ImageService struct {
	mediaDir           string
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{
		mediaDir:           mediaDir,
		maxUploadSizeBytes: DefaultMaxUploadSizeMB * 1024 * 1024,
	}
}

// Store validates, re-encodes and saves an uploaded image. The original
// is capped at 2048px, the thumbnail at 256px, both stored as WebP under
// posts/ with generated names so uploads never collide.
func (s *ImageService) Store(in UploadImageInput) (*StoredImage, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	original := resizeToFit(decoded, OriginalMaxSize, OriginalMaxSize)
	thumb := resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize)

	encodedOriginal, err := encodeWebP(original, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	encodedThumb, err := encodeWebP(thumb, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	name := uuid.New().String()
	path := filepath.Join("posts", name+".webp")
	thumbPath := filepath.Join("posts", name+"_thumb.webp")

	if err := s.writeFile(path, encodedOriginal); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.writeFile(thumbPath, encodedThumb); err != nil {
		os.Remove(filepath.Join(s.mediaDir, path))
		return nil, models.NewInternalError(err)
	}

	return &StoredImage{Path: path, ThumbPath: thumbPath}, nil
}

// Remove deletes a stored image pair. Removal is best-effort: a missing
// file is not an error, other failures are logged and swallowed so an
// orphaned file never masks the caller's own result.
func (s *ImageService) Remove(img *StoredImage) {
	if img == nil {
		return
	}
	for _, rel := range []string{img.Path, img.ThumbPath} {
		if rel == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.mediaDir, rel)); err != nil && !os.IsNotExist(err) {
			log.Printf("remove stored image %s: %v", rel, err)
		}
	}
}

func (s *ImageService) writeFile(relPath string, content []byte) error {
	full := filepath.Join(s.mediaDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}
