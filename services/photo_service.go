package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	apperrors "restaurante360/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/disintegration/imaging"
)

const (
	maxPhotoSide     = 1600
	photoJPEGQuality = 80
	maxPhotoBytes    = 10 << 20
	maxPhotosPerCall = 5
	photoFolder      = "restaurante360/tasks"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, name string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: photoFolder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, name string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         u.folder,
		UniqueFilename: boolPtr(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func boolPtr(b bool) *bool { return &b }

// PhotoService turns uploaded evidence into stored image URLs. Images are
// re-encoded as bounded JPEGs before upload.
type PhotoService struct {
	opts     Options
	uploader Uploader
}

// NewPhotoService accepts a nil uploader; every upload then fails with
// STORAGE_UNAVAILABLE.
func NewPhotoService(opts Options, up Uploader) *PhotoService {
	return &PhotoService{opts: opts.withDefaults(), uploader: up}
}

func (s *PhotoService) Upload(ctx context.Context, actor *Session, files []*multipart.FileHeader) ([]string, error) {
	if s.uploader == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeStorageUnavailable, "Armazenamento de fotos indisponível", nil)
	}
	if len(files) == 0 {
		return nil, apperrors.Validation("Envie ao menos uma foto")
	}
	if len(files) > maxPhotosPerCall {
		return nil, apperrors.Validation(fmt.Sprintf("Envie no máximo %d fotos por vez", maxPhotosPerCall))
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxPhotoBytes {
			return nil, apperrors.Validation(fmt.Sprintf("A foto %s excede 10MB", fh.Filename))
		}
		url, err := s.uploadOne(ctx, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	s.opts.Logger.Info("user %s uploaded %d photos", actor.UserID, len(urls))
	return urls, nil
}

func (s *PhotoService) uploadOne(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Não foi possível ler a foto", err)
	}
	defer f.Close()

	normalized, err := NormalizeImage(f)
	if err != nil {
		return "", err
	}
	url, err := s.uploader.Upload(ctx, normalized, fh.Filename)
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeUpload, "Falha ao enviar a foto", err)
	}
	return url, nil
}

// NormalizeImage applies EXIF orientation, bounds the image to
// maxPhotoSide and re-encodes it as JPEG.
func NormalizeImage(r io.Reader) (*bytes.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Arquivo não é uma imagem válida", err)
	}
	b := img.Bounds()
	if b.Dx() > maxPhotoSide || b.Dy() > maxPhotoSide {
		img = imaging.Fit(img, maxPhotoSide, maxPhotoSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(photoJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &buf, nil
}
