package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dienstmarkt_backend/internal/imageprocessor"
	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/internal/storage"
	"dienstmarkt_backend/pkg/apperrors"
)

type UploadService interface {
	// UploadImages stores each file, generates a thumbnail and records an
	// Upload row per file. The whole batch is validated before anything is
	// written.
	UploadImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*dto.UploadResponse, error)
	UploadProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	ListUserUploads(userID string) ([]*dto.UploadResponse, error)
	DeleteUpload(ctx context.Context, callerID string, isAdmin bool, uploadID string) error
}

type UploadLimits struct {
	MaxSize      int64
	MaxFiles     int
	AllowedTypes []string
}

type uploadService struct {
	db         *gorm.DB
	uploadRepo repositories.UploadRepository
	store      storage.Storage
	processor  *imageprocessor.Processor
	limits     UploadLimits
}

func NewUploadService(
	db *gorm.DB,
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	limits UploadLimits,
) UploadService {
	return &uploadService{
		db:         db,
		uploadRepo: uploadRepo,
		store:      store,
		processor:  processor,
		limits:     limits,
	}
}

func (s *uploadService) UploadImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("no files provided")
	}
	if len(files) > s.limits.MaxFiles {
		return nil, apperrors.ErrTooManyFiles
	}
	for _, fh := range files {
		if err := s.validateFile(fh); err != nil {
			return nil, err
		}
	}

	out := make([]*dto.UploadResponse, 0, len(files))
	for _, fh := range files {
		upload, err := s.saveFile(ctx, userID, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, toUploadResponse(upload))
	}
	return out, nil
}

func (s *uploadService) UploadProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if err := s.validateFile(file); err != nil {
		return nil, err
	}
	upload, err := s.saveFile(ctx, userID, file)
	if err != nil {
		return nil, err
	}
	return toUploadResponse(upload), nil
}

func (s *uploadService) ListUserUploads(userID string) ([]*dto.UploadResponse, error) {
	uploads, err := s.uploadRepo.FindByUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		out = append(out, toUploadResponse(&uploads[i]))
	}
	return out, nil
}

func (s *uploadService) DeleteUpload(ctx context.Context, callerID string, isAdmin bool, uploadID string) error {
	upload, err := s.uploadRepo.FindByID(s.db, uploadID)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !isAdmin && upload.UserID != callerID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.uploadRepo.Delete(s.db, uploadID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) validateFile(fh *multipart.FileHeader) error {
	if fh.Size > s.limits.MaxSize {
		return apperrors.ErrFileTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	for _, allowed := range s.limits.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

func (s *uploadService) saveFile(ctx context.Context, userID string, fh *multipart.FileHeader) (*models.Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	contentType := fh.Header.Get("Content-Type")
	ext := filepath.Ext(fh.Filename)
	name := uuid.New().String()
	path := fmt.Sprintf("uploads/%s/%s%s", userID, name, ext)

	if err := s.store.Save(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Thumbnails are best effort; a file the image decoder rejects is
	// still stored at full size.
	var thumbPath string
	if thumb, err := s.processor.Thumbnail(bytes.NewReader(data)); err == nil {
		thumbPath = fmt.Sprintf("uploads/%s/%s_thumb.jpg", userID, name)
		if err := s.store.Save(ctx, thumbPath, thumb, "image/jpeg"); err != nil {
			thumbPath = ""
		}
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	var thumbURL string
	if thumbPath != "" {
		thumbURL, _ = s.store.GetURL(ctx, thumbPath)
	}

	upload := &models.Upload{
		UserID:       userID,
		FileName:     fh.Filename,
		Path:         path,
		URL:          url,
		ThumbnailURL: thumbURL,
		MimeType:     contentType,
		Size:         fh.Size,
	}
	if err := s.uploadRepo.Create(s.db, upload); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return upload, nil
}

func toUploadResponse(upload *models.Upload) *dto.UploadResponse {
	return &dto.UploadResponse{
		ID:           upload.ID,
		URL:          upload.URL,
		ThumbnailURL: upload.ThumbnailURL,
		FileName:     upload.FileName,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
	}
}
