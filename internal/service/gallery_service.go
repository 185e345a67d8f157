package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/repository/memory"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/pkg/storage"
)

var ErrImageNotFound = errors.New("image not found")

// IGalleryService manages case gallery images in object storage. Download
// URLs are presigned and cached; object keys never leave the backend.
type IGalleryService interface {
	UploadImage(ctx context.Context, caseId uuid.UUID, fileName, contentType string, size int64, reader io.Reader, caption string) (*dto.CaseImageResponse, error)
	UpdateImage(ctx context.Context, caseId, imageId uuid.UUID, req *dto.UpdateImageRequest) error
	DeleteImage(ctx context.Context, caseId, imageId uuid.UUID) error
	ListImages(ctx context.Context, caseId uuid.UUID) ([]dto.CaseImageResponse, error)
	SignedURL(ctx context.Context, objectKey string) (string, error)
}

type galleryService struct {
	uowFactory    unitofwork.RepositoryFactory
	objectStore   storage.ObjectStorage
	urlCache      *memory.URLCache
	presignExpiry time.Duration
	logger        logger.ILogger
}

func NewGalleryService(
	uowFactory unitofwork.RepositoryFactory,
	objectStore storage.ObjectStorage,
	urlCache *memory.URLCache,
	presignExpiry time.Duration,
	log logger.ILogger,
) IGalleryService {
	return &galleryService{
		uowFactory:    uowFactory,
		objectStore:   objectStore,
		urlCache:      urlCache,
		presignExpiry: presignExpiry,
		logger:        log,
	}
}

func (s *galleryService) SignedURL(ctx context.Context, objectKey string) (string, error) {
	if url, found := s.urlCache.Get(objectKey); found {
		return url, nil
	}

	url, err := s.objectStore.PresignedGetURL(ctx, objectKey, s.presignExpiry)
	if err != nil {
		return "", err
	}
	s.urlCache.Set(objectKey, url)
	return url, nil
}

func (s *galleryService) toResponse(ctx context.Context, image *entity.CaseImage) dto.CaseImageResponse {
	resp := dto.CaseImageResponse{
		Id:       image.Id,
		Position: image.Position,
		Caption:  image.Caption,
	}
	url, err := s.SignedURL(ctx, image.ObjectKey)
	if err != nil {
		s.logger.Warn("gallery", "failed to presign image url", map[string]interface{}{
			"image_id": image.Id, "error": err.Error(),
		})
		return resp
	}
	resp.URL = url
	return resp
}

func (s *galleryService) UploadImage(ctx context.Context, caseId uuid.UUID, fileName, contentType string, size int64, reader io.Reader, caption string) (*dto.CaseImageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loanCase, err := uow.LoanCaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
	if err != nil {
		return nil, err
	}
	if loanCase == nil {
		return nil, ErrCaseNotFound
	}

	count, err := uow.CaseImageRepository().Count(ctx, specification.ByLoanCaseID{LoanCaseID: caseId})
	if err != nil {
		return nil, err
	}

	objectKey := storage.NewObjectKey(caseId, fileName)
	if err := s.objectStore.Upload(ctx, objectKey, reader, size, contentType); err != nil {
		return nil, err
	}

	image := entity.CaseImage{
		Id:          uuid.New(),
		LoanCaseId:  caseId,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   size,
		Position:    int(count),
		Caption:     caption,
		CreatedAt:   time.Now(),
	}
	if err := uow.CaseImageRepository().Create(ctx, &image); err != nil {
		// Best effort cleanup of the orphaned object.
		if rmErr := s.objectStore.Remove(ctx, objectKey); rmErr != nil {
			s.logger.Error("gallery", "failed to remove orphaned object", map[string]interface{}{
				"object_key": objectKey, "error": rmErr.Error(),
			})
		}
		return nil, err
	}

	resp := s.toResponse(ctx, &image)
	return &resp, nil
}

func (s *galleryService) findOwnedImage(ctx context.Context, uow unitofwork.UnitOfWork, caseId, imageId uuid.UUID) (*entity.CaseImage, error) {
	image, err := uow.CaseImageRepository().FindOne(ctx, specification.ByID{ID: imageId}, specification.ByLoanCaseID{LoanCaseID: caseId})
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *galleryService) UpdateImage(ctx context.Context, caseId, imageId uuid.UUID, req *dto.UpdateImageRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	image, err := s.findOwnedImage(ctx, uow, caseId, imageId)
	if err != nil {
		return err
	}

	if req.Position != nil {
		image.Position = *req.Position
	}
	if req.Caption != "" {
		image.Caption = req.Caption
	}

	return uow.CaseImageRepository().Update(ctx, image)
}

func (s *galleryService) DeleteImage(ctx context.Context, caseId, imageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	image, err := s.findOwnedImage(ctx, uow, caseId, imageId)
	if err != nil {
		return err
	}

	if err := uow.CaseImageRepository().Delete(ctx, image.Id); err != nil {
		return err
	}

	s.urlCache.Delete(image.ObjectKey)
	if err := s.objectStore.Remove(ctx, image.ObjectKey); err != nil {
		s.logger.Error("gallery", "failed to remove object", map[string]interface{}{
			"object_key": image.ObjectKey, "error": err.Error(),
		})
	}
	return nil
}

func (s *galleryService) ListImages(ctx context.Context, caseId uuid.UUID) ([]dto.CaseImageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	images, err := uow.CaseImageRepository().FindAllByCase(ctx, caseId)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CaseImageResponse, 0, len(images))
	for _, image := range images {
		result = append(result, s.toResponse(ctx, image))
	}
	return result, nil
}
