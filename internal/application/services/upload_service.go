package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
)

// UploadService stores uploaded images and returns a mocked analysis.
// No real image inference happens here.
type UploadService struct {
	dir    string
	logger *logger.Logger
}

// NewUploadService creates the service and ensures the upload dir exists
func NewUploadService(dir string, log *logger.Logger) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &UploadService{dir: dir, logger: log}, nil
}

// StoreImage writes the uploaded file under a collision-free name and
// returns the stored filename plus the mock analysis
func (s *UploadService) StoreImage(ctx context.Context, file *multipart.FileHeader) (string, *entities.ImageAnalysis, error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := uuid.New().String() + "-" + filepath.Base(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload target: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Infow("Image stored", "filename", filename, "size", file.Size)

	return filename, &entities.ImageAnalysis{
		Condition:  "Normal skin condition detected",
		Confidence: 0.85,
		Recommendations: []string{
			"Maintain good hygiene",
			"Stay hydrated",
			"Consult a dermatologist if symptoms persist",
		},
	}, nil
}
