package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/proofstreak/internal/clock"
	"github.com/templui/proofstreak/internal/model"
	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/storage"
	"github.com/templui/proofstreak/internal/verify"
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
	clock    clock.Clock
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage, clk clock.Clock) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		clock:    clk,
	}
}

// StoreProofPhoto saves a validated photo for a submission and records it.
func (s *FileService) StoreProofPhoto(ctx context.Context, userID, submissionID, originalName, mimeType string, data []byte) (*model.File, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.New().String() + ext
	storagePath := path.Join("private", model.FileTypeProofPhoto+"s", userID, filename)

	err := s.storage.Save(ctx, storagePath, bytes.NewReader(data), mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	file := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    model.FileOwnerSubmission,
		OwnerID:      submissionID,
		Type:         model.FileTypeProofPhoto,
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		StoragePath:  storagePath,
		Public:       false,
		CreatedAt:    s.clock.Now(),
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

func (s *FileService) ByID(fileID string) (*model.File, error) {
	return s.fileRepo.ByID(fileID)
}

// Read loads a stored photo back into memory.
func (s *FileService) Read(ctx context.Context, fileID string) (verify.Photo, error) {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return verify.Photo{}, fmt.Errorf("failed to get file: %w", err)
	}

	rc, err := s.storage.Open(ctx, file.StoragePath)
	if err != nil {
		return verify.Photo{}, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return verify.Photo{}, fmt.Errorf("failed to read file: %w", err)
	}

	return verify.Photo{Data: data, MimeType: file.MimeType}, nil
}

// URL returns a short-lived link to the file, or "" when none can be made.
func (s *FileService) URL(ctx context.Context, file *model.File) string {
	if file == nil {
		return ""
	}

	url, err := s.storage.URL(ctx, file.StoragePath)
	if err != nil {
		slog.Warn("failed to build file URL", "error", err, "file_id", file.ID)
		return ""
	}
	return url
}

// Delete removes a file from storage and database
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	// Best effort: an orphaned object is better than a dangling record
	delErr := s.storage.Delete(ctx, file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// DeleteMany removes every listed file, logging and skipping failures.
func (s *FileService) DeleteMany(ctx context.Context, fileIDs []string) {
	files, err := s.fileRepo.ByIDs(fileIDs)
	if err != nil {
		slog.Warn("failed to load files for deletion", "error", err, "count", len(fileIDs))
		return
	}

	for _, file := range files {
		err := s.storage.Delete(ctx, file.StoragePath)
		if err != nil {
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
		err = s.fileRepo.Delete(file.ID)
		if err != nil {
			slog.Warn("failed to delete file record", "file_id", file.ID, "error", err)
		}
	}
}

func (s *FileService) DeleteAllUserFilesFromStorage(ctx context.Context, userID string) error {
	files, err := s.fileRepo.AllUserFiles(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		err = s.storage.Delete(ctx, file.StoragePath)
		if err != nil {
			// Log but continue - physical file may already be gone
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}

	return nil
}
