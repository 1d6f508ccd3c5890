// Package repository implements the document store on gorm.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(gdb *gorm.DB, log *zap.Logger) domain.Repository {
	return &Store{db: gdb, log: log.Named("document.repository")}
}

func (s *Store) MaxNumber(ctx context.Context, docType domain.DocumentType, prefix string) (string, error) {
	var number string
	// Longest first so the ordering stays numeric once the sequence grows
	// past the zero-padding width.
	err := s.db.WithContext(ctx).
		Model(&domain.Document{}).
		Select("document_number").
		Where("document_type = ?", docType).
		Where("document_number LIKE ?", prefix+"%").
		Order("LENGTH(document_number) DESC, document_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", domain.StorageUnavailable(err)
	}
	return number, nil
}

func (s *Store) Insert(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.DuplicateNumber(doc.DocumentNumber)
		}
		return domain.StorageUnavailable(err)
	}

	s.log.Info("document saved",
		zap.String("type", string(doc.DocumentType)),
		zap.String("number", doc.DocumentNumber),
		zap.Int64("user_id", doc.UserID),
	)
	return nil
}

func (s *Store) UpdatePDFPath(ctx context.Context, id snowflake.ID, path string) error {
	err := s.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pdf_path":   path,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return domain.StorageUnavailable(err)
	}
	return nil
}

func (s *Store) GetByNumber(ctx context.Context, number string) (*domain.Document, error) {
	var doc domain.Document
	err := s.db.WithContext(ctx).
		Where("document_number = ?", number).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.StorageUnavailable(err)
	}
	return &doc, nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64, docType domain.DocumentType, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)
	if docType != "" {
		query = query.Where("document_type = ?", docType)
	}

	var docs []domain.Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, domain.StorageUnavailable(err)
	}
	return docs, nil
}

func (s *Store) CountByType(ctx context.Context, userID int64) (map[domain.DocumentType]int64, error) {
	type row struct {
		DocumentType domain.DocumentType
		Total        int64
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&domain.Document{}).
		Select("document_type, COUNT(id) AS total").
		Where("user_id = ?", userID).
		Group("document_type").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.StorageUnavailable(err)
	}

	counts := make(map[domain.DocumentType]int64, len(rows))
	for _, r := range rows {
		counts[r.DocumentType] = r.Total
	}
	return counts, nil
}
