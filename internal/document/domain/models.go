// Package domain contains the document models and persistence records for
// French administrative documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// DocumentType identifies a numbering namespace. Each type carries its own
// year-scoped sequence.
type DocumentType string

const (
	TypeInvoice       DocumentType = "invoice"
	TypeQuote         DocumentType = "quote"
	TypeMileage       DocumentType = "mileage"
	TypeRentReceipt   DocumentType = "rent_receipt"
	TypeRentalCharges DocumentType = "rental_charges"
)

// Types lists every supported document type.
func Types() []DocumentType {
	return []DocumentType{TypeInvoice, TypeQuote, TypeMileage, TypeRentReceipt, TypeRentalCharges}
}

func (t DocumentType) Valid() bool {
	switch t {
	case TypeInvoice, TypeQuote, TypeMileage, TypeRentReceipt, TypeRentalCharges:
		return true
	}
	return false
}

// Document is the persisted record for a generated document. Data holds the
// full validated model as JSON; the model is never mutated after the row
// commits; corrections are new documents.
type Document struct {
	ID             snowflake.ID   `gorm:"primaryKey"`
	DocumentType   DocumentType   `gorm:"type:text;not null;index:idx_documents_user_type,priority:2;index"`
	DocumentNumber string         `gorm:"type:varchar(100);not null;uniqueIndex:ux_documents_number"`
	Data           datatypes.JSON `gorm:"not null"`
	PDFPath        string         `gorm:"type:varchar(500)"`
	UserID         int64          `gorm:"not null;index:idx_documents_user_type,priority:1;index"`
	CreatedAt      time.Time      `gorm:"not null;index"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (Document) TableName() string { return "documents" }
