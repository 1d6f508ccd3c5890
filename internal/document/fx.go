package document

import (
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/document/pipeline"
	"github.com/smallbiznis/scribe/internal/document/repository"
	"github.com/smallbiznis/scribe/internal/document/sequence"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("document.service",
	fx.Provide(
		repository.New,
		sequence.New,
		pipeline.NewRunner,
	),
	fx.Invoke(migrate),
)

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.Document{})
}
