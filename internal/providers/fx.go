// Package providers groups the boundary collaborators: PDF rendering and
// outgoing mail.
package providers

import (
	"github.com/smallbiznis/scribe/internal/document/pipeline"
	"github.com/smallbiznis/scribe/internal/providers/email"
	"github.com/smallbiznis/scribe/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	fx.Provide(
		fx.Annotate(pdf.New, fx.As(new(pipeline.Renderer))),
	),
	fx.Options(
		email.Module,
	),
)
