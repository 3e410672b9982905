// Package pdf holds the PDF tools. Processing is a placeholder: after a
// fixed latency the input document is returned unchanged.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/tools"
)

const MimePDF = "application/pdf"

type Processor struct {
	delay time.Duration
}

func New(cfg config.PDFConfig) *Processor {
	return &Processor{delay: cfg.Delay}
}

func (p *Processor) Kind() catalog.Kind {
	return catalog.KindPDF
}

func (p *Processor) CheckInputs(_ catalog.Descriptor, values tools.Values) error {
	return values.RequireFile("file")
}

func (p *Processor) Execute(ctx context.Context, tool catalog.Descriptor, values tools.Values) tools.Result {
	if err := values.RequireFile("file"); err != nil {
		return tools.NewErrorResult(err.Error())
	}
	file := values.File("file")
	return p.Process(ctx, file, tool.Slug)
}

func (p *Processor) Process(ctx context.Context, file *tools.File, slug string) tools.Result {
	log := logger.FromContext(ctx).With(zap.String("file", file.Name), zap.String("tool", slug))

	if pages, err := PageCount(file.Data); err != nil {
		log.Debug("pdf not inspectable", zap.Error(err))
	} else {
		log.Debug("pdf inspected", zap.Int("pages", pages))
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return tools.NewErrorResult(ctx.Err().Error())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return tools.NewErrorResult(err.Error())
	}

	return tools.NewFileResult(file.Data, "processed-"+file.Name, MimePDF)
}

// PageCount parses data as a PDF document and returns its number of pages.
func PageCount(data []byte) (n int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	return r.NumPage(), nil
}
