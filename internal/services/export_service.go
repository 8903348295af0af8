package services

import (
	"context"
	"fmt"
	"os"

	"despesas/internal/core"
	"despesas/internal/export"
	"despesas/internal/log"
	"despesas/internal/store"
)

// ExportService writes the whole store, in store order, to a file.
type ExportService struct {
	store  store.ExpenseLister
	format export.Format
	write  export.Writer
	logger *log.Logger
}

func NewExportService(s store.ExpenseLister, format export.Format, logger *log.Logger) (*ExportService, error) {
	write, err := export.WriterFor(format)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportService{
		store:  s,
		format: format,
		write:  write,
		logger: logger.WithComponent(log.ComponentExport),
	}, nil
}

// Export overwrites path with every stored expense and returns how many were
// written. An empty store yields core.ErrNothingToExport and touches no file;
// any I/O failure is wrapped in core.ErrExport.
func (x *ExportService) Export(ctx context.Context, path string) (int, error) {
	expenses, err := x.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrExport, err)
	}
	if len(expenses) == 0 {
		return 0, core.ErrNothingToExport
	}

	if err := x.writeFile(path, expenses); err != nil {
		x.logger.ErrorContext(ctx, "Export failed",
			log.FieldPath, path,
			log.FieldFormat, string(x.format),
			log.FieldError, err)
		return 0, fmt.Errorf("%w: %w", core.ErrExport, err)
	}

	x.logger.InfoContext(ctx, "Expenses exported",
		log.FieldOperation, log.OpExport,
		log.FieldPath, path,
		log.FieldFormat, string(x.format),
		log.FieldCount, len(expenses))
	return len(expenses), nil
}

func (x *ExportService) writeFile(path string, expenses []core.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := x.write(f, expenses); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
