package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/midwestpm/reportingest/internal/domain"
)

// ErrUnknownReportType is returned when a file name matches none of the
// known report tokens.
var ErrUnknownReportType = errors.New("unknown report type")

// Service ties the pipeline together: sniff the report kind from the file
// name, decode the grid, extract normalized records, and hand them to the
// controller. Files are processed one at a time, synchronously.
type Service struct {
	controller *Controller
	now        func() time.Time
}

// NewService creates the ingestion service.
func NewService(controller *Controller) *Service {
	return &Service{
		controller: controller,
		now:        time.Now,
	}
}

// Request describes one uploaded report file.
type Request struct {
	FileName string
	Data     io.Reader
	// SnapshotDate overrides snapshot resolution when set (ISO date).
	SnapshotDate string
}

// Parse decodes and extracts a file without persisting anything. Row content
// never fails a parse: the record count is the only signal, and zero records
// means the report was empty or unrecognizable.
func (s *Service) Parse(fileName string, payload []byte, snapshotOverride string) (ReportSpec, []domain.Record, string, error) {
	kind, ok := SniffReportKind(fileName)
	if !ok {
		return ReportSpec{}, nil, "", fmt.Errorf("%w: file name %q matches no known report token", ErrUnknownReportType, fileName)
	}
	spec, _ := SpecForKind(kind)

	grid, err := DecodeGrid(fileName, payload)
	if err != nil {
		return ReportSpec{}, nil, "", err
	}

	snapshotDate := snapshotOverride
	if snapshotDate == "" {
		snapshotDate = ResolveSnapshotDate(grid, fileName, s.now())
	}

	records := Extract(spec, grid, snapshotDate, fileName)
	return spec, records, snapshotDate, nil
}

// Ingest parses one file and persists its records. Only decoding, an
// unknown report type, or an empty upload produce an error; batch write
// failures are contained in the result.
func (s *Service) Ingest(ctx context.Context, req Request) (domain.IngestionResult, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return domain.IngestionResult{}, errors.New("file name is required")
	}
	if req.Data == nil {
		return domain.IngestionResult{}, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return domain.IngestionResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return domain.IngestionResult{}, errors.New("file is empty")
	}

	spec, records, snapshotDate, err := s.Parse(req.FileName, payload, req.SnapshotDate)
	if err != nil {
		return domain.IngestionResult{}, err
	}

	log.Printf("[INGEST] %s: parsed %d records (kind=%s snapshot=%s)",
		req.FileName, len(records), spec.Kind, snapshotDate)

	result := s.controller.Ingest(ctx, spec, records, snapshotDate, req.FileName)

	log.Printf("[INGEST] %s: %d attempted, %d succeeded, %d failed",
		req.FileName, result.Attempted, result.Succeeded, result.Failed)

	return result, nil
}
