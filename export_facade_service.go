package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"seleniumguide/catalog"
	"seleniumguide/export"
	"seleniumguide/history"
	"seleniumguide/logger"
	"seleniumguide/practice"
)

// ExportResult is one generated file.
type ExportResult struct {
	SectionID string        `json:"sectionId"`
	FileName  string        `json:"fileName"`
	Format    export.Format `json:"format"`
	MIME      string        `json:"mime"`
	Size      int           `json:"size"`
	Path      string        `json:"path,omitempty"` // set when written to disk
	Data      []byte        `json:"-"`
}

// BatchFailure is a section that could not be exported in a batch.
type BatchFailure struct {
	SectionID string `json:"sectionId"`
	Error     string `json:"error"`
}

// BatchResult summarizes ExportAll.
type BatchResult struct {
	Dir      string          `json:"dir"`
	Format   export.Format   `json:"format"`
	Files    []*ExportResult `json:"files"`
	Failures []BatchFailure  `json:"failures,omitempty"`
}

// ExportFacadeService is the entry point for every export: HTTP handlers and
// CLI commands go through it.
type ExportFacadeService struct {
	catalog     *catalog.Catalog
	registry    *export.Registry
	previewer   *export.GoPPTService
	history     HistoryRecorder
	notifier    *NotificationCenter
	logger      *logger.Logger
	concurrency int

	// identical in-flight exports share one generation
	group singleflight.Group
}

// NewExportFacadeService wires the export flow. history may be nil.
func NewExportFacadeService(
	cat *catalog.Catalog,
	registry *export.Registry,
	hist HistoryRecorder,
	notifier *NotificationCenter,
	log *logger.Logger,
	concurrency int,
) *ExportFacadeService {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ExportFacadeService{
		catalog:     cat,
		registry:    registry,
		previewer:   export.NewGoPPTService(),
		history:     hist,
		notifier:    notifier,
		logger:      log,
		concurrency: concurrency,
	}
}

// Name implements Service.
func (e *ExportFacadeService) Name() string {
	return "export"
}

// Initialize implements Service.
func (e *ExportFacadeService) Initialize(ctx context.Context) error {
	return nil
}

// Shutdown implements Service.
func (e *ExportFacadeService) Shutdown() error {
	return nil
}

// Sections lists the curriculum in order.
func (e *ExportFacadeService) Sections() []catalog.Section {
	return e.catalog.Sections()
}

// SectionContent returns the slide data of one section.
func (e *ExportFacadeService) SectionContent(sectionID string) (catalog.Section, catalog.SectionPPTData, error) {
	meta, ok := e.catalog.Section(sectionID)
	data, found := e.catalog.Lookup(sectionID)
	if !ok || !found {
		return catalog.Section{}, catalog.SectionPPTData{}, WrapError("ExportFacadeService", "SectionContent",
			fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID))
	}
	return meta, data, nil
}

// Formats lists the registered output formats.
func (e *ExportFacadeService) Formats() []export.Format {
	return e.registry.Formats()
}

// Preview reads the slide texts of a section deck without producing a file.
func (e *ExportFacadeService) Preview(sectionID string) (export.DeckPreview, error) {
	data, ok := e.catalog.Lookup(sectionID)
	if !ok {
		return export.DeckPreview{}, WrapError("ExportFacadeService", "Preview",
			fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID))
	}
	return e.previewer.PreviewSection(data), nil
}

// ExportSection generates one section in the given format. An unknown
// section id is rejected before any exporter runs and reported as an error
// notification.
func (e *ExportFacadeService) ExportSection(ctx context.Context, sectionID string, format export.Format) (*ExportResult, error) {
	data, ok := e.catalog.Lookup(sectionID)
	if !ok {
		e.notifier.Error(ErrorCodeSectionNotFound, sectionID, "export.section_not_found", sectionID)
		return nil, WrapError("ExportFacadeService", "ExportSection", fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID))
	}

	exporter, err := e.registry.Get(format)
	if err != nil {
		e.notifier.Error(ErrorCodeUnsupportedFormat, string(format), "export.unsupported_format", format)
		return nil, WrapError("ExportFacadeService", "ExportSection", err)
	}

	v, err, shared := e.group.Do(sectionID+"."+string(format), func() (interface{}, error) {
		return e.generate(ctx, sectionID, data, exporter)
	})
	if err != nil {
		return nil, WrapError("ExportFacadeService", "ExportSection", err)
	}
	if shared {
		e.logger.Debug("export shared with in-flight request", zap.String("section", sectionID))
	}

	// callers of a shared call get their own copy
	res := *v.(*ExportResult)
	return &res, nil
}

func (e *ExportFacadeService) generate(ctx context.Context, sectionID string, data catalog.SectionPPTData, exporter export.Exporter) (res *ExportResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := exporter.Format()
	fileName := export.SectionFileName(data.SectionNumber, data.SectionTitle, format)
	start := time.Now()

	var out []byte
	func() {
		// document libraries may panic on unexpected input
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		out, err = exporter.Export(data)
	}()
	elapsed := time.Since(start)

	record := &history.Record{
		SectionID:     sectionID,
		SectionNumber: data.SectionNumber,
		Format:        string(format),
		FileName:      fileName,
		Duration:      elapsed.Milliseconds(),
	}

	if err != nil {
		record.Status = history.StatusFailed
		record.Error = err.Error()
		e.recordHistory(ctx, record)

		e.logger.Error("export failed",
			zap.String("section", sectionID),
			zap.String("format", string(format)),
			zap.Error(err))
		e.notifier.Error(ErrorCodeExportFailed, err.Error(), "export.failed", fileName)
		return nil, fmt.Errorf("%w: %s: %v", ErrGenerateFailed, fileName, err)
	}

	record.Status = history.StatusSuccess
	record.SizeBytes = int64(len(out))
	e.recordHistory(ctx, record)

	e.logger.Info("export finished",
		zap.String("section", sectionID),
		zap.String("file", fileName),
		zap.Int("bytes", len(out)),
		zap.Duration("elapsed", elapsed))
	e.notifier.Success("export.success", fileName)

	return &ExportResult{
		SectionID: sectionID,
		FileName:  fileName,
		Format:    format,
		MIME:      format.MimeType(),
		Size:      len(out),
		Data:      out,
	}, nil
}

// recordHistory never fails the export; a broken history store is logged.
// The record outlives the request: a shared generation is written even when
// the caller that started it has gone away.
func (e *ExportFacadeService) recordHistory(ctx context.Context, r *history.Record) {
	if e.history == nil {
		return
	}
	if err := e.history.Add(context.WithoutCancel(ctx), r); err != nil {
		e.logger.Warn("failed to record export", zap.String("file", r.FileName), zap.Error(err))
	}
}

// SaveSection exports a section and writes it into dir.
func (e *ExportFacadeService) SaveSection(ctx context.Context, sectionID string, format export.Format, dir string) (*ExportResult, error) {
	res, err := e.ExportSection(ctx, sectionID, format)
	if err != nil {
		return nil, err
	}
	if err := writeExport(dir, res); err != nil {
		return nil, WrapError("ExportFacadeService", "SaveSection", err)
	}
	return res, nil
}

func writeExport(dir string, res *ExportResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapOperationError("create output dir", err)
	}
	path := filepath.Join(dir, res.FileName)
	if err := os.WriteFile(path, res.Data, 0644); err != nil {
		return WrapOperationErrorf("write %s", err, res.FileName)
	}
	res.Path = path
	return nil
}

// ExportAll writes every section into dir with a bounded number of workers.
// A failing section does not stop the others; the returned error joins all
// failures.
func (e *ExportFacadeService) ExportAll(ctx context.Context, dir string, format export.Format) (*BatchResult, error) {
	if _, err := e.registry.Get(format); err != nil {
		e.notifier.Error(ErrorCodeUnsupportedFormat, string(format), "export.unsupported_format", format)
		return nil, WrapError("ExportFacadeService", "ExportAll", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, WrapError("ExportFacadeService", "ExportAll", WrapOperationError("create output dir", err))
	}

	sections := e.catalog.Sections()
	files := make([]*ExportResult, len(sections))
	var (
		mu       sync.Mutex
		failures []BatchFailure
		errs     []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, sec := range sections {
		i, sec := i, sec
		g.Go(func() error {
			res, err := e.ExportSection(gctx, sec.ID, format)
			if err == nil {
				err = writeExport(dir, res)
			}
			if err != nil {
				mu.Lock()
				failures = append(failures, BatchFailure{SectionID: sec.ID, Error: err.Error()})
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			res.Data = nil
			files[i] = res
			return nil
		})
	}
	// workers never return errors; cancellation shows up in errs
	_ = g.Wait()

	result := &BatchResult{Dir: dir, Format: format, Files: make([]*ExportResult, 0, len(sections)), Failures: failures}
	for _, f := range files {
		if f != nil {
			result.Files = append(result.Files, f)
		}
	}

	if len(errs) > 0 {
		e.notifier.Error(ErrorCodeExportFailed, "", "export.all_partial", len(result.Files), len(sections), len(errs))
		return result, WrapError("ExportFacadeService", "ExportAll", errors.Join(errs...))
	}
	e.notifier.Success("export.all_success", len(result.Files), dir)
	return result, nil
}

// PracticePage returns the practice page file name and content.
func (e *ExportFacadeService) PracticePage() (string, []byte) {
	return practice.PracticeFileName, []byte(practice.GenerateLocatorBestPracticesHTML())
}

// SavePracticePage writes the practice page into dir.
func (e *ExportFacadeService) SavePracticePage(dir string) (string, error) {
	path, err := practice.WritePracticePage(dir)
	if err != nil {
		e.notifier.Error(ErrorCodeExportFailed, err.Error(), "export.failed", practice.PracticeFileName)
		return "", WrapError("ExportFacadeService", "SavePracticePage", err)
	}
	e.notifier.Success("practice.saved", path)
	return path, nil
}

// EvaluateLocator checks a CSS selector against the practice page.
func (e *ExportFacadeService) EvaluateLocator(selector string) (practice.Match, error) {
	m, err := practice.Evaluate(selector)
	if err != nil {
		e.notifier.Error(ErrorCodeInvalidSelector, err.Error(), "practice.invalid_selector", selector)
		return practice.Match{}, WrapError("ExportFacadeService", "EvaluateLocator", err)
	}
	return m, nil
}

// RecentExports lists stored export records, newest first.
func (e *ExportFacadeService) RecentExports(ctx context.Context, limit int) ([]history.Record, error) {
	if e.history == nil {
		return []history.Record{}, nil
	}
	records, err := e.history.List(ctx, limit)
	if err != nil {
		return nil, WrapError("ExportFacadeService", "RecentExports", err)
	}
	return records, nil
}

// ExportCounts lists successful exports per section.
func (e *ExportFacadeService) ExportCounts(ctx context.Context) ([]history.SectionCount, error) {
	if e.history == nil {
		return []history.SectionCount{}, nil
	}
	counts, err := e.history.CountBySection(ctx)
	if err != nil {
		return nil, WrapError("ExportFacadeService", "ExportCounts", err)
	}
	return counts, nil
}
