package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/builderos/builderos/internal/api"
)

// Stage is where a run currently sits. Idle and the two terminal stages are
// only ever set by the workflow itself; callers observe the rest through the
// stage callback.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageUploading  Stage = "uploading"
	StageProcessing Stage = "processing"
	StageExtracting Stage = "extracting"
	StageSuccess    Stage = "success"
	StageError      Stage = "error"
)

var (
	// ErrNotPDF means the file failed local validation and nothing was sent.
	ErrNotPDF = errors.New("only PDF files are supported")
	// ErrBusy means a run is already in flight on this workflow.
	ErrBusy = errors.New("an upload is already in progress")
)

// API is the slice of the backend client the workflow needs.
type API interface {
	UploadDocument(ctx context.Context, fileName string, file io.Reader, dealID string) (api.Document, error)
	DocumentStatus(ctx context.Context, documentID string) (api.DocumentStatus, error)
	ExtractDocument(ctx context.Context, documentID string) (api.ExtractionResult, error)
}

// Result is what a successful run produced.
type Result struct {
	Document   api.Document
	Extraction api.ExtractionResult
}

// Workflow runs one document at a time through upload, parse polling and
// extraction. Safe for concurrent use; concurrent runs beyond the first get
// ErrBusy rather than queueing.
type Workflow struct {
	api    API
	poller Poller
	log    *zap.Logger

	mu   sync.Mutex
	busy bool
}

func NewWorkflow(client API, poller Poller, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{api: client, poller: poller, log: log}
}

// Run pushes the file at path through the full flow. dealID may be empty for
// an unattached upload. onStage, if non-nil, is called as the run enters
// uploading, processing and extracting; terminal stages are conveyed by the
// return values. Validation happens before any network call.
func (w *Workflow) Run(ctx context.Context, path string, dealID string, onStage func(Stage)) (Result, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return Result{}, ErrBusy
	}
	w.busy = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	if onStage == nil {
		onStage = func(Stage) {}
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fileName := filepath.Base(path)
	if err := validatePDF(fileName, f); err != nil {
		return Result{}, err
	}

	onStage(StageUploading)
	doc, err := w.api.UploadDocument(ctx, fileName, f, dealID)
	if err != nil {
		return Result{}, fmt.Errorf("upload: %w", err)
	}
	w.log.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("file_name", fileName))

	onStage(StageProcessing)
	if err := w.waitForParsing(ctx, doc.ID); err != nil {
		return Result{Document: doc}, err
	}

	onStage(StageExtracting)
	res, err := w.api.ExtractDocument(ctx, doc.ID)
	if err != nil {
		return Result{Document: doc}, fmt.Errorf("extract: %w", err)
	}
	if !res.Success {
		return Result{Document: doc}, errors.New("extraction did not succeed")
	}
	w.log.Info("extraction complete",
		zap.String("document_id", doc.ID),
		zap.String("classification", res.Classification))
	return Result{Document: doc, Extraction: res}, nil
}

// Busy reports whether a run is currently in flight.
func (w *Workflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *Workflow) waitForParsing(ctx context.Context, documentID string) error {
	return w.poller.Wait(ctx, func(ctx context.Context) (bool, error) {
		st, err := w.api.DocumentStatus(ctx, documentID)
		if err != nil {
			return false, fmt.Errorf("status: %w", err)
		}
		switch st.ParsingStatus {
		case api.ParsingCompleted:
			return true, nil
		case api.ParsingFailed:
			msg := st.ParsingError
			if msg == "" {
				msg = "document processing failed"
			}
			return false, errors.New(msg)
		default:
			return false, nil
		}
	})
}

// validatePDF accepts a .pdf extension or the %PDF- magic bytes. The reader
// is rewound afterwards so the upload sends the whole file.
func validatePDF(fileName string, f io.ReadSeeker) error {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return nil
	}
	magic := make([]byte, 5)
	n, err := io.ReadFull(f, magic)
	if _, serr := f.Seek(0, io.SeekStart); serr != nil {
		return serr
	}
	if err != nil && n == 0 {
		return ErrNotPDF
	}
	if bytes.HasPrefix(magic[:n], []byte("%PDF-")) {
		return nil
	}
	return ErrNotPDF
}
