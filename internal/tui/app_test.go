package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/upload"
)

func uploadSuccessApp(records api.PopulatedRecords) *App {
	a := New(context.Background(), nil, nil, nil)
	a.state = viewUpload
	a.uploadStage = upload.StageSuccess
	a.uploadResult = &upload.Result{
		Extraction: api.ExtractionResult{Success: true, PopulatedRecords: records},
	}
	return a
}

func TestUploadEnterOpensDealDetail(t *testing.T) {
	t.Parallel()

	id := "deal-7"
	a := uploadSuccessApp(api.PopulatedRecords{DealID: &id})

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := model.(*App)
	if got.state != viewDealDetail {
		t.Fatalf("state = %q, want %q", got.state, viewDealDetail)
	}
	if cmd == nil {
		t.Fatal("expected a deal fetch command")
	}
}

func TestUploadEnterOpensFundDetail(t *testing.T) {
	t.Parallel()

	id := "fund-42"
	a := uploadSuccessApp(api.PopulatedRecords{FundID: &id})

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := model.(*App)
	if got.state != viewFundDetail {
		t.Fatalf("state = %q, want %q", got.state, viewFundDetail)
	}
	if cmd == nil {
		t.Fatal("expected a fund fetch command")
	}
}

func TestUploadEnterNoRecordsReturnsToDashboard(t *testing.T) {
	t.Parallel()

	a := uploadSuccessApp(api.PopulatedRecords{})

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := model.(*App)
	if got.state != viewDashboard {
		t.Fatalf("state = %q, want %q", got.state, viewDashboard)
	}
}

func TestUploadLateStageMessageKeepsTerminalState(t *testing.T) {
	t.Parallel()

	a := New(context.Background(), nil, nil, nil)
	a.state = viewUpload
	ch := make(chan upload.Stage, 4)
	a.uploadStages = ch
	a.uploadStage = upload.StageExtracting

	a.Update(uploadDoneMsg{ch: ch, result: upload.Result{}})
	if a.uploadStage != upload.StageSuccess {
		t.Fatalf("stage = %q, want %q", a.uploadStage, upload.StageSuccess)
	}

	// a stage message still buffered when the run finished must not move
	// the screen backwards
	a.Update(uploadStageMsg{stage: upload.StageExtracting, ch: ch})
	if a.uploadStage != upload.StageSuccess {
		t.Fatalf("stage = %q after late stage message, want %q", a.uploadStage, upload.StageSuccess)
	}
}

func TestUploadStaleStageMessageDropped(t *testing.T) {
	t.Parallel()

	a := New(context.Background(), nil, nil, nil)
	a.state = viewUpload
	a.uploadStages = make(chan upload.Stage, 4)
	a.uploadStage = upload.StageUploading

	old := make(chan upload.Stage, 4)
	a.Update(uploadStageMsg{stage: upload.StageExtracting, ch: old})
	if a.uploadStage != upload.StageUploading {
		t.Fatalf("stage = %q, want %q", a.uploadStage, upload.StageUploading)
	}
}

func TestUploadStaleDoneMessageDropped(t *testing.T) {
	t.Parallel()

	a := New(context.Background(), nil, nil, nil)
	a.state = viewUpload
	a.uploadStages = make(chan upload.Stage, 4)
	a.uploadStage = upload.StageUploading

	old := make(chan upload.Stage, 4)
	a.Update(uploadDoneMsg{ch: old, err: errors.New("boom")})
	if a.uploadStage != upload.StageUploading {
		t.Fatalf("stage = %q, want %q", a.uploadStage, upload.StageUploading)
	}
	if a.uploadErr != "" {
		t.Fatalf("uploadErr = %q, want empty", a.uploadErr)
	}
}
