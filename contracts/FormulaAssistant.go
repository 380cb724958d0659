package contracts

import (
	"context"
	"errors"
)

type AnalysisResult struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

var AssistantResponseError = errors.New("unexpected assistant response")

// FormulaAssistant suggests formulas and summarizes sheets. An empty suggestion means "no suggestion".
type FormulaAssistant interface {
	SuggestFormula(ctx context.Context, prompt string, sheet Sheet, targetCell string) (string, error)
	AnalyzeData(ctx context.Context, sheet Sheet) (AnalysisResult, error)
}
