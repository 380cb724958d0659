package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/bytedance/sonic"
	"go.alis.build/utils/retry"

	"smartSheet/contracts"
)

const AnalysisContextRows = 20

const AnalysisContextCols = 10

const geminiAttempts = 3

// NoopAssistant is used when no model is configured
type NoopAssistant struct{}

func (a *NoopAssistant) SuggestFormula(ctx context.Context, prompt string, sheet contracts.Sheet, targetCell string) (string, error) {
	return "", nil
}

func (a *NoopAssistant) AnalyzeData(ctx context.Context, sheet contracts.Sheet) (contracts.AnalysisResult, error) {
	return contracts.AnalysisResult{Insights: []string{}}, nil
}

// FallbackAnalysis is served when the assistant fails
func FallbackAnalysis() contracts.AnalysisResult {
	return contracts.AnalysisResult{
		Summary:  "Could not analyze data at this time. Please check your API key.",
		Insights: []string{"Ensure your data is numeric and structured correctly."},
	}
}

type GeminiAssistant struct {
	apiKey     string
	model      string
	endpoint   string
	codec      contracts.AddressCodec
	client     *http.Client
	retrySleep time.Duration
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiAssistant(apiKey string, model string, endpoint string, codec contracts.AddressCodec) *GeminiAssistant {
	return &GeminiAssistant{
		apiKey:     apiKey,
		model:      model,
		endpoint:   strings.TrimRight(endpoint, "/"),
		codec:      codec,
		client:     &http.Client{Timeout: time.Second * 30},
		retrySleep: time.Millisecond * 500,
	}
}

func (a *GeminiAssistant) SuggestFormula(ctx context.Context, prompt string, sheet contracts.Sheet, targetCell string) (string, error) {
	headers := make([]string, 0, AnalysisContextCols)
	for col := 0; col < AnalysisContextCols; col++ {
		headers = append(headers, a.codec.ColumnLetters(col)+": "+sheet[a.codec.Encode(0, col)].ComputedValue.String())
	}

	request := fmt.Sprintf(`You are an Excel expert. The user wants a formula for cell %s.

Context (Column Headers):
%s

User Request: "%s"

Return ONLY the formula starting with '='.
Example Output: =SUM(A1:A5)
Do not return markdown or explanation.`, targetCell, strings.Join(headers, ", "), prompt)

	text, err := a.generate(ctx, request, false)
	if err != nil {
		return "", err
	}

	return NormalizeSuggestion(text), nil
}

func (a *GeminiAssistant) AnalyzeData(ctx context.Context, sheet contracts.Sheet) (contracts.AnalysisResult, error) {
	result := contracts.AnalysisResult{}

	csvData, err := GridToCSV(a.codec, sheet, AnalysisContextRows, AnalysisContextCols)
	if err != nil {
		return result, err
	}

	request := fmt.Sprintf(`You are a data analyst. Analyze the following CSV data from a spreadsheet.

CSV Data:
%s
Provide a brief summary of what this data represents and 3 key insights or trends.
Return the response in JSON format with keys: "summary" (string) and "insights" (array of strings).
Do not include markdown code blocks. Just the raw JSON.`, csvData)

	text, err := a.generate(ctx, request, true)
	if err != nil {
		return result, err
	}

	if err = json.UnmarshalString(stripCodeFences(text), &result); err != nil {
		return contracts.AnalysisResult{}, fmt.Errorf("%w: %v", contracts.AssistantResponseError, err)
	}
	if result.Insights == nil {
		result.Insights = []string{}
	}

	return result, nil
}

func (a *GeminiAssistant) generate(ctx context.Context, prompt string, jsonResponse bool) (string, error) {
	request := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}
	if jsonResponse {
		request.GenerationConfig = &geminiGenerationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.endpoint, a.model)

	return retry.Retry(geminiAttempts, a.retrySleep, func() (string, error) {
		httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", retry.NewNonRetryableError(err)
		}
		httpRequest.Header.Set("Content-Type", "application/json")
		httpRequest.Header.Set("x-goog-api-key", a.apiKey)

		response, err := a.client.Do(httpRequest)
		if err != nil {
			if ctx.Err() != nil {
				return "", retry.NewNonRetryableError(err)
			}
			return "", err
		}
		defer response.Body.Close()

		body, err := io.ReadAll(response.Body)
		if err != nil {
			return "", err
		}

		if response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500 {
			return "", fmt.Errorf("%w: HTTP %s", contracts.AssistantResponseError, response.Status)
		}
		if response.StatusCode != http.StatusOK {
			return "", retry.NewNonRetryableError(
				fmt.Errorf("%w: HTTP %s: %s", contracts.AssistantResponseError, response.Status, string(body)),
			)
		}

		var decoded geminiResponse
		if err = json.Unmarshal(body, &decoded); err != nil {
			return "", retry.NewNonRetryableError(fmt.Errorf("%w: %v", contracts.AssistantResponseError, err))
		}

		if len(decoded.Candidates) == 0 {
			return "", retry.NewNonRetryableError(errors.Join(contracts.AssistantResponseError, errors.New("empty response")))
		}

		var text strings.Builder
		for _, part := range decoded.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
		return text.String(), nil
	})
}

// NormalizeSuggestion strips markdown fences and makes sure a non-empty suggestion starts with "="
func NormalizeSuggestion(text string) string {
	formula := stripCodeFences(text)
	if formula == "" {
		return ""
	}

	if !strings.HasPrefix(formula, FormulaPrefix) {
		formula = FormulaPrefix + formula
	}
	return formula
}

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "plaintext", "")
	text = strings.TrimPrefix(strings.TrimSpace(text), "json\n")
	return strings.TrimSpace(text)
}

// GridToCSV renders column letters, then the computed values of the rows x cols window
func GridToCSV(codec contracts.AddressCodec, sheet contracts.Sheet, rows int, cols int) (string, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	header := make([]string, cols)
	for col := range header {
		header[col] = codec.ColumnLetters(col)
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, values := range gridValues(codec, sheet, rows, cols) {
		record := make([]string, len(values))
		for col, value := range values {
			record[col] = value.String()
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return buffer.String(), writer.Error()
}
