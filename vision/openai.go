package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
)

const openaiModel = "gpt-5.2"

// GPT-5.2 pricing (per million tokens)
const (
	openaiInputPricePerMillion  = 1.75  // $1.75 per 1M input tokens
	openaiOutputPricePerMillion = 14.00 // $14.00 per 1M output tokens
)

// OpenAIAnalyzer uses OpenAI's vision API for garment detection.
type OpenAIAnalyzer struct {
	client openai.Client
}

// NewOpenAIAnalyzer creates a new OpenAI-based analyzer.
// It uses the OPENAI_API_KEY environment variable for authentication.
func NewOpenAIAnalyzer() *OpenAIAnalyzer {
	return &OpenAIAnalyzer{client: openai.NewClient()}
}

// DetectGarments implements the Analyzer interface using OpenAI.
func (o *OpenAIAnalyzer) DetectGarments(ctx context.Context, imageData []byte, mimeType string, hint PhotoHint) (*AnalysisResult, error) {
	// Encode image as base64 data URL
	b64Data := base64.StdEncoding.EncodeToString(imageData)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, b64Data)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openaiModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(buildPrompt(hint)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	text := resp.Choices[0].Message.Content
	detection, err := parseDetectionResponse(text)
	if err != nil {
		return nil, err
	}

	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		CostUSD:      calculateOpenAICost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	}

	return &AnalysisResult{Detection: detection, Usage: usage}, nil
}

func calculateOpenAICost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * openaiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * openaiOutputPricePerMillion
	return inputCost + outputCost
}
