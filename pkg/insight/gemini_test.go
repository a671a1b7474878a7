package insight

import (
	"context"
	"testing"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/logger"
)

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gemini.APIKey = ""

	_, err := NewGeminiClient(context.Background(), cfg, logger.NewTestLogger())
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeAiService))
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Text("first "),
						genai.Text("second"),
					},
				},
			},
		},
	}
	assert.Equal(t, "first second", extractText(resp))
}

func TestExtractTextEmpty(t *testing.T) {
	assert.Equal(t, "", extractText(nil))
	assert.Equal(t, "", extractText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", extractText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}))
}
