package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/quillforge/winnow/internal/core/common"
)

func TestClassifyGeminiErrorRateLimit(t *testing.T) {
	err := classifyGeminiError(&googleapi.Error{Code: 429, Message: "quota exceeded"})
	assert.ErrorIs(t, err, common.ErrRateLimited)
}

func TestClassifyGeminiErrorServerDown(t *testing.T) {
	err := classifyGeminiError(&googleapi.Error{Code: 503, Message: "unavailable"})
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestClassifyGeminiErrorClientErrorPassesThrough(t *testing.T) {
	err := classifyGeminiError(&googleapi.Error{Code: 400, Message: "bad request"})
	assert.NotErrorIs(t, err, common.ErrRateLimited)
	assert.NotErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestClassifyGeminiErrorConnectionRefused(t *testing.T) {
	err := classifyGeminiError(fmt.Errorf("dial tcp: connection refused"))
	assert.ErrorIs(t, err, common.ErrProviderUnavailable)
}

func TestClassifyGeminiErrorKeepsContextErrors(t *testing.T) {
	err := classifyGeminiError(fmt.Errorf("request: %w", context.Canceled))
	assert.NotErrorIs(t, err, common.ErrProviderUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
