package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"answer-relay-service/internal/core/domain"
	"answer-relay-service/internal/testutil"
)

func newTestAnswerService(mode domain.AnswerMode) (*AnswerService, *testutil.MockInferenceClient) {
	client := new(testutil.MockInferenceClient)
	client.On("Name").Return("mock").Maybe()
	return NewAnswerService(newTestExtractor(0), client, "", mode), client
}

// ============================================================================
// Service Creation Tests
// ============================================================================

func TestNewAnswerService_Defaults(t *testing.T) {
	svc := NewAnswerService(newTestExtractor(0), nil, "", "bogus")

	assert.Equal(t, DefaultAnswerColumn, svc.column)
	assert.Equal(t, domain.ModeCombined, svc.Mode())
}

// ============================================================================
// Answer Tests
// ============================================================================

func TestAnswer_EmptyQuestion(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeCombined)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: q})
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	}
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswer_QuestionPassedUnmodified(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeShortCircuit)
	client.On("Generate", mock.Anything, " What is 6 x 7? ", "gpt2").Return("42", nil)

	res, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: " What is 6 x 7? ", Model: "gpt2"})
	require.NoError(t, err)

	assert.Equal(t, "42", res.LLMAnswer)
	assert.Nil(t, res.ExtractedAnswer)
	assert.True(t, res.Inferred)
	assert.Equal(t, domain.ModeShortCircuit, res.Mode)
	client.AssertExpectations(t)
}

func TestAnswer_ShortCircuitSkipsInference(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeShortCircuit)

	res, err := svc.Answer(context.Background(), domain.AnswerRequest{
		Question: "What is in the file?",
		Archive:  testutil.CSVZip(t, "answer\n42\n7\n"),
	})
	require.NoError(t, err)

	require.NotNil(t, res.ExtractedAnswer)
	assert.Equal(t, "42", *res.ExtractedAnswer)
	assert.False(t, res.Inferred)
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswer_CombinedRunsBoth(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeCombined)
	client.On("Generate", mock.Anything, "What is in the file?", "").Return("a number", nil)

	res, err := svc.Answer(context.Background(), domain.AnswerRequest{
		Question: "What is in the file?",
		Archive:  testutil.CSVZip(t, "id,answer\n1,42\n"),
	})
	require.NoError(t, err)

	require.NotNil(t, res.ExtractedAnswer)
	assert.Equal(t, "42", *res.ExtractedAnswer)
	assert.Equal(t, "a number", res.LLMAnswer)
	assert.Equal(t, "What is in the file?", res.Question)
	client.AssertExpectations(t)
}

func TestAnswer_ExtractionFailureStopsBeforeInference(t *testing.T) {
	tests := []struct {
		name    string
		archive []byte
		want    error
	}{
		{name: "bad zip", archive: []byte("nope"), want: domain.ErrInvalidArchive},
		{name: "empty zip", archive: testutil.BuildZip(t), want: domain.ErrEmptyArchive},
		{
			name:    "wrong file type",
			archive: testutil.BuildZip(t, testutil.ZipEntry{Name: "a.json", Content: []byte("{}")}),
			want:    domain.ErrUnsupportedFileType,
		},
		{name: "missing column", archive: testutil.CSVZip(t, "result\n42\n"), want: domain.ErrColumnNotFound},
		{name: "no rows", archive: testutil.CSVZip(t, "answer\n"), want: domain.ErrMalformedTable},
	}

	for _, mode := range []domain.AnswerMode{domain.ModeShortCircuit, domain.ModeCombined} {
		for _, tt := range tests {
			t.Run(string(mode)+"/"+tt.name, func(t *testing.T) {
				svc, client := newTestAnswerService(mode)

				_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: "q", Archive: tt.archive})
				assert.ErrorIs(t, err, tt.want)
				client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	}
}

func TestAnswer_CustomColumn(t *testing.T) {
	client := new(testutil.MockInferenceClient)
	svc := NewAnswerService(newTestExtractor(0), client, "result", domain.ModeShortCircuit)

	res, err := svc.Answer(context.Background(), domain.AnswerRequest{
		Question: "q",
		Archive:  testutil.CSVZip(t, "answer,result\nx,y\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "y", *res.ExtractedAnswer)
}

func TestAnswer_InferenceErrorPassesThrough(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeCombined)
	upstream := errors.Join(domain.ErrInferenceServiceUnavailable, errors.New("timeout"))
	client.On("Generate", mock.Anything, "q", "").Return("", upstream)

	_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: "q"})
	assert.ErrorIs(t, err, domain.ErrInferenceServiceUnavailable)
}

func TestAnswer_NilBackend(t *testing.T) {
	svc := NewAnswerService(newTestExtractor(0), nil, "", domain.ModeCombined)

	_, err := svc.Answer(context.Background(), domain.AnswerRequest{Question: "q"})
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.False(t, svc.BackendAvailable(context.Background()))
	assert.Equal(t, "", svc.Backend())
}

// ============================================================================
// ListModels Tests
// ============================================================================

func TestListModels_DelegatesToBackend(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeShortCircuit)
	client.On("Models").Return(domain.ModelList{
		DefaultModel:    "flan-t5-large",
		AvailableModels: []string{"flan-t5-base", "gpt2", "flan-t5-large"},
	})

	list := svc.ListModels()
	assert.Equal(t, "flan-t5-large", list.DefaultModel)
	assert.Contains(t, list.AvailableModels, list.DefaultModel)
}

func TestListModels_NilBackend(t *testing.T) {
	svc := NewAnswerService(newTestExtractor(0), nil, "", domain.ModeCombined)
	assert.Empty(t, svc.ListModels().AvailableModels)
}

func TestBackendAvailable(t *testing.T) {
	svc, client := newTestAnswerService(domain.ModeCombined)
	client.On("IsAvailable", mock.Anything).Return(true)

	assert.True(t, svc.BackendAvailable(context.Background()))
	assert.Equal(t, "mock", svc.Backend())
}
