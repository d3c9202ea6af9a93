package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReviewPrompt_SectionsInOrder(t *testing.T) {
	prompt := NewPromptBuilder().BuildReviewPrompt("RESUME BODY", "JD BODY")

	headings := []string{
		"Relevance Score",
		"Experience Alignment:",
		"Skills Match:",
		"Education:",
		"Summary Alignment:",
		"Nice-to-Have Skills:",
		"Missing Skills/Projects/Certifications:",
		"Areas for Improvement",
		"Verdict:",
		"Suggestions for Student Improvement:",
		"Overall Brief Summary:",
		"Resume:\nRESUME BODY",
		"Job Description:\nJD BODY",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(prompt, h)
		require.NotEqual(t, -1, idx, "missing %q", h)
		assert.Greater(t, idx, last, "%q out of order", h)
		last = idx
	}
}

func TestBuildReviewPrompt_Deterministic(t *testing.T) {
	pb := NewPromptBuilder()
	assert.Equal(t, pb.BuildReviewPrompt("100% match", "jd"), pb.BuildReviewPrompt("100% match", "jd"))
	assert.Contains(t, pb.BuildReviewPrompt("100% match", "jd"), "100% match")
}

func TestReviewEngine_ReturnsTextVerbatim(t *testing.T) {
	gemini := &fakeGemini{text: "  85\nExperience Alignment:\n- solid\n"}
	engine := NewReviewEngine(gemini, time.Minute, quietLogger())

	got, err := engine.Review(context.Background(), "Python Developer", "Hiring Python devs")
	require.NoError(t, err)
	assert.Equal(t, "  85\nExperience Alignment:\n- solid\n", got)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Python Developer")
	assert.True(t, gemini.hadDeadline)
}

func TestReviewEngine_UpstreamFailure(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("quota exceeded")}
	engine := NewReviewEngine(gemini, time.Minute, quietLogger())

	_, err := engine.Review(context.Background(), "resume", "jd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Len(t, gemini.prompts, 1, "no retry")
}
