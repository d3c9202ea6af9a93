package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const reviewTemperature = 0.3

// ReviewEngine turns a resume and a job description into the model's review.
type ReviewEngine interface {
	Review(ctx context.Context, resumeText, jobDescription string) (string, error)
}

type reviewEngine struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	log           *logrus.Logger
}

func NewReviewEngine(geminiService GeminiService, timeout time.Duration, log *logrus.Logger) ReviewEngine {
	return &reviewEngine{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		log:           log,
	}
}

// Review makes a single model call bounded by the configured timeout and
// returns the text unchanged.
func (r *reviewEngine) Review(ctx context.Context, resumeText, jobDescription string) (string, error) {
	prompt := r.promptBuilder.BuildReviewPrompt(resumeText, jobDescription)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.log.WithField("prompt_chars", len(prompt)).Debug("Requesting resume review")

	result, err := r.geminiService.GenerateText(ctx, prompt, reviewTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: review generation failed: %v", ErrUpstream, err)
	}

	return result, nil
}
