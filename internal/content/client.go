// Package content talks to the generative model that writes flashcards and quizzes.
package content

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultQuizLength = 5
)

// Request is a single structured-output generation call.
type Request struct {
	Model  string
	Prompt string
	Schema *genai.Schema
}

// Generator returns the raw text of a structured-output generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Options configures a Client.
type Options struct {
	Model      string
	QuizLength int
	Retry      RetryPolicy
}

// Client fetches country facts and quiz questions. It keeps no state between calls.
type Client struct {
	gen        Generator
	logger     *zap.Logger
	model      string
	quizLength int
	retry      RetryPolicy

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(max time.Duration) time.Duration
}

// NewClient creates a Client. Zero option values fall back to defaults.
func NewClient(gen Generator, logger *zap.Logger, opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.QuizLength <= 0 {
		opts.QuizLength = DefaultQuizLength
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}

	return &Client{
		gen:        gen,
		logger:     logger,
		model:      opts.Model,
		quizLength: opts.QuizLength,
		retry:      opts.Retry,
		sleep:      sleepContext,
		jitter:     randomJitter,
	}
}

// FetchCountryFacts asks the model for the flashcard profile of a country.
func (c *Client) FetchCountryFacts(ctx context.Context, countryName string) (*entities.CountryFacts, error) {
	text, err := c.generateWithRetry(ctx, Request{
		Model:  c.model,
		Prompt: countryPrompt(countryName),
		Schema: countrySchema,
	})
	if err != nil {
		c.logger.Error("failed to fetch country facts",
			zap.String("country", countryName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch country facts for %q: %w", countryName, err)
	}

	facts, err := DecodeCountryFacts(text)
	if err != nil {
		c.logger.Error("failed to decode country facts",
			zap.String("country", countryName),
			zap.Error(err),
		)
		return nil, err
	}

	return facts, nil
}

// FetchQuizQuestions asks the model for a new quiz about European countries.
func (c *Client) FetchQuizQuestions(ctx context.Context) ([]entities.QuizQuestion, error) {
	text, err := c.generateWithRetry(ctx, Request{
		Model:  c.model,
		Prompt: quizPrompt(c.quizLength),
		Schema: quizSchema,
	})
	if err != nil {
		c.logger.Error("failed to fetch quiz", zap.Error(err))
		return nil, fmt.Errorf("fetch quiz questions: %w", err)
	}

	questions, err := DecodeQuizQuestions(text, c.quizLength)
	if err != nil {
		c.logger.Error("failed to decode quiz", zap.Error(err))
		return nil, err
	}

	return questions, nil
}

// generateWithRetry retries only overloaded calls; everything else is returned as is.
func (c *Client) generateWithRetry(ctx context.Context, req Request) (string, error) {
	attempts := c.retry.attempts()

	for i := 0; ; i++ {
		text, err := c.gen.Generate(ctx, req)
		if err == nil {
			return text, nil
		}

		if !IsOverloaded(err) {
			return "", err
		}

		if i == attempts-1 {
			return "", fmt.Errorf("%w after %d attempts: %w", ErrOverloaded, attempts, err)
		}

		delay := c.retry.Backoff(i) + c.jitter(c.retry.MaxJitter)
		c.logger.Warn("model overloaded, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("delay", delay),
		)

		if err := c.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("wait before retry: %w", err)
		}
	}
}

func countryPrompt(countryName string) string {
	return fmt.Sprintf(`Generate a fun, educational flashcard profile for the country %q.
Target audience: 5th grade students.
Tone: Enthusiastic, clear, and educational.
Ensure the fun fact is genuinely interesting for a kid.
Include exactly two landmarks and two traditional foods.`, countryName)
}

func quizPrompt(n int) string {
	return fmt.Sprintf(`Generate %d fun and educational multiple-choice quiz questions about European countries.
Cover topics like capitals, famous food, landmarks, and languages.
Each question has exactly 4 options.
Target audience: 5th grade students.
Make the options plausible but clearly distinguishable.`, n)
}
