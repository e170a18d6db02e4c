package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"campushub/internal/models"
	"campushub/internal/repository"
)

const faqMatchThreshold = 2

const faqFallbackAnswer = "Sorry, I don't have an answer for that yet. " +
	"Try asking about events, registrations, clubs or placements, " +
	"or contact the student office."

// FAQService matches free-text questions against the stored FAQ entries
// with a keyword-overlap score.
type FAQService struct {
	faq *repository.FAQRepository
}

func NewFAQService(faq *repository.FAQRepository) *FAQService {
	return &FAQService{faq: faq}
}

// Answer scores every FAQ entry against the message and returns the best
// match, or the fallback when nothing clears the threshold.
func (s *FAQService) Answer(ctx context.Context, message string) (*models.ChatResponse, error) {
	entries, err := s.faq.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load FAQ entries: %w", err)
	}

	normalized := normalizeText(message)
	words := significantWords(normalized)

	var best *models.FAQEntry
	bestScore := 0
	for i := range entries {
		score := scoreEntry(&entries[i], normalized, words)
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}

	if best == nil || bestScore < faqMatchThreshold {
		return &models.ChatResponse{
			Answer:  faqFallbackAnswer,
			Matched: false,
		}, nil
	}

	return &models.ChatResponse{
		Answer:   best.Answer,
		Matched:  true,
		Question: &best.Question,
		Category: &best.Category,
	}, nil
}

// scoreEntry weighs curated keywords over incidental word overlap:
// 3 points per stored keyword contained in the message, 1 point per
// shared significant word of the stored question.
func scoreEntry(entry *models.FAQEntry, normalized string, words map[string]bool) int {
	score := 0

	for _, keyword := range strings.Split(entry.Keywords, ",") {
		keyword = normalizeText(keyword)
		if keyword != "" && strings.Contains(normalized, keyword) {
			score += 3
		}
	}

	for word := range significantWords(normalizeText(entry.Question)) {
		if words[word] {
			score++
		}
	}

	return score
}

// normalizeText lowercases the text and strips everything that is not a
// letter, digit or space.
func normalizeText(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// significantWords keeps words longer than two characters so articles
// and prepositions never score.
func significantWords(normalized string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}
