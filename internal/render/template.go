// Package render produces human-readable text from computed influence
// scores. It is the deterministic fallback renderer: no external
// dependencies, same input always yields the same prose.
package render

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// effectThreshold is the minimum factor magnitude worth a clause of prose.
const effectThreshold = 0.3

// maxAdvice caps the advice and follow-up lists of a reading.
const maxAdvice = 3

// InfluencedText appends to the base text one clause per factor whose
// magnitude exceeds the threshold, naming the contributing card and whether
// it enhances or tempers the meaning. Below-threshold readings keep the
// base text unchanged.
func InfluencedText(baseText string, factors []domain.InfluenceFactor, cardNames map[string]string) string {
	var clauses []string
	for _, f := range factors {
		if math.Abs(f.Effect) <= effectThreshold {
			continue
		}
		name := cardNames[f.SourceCardID]
		if name == "" {
			name = f.SourceCardID
		}
		if f.Effect > 0 {
			clauses = append(clauses, "enhanced by "+name)
		} else {
			clauses = append(clauses, "tempered by "+name)
		}
	}
	if len(clauses) == 0 {
		return baseText
	}
	return fmt.Sprintf("%s This meaning is %s.", baseText, strings.Join(clauses, ", "))
}

// JournalPrompt returns a reflective writing prompt for one card.
func JournalPrompt(card domain.Card, influenced bool) string {
	var prompt string
	if card.IsMajor() {
		prompt = fmt.Sprintf("Reflect on the deeper meaning of %s in your current situation.", card.Name)
	} else {
		prompt = fmt.Sprintf("Consider how %s relates to your daily experiences.", card.Name)
	}
	if influenced {
		prompt += " Pay attention to how other cards in your reading modify this card's meaning."
	}
	return prompt
}

// Summary condenses a whole reading into one sentence.
func Summary(cards []domain.InfluencedCard) string {
	switch len(cards) {
	case 0:
		return "No cards were drawn for this reading."
	case 1:
		return fmt.Sprintf("This reading centers on %s, suggesting %s", cards[0].CardName, truncate(cards[0].InfluencedText, 100))
	default:
		names := make([]string, len(cards))
		for i, c := range cards {
			names[i] = c.CardName
		}
		return fmt.Sprintf("This reading involves %s, creating a narrative of interacting influences.", strings.Join(names, ", "))
	}
}

// Advice derives up to three pieces of practical advice from the final
// polarity scores.
func Advice(cards []domain.InfluencedCard) []string {
	var advice []string
	for _, c := range cards {
		switch {
		case c.PolarityScore > 0.5:
			advice = append(advice, fmt.Sprintf("Embrace the positive energy of %s", c.CardName))
		case c.PolarityScore < -0.5:
			advice = append(advice, fmt.Sprintf("Address the challenges indicated by %s", c.CardName))
		default:
			advice = append(advice, fmt.Sprintf("Consider the balanced message of %s", c.CardName))
		}
		if len(advice) == maxAdvice {
			break
		}
	}
	return advice
}

// FollowUps derives up to three reflective questions from the reading.
func FollowUps(cards []domain.InfluencedCard) []string {
	var questions []string
	for _, c := range cards {
		questions = append(questions,
			fmt.Sprintf("What does %s mean to you in your current situation?", c.CardName),
			fmt.Sprintf("How do you feel about the message of %s?", c.CardName),
		)
		if len(questions) >= maxAdvice {
			break
		}
	}
	if len(questions) > maxAdvice {
		questions = questions[:maxAdvice]
	}
	return questions
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
