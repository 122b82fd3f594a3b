package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"roga/internal/llm"
	"roga/internal/logger"
	"roga/internal/qi"
	"roga/internal/qikb"
	"roga/models"
)

const (
	mentorTemperature = 0.4
	retryTemperature  = 0.3
)

// safeFallback holds no lead-in word and no '?', so the detector never flags it.
const safeFallback = "Thank you for raising this. Progress here comes from careful analysis paired with practical action. Start from the specific context of your situation and the outcomes that signal real progress."

// MentorPrompt is the context for one mentor reply.
type MentorPrompt struct {
	Persona      models.Persona
	Scene        string
	Round        int
	TargetSkill  string
	Question     string
	PriorSummary string
}

// MentorReply is a question-free mentor statement and how it was obtained.
type MentorReply struct {
	Text         string
	Retried      bool
	Sanitized    bool
	UsedFallback bool
	Latency      time.Duration
}

// Mentor generates persona replies that never ask the user a question.
type Mentor struct {
	gen          llm.Generator
	kb           *qikb.KB
	detector     *qi.Detector
	maxSentences int
	log          *logrus.Logger
}

func NewMentor(gen llm.Generator, kb *qikb.KB, detector *qi.Detector, maxSentences int) *Mentor {
	if detector == nil {
		detector = qi.NewDetector(nil)
	}
	if maxSentences <= 0 {
		maxSentences = qi.DefaultMaxSentences
	}
	return &Mentor{gen: gen, kb: kb, detector: detector, maxSentences: maxSentences, log: logger.Get("services")}
}

// Reply never fails: generator errors degrade to fixed statements and a
// reply that still reads as a question after sanitizing or length limiting
// is replaced.
func (m *Mentor) Reply(ctx context.Context, p MentorPrompt) MentorReply {
	start := time.Now()
	persona, _ := m.kb.Persona(string(p.Persona))
	req := llm.Request{
		System:      buildMentorSystem(persona),
		Prompt:      buildMentorPrompt(p),
		Temperature: mentorTemperature,
	}
	skill := strings.ToLower(m.kb.Label(firstNonEmpty(p.TargetSkill, defaultSkill)))

	var out MentorReply
	text, err := m.generate(ctx, req)
	if err != nil {
		m.log.WithError(err).Warn("mentor generation failed")
		text = fmt.Sprintf("This touches on an important aspect of %s. From my observation, success in this area often comes down to consistent practice and learning from both successes and setbacks. The key lies in developing your own approach while staying open to feedback.", skill)
	} else if text == "" {
		text = fmt.Sprintf("That's an insightful question about %s. In my experience, the most effective approach often starts with understanding the underlying dynamics at play. Each situation brings unique challenges that require thoughtful consideration of multiple perspectives.", skill)
	}

	if m.detector.IsQuestion(text) {
		out.Retried = true
		retry := req
		retry.Prompt += mentorCorrection
		retry.Temperature = retryTemperature
		if again, err := m.generate(ctx, retry); err != nil {
			m.log.WithError(err).Warn("mentor retry failed, keeping first reply")
		} else if again != "" {
			text = again
		}
	}

	fallback := m.fallback(skill)
	st := m.detector.EnsureStatement(text, m.maxSentences, fallback)
	out.Sanitized, out.UsedFallback = st.Sanitized, st.UsedFallback
	text = qi.LimitSentences(strings.TrimSpace(st.Text), m.maxSentences)

	// Truncating can terminate a lead-in line with a period, so check again.
	if text == "" || m.detector.IsQuestion(text) {
		text = fallback
		out.UsedFallback = true
	}
	out.Text = text
	out.Latency = time.Since(start)
	return out
}

func (m *Mentor) generate(ctx context.Context, req llm.Request) (string, error) {
	if m.gen == nil {
		return "", llm.ErrNotConfigured
	}
	text, err := m.gen.Generate(ctx, req)
	return strings.TrimSpace(text), err
}

// fallback personalizes the last-resort statement with the skill label,
// unless doing so would make it read as a question.
func (m *Mentor) fallback(skill string) string {
	text := fmt.Sprintf("You've raised an important point about %s. In my experience, the most effective approach combines careful analysis with practical action. Start from the specific context of your situation and the outcomes that signal real progress here.", skill)
	if m.detector.IsQuestion(text) {
		return safeFallback
	}
	return text
}
