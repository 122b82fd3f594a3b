package services

import (
	"fmt"
	"strings"

	"roga/models"
)

const scorerSystemPrompt = `You are Roga, a coach that scores QUESTIONS (not answers).
Return ONLY JSON that matches the provided schema.

Scoring dimensions:
- clarity: Is the question unambiguous, concrete, and scoped?
- depth: Does it probe causes, tradeoffs, or constraints (beyond surface)?
- insight: Does it reveal a non-obvious angle or hypothesis?
- openness: Is it open-ended enough to invite meaningful information?

Guidance:
- Be concise. No pep talk, just crisp notes.
- Make the proTip highly practical and tailored to THIS user's question.
- The suggestedUpgrade must be a single, concrete rewrite of the user's question that improves it on the weakest dimension.
- Do NOT leak chain-of-thought, only the JSON fields described by the schema.`

const badgeHint = `Assign a badge if warranted (e.g., "Clarity Star", "Deep Diver", "Insight Spark", "Open Door"); otherwise return the badge with an empty name and label.`

// buildScorePrompt renders the user prompt for daily challenge or session mode.
func buildScorePrompt(req models.ScoreRequest, question, title, text string) string {
	var sb strings.Builder
	if req.SessionMode() {
		round := req.Round
		if round <= 0 {
			round = 1
		}
		fmt.Fprintf(&sb, "SESSION: %s\nSCENE: %s\nPERSONA: %s\nROUND: %d\n", req.SessionTitle, req.SessionScene, req.SessionPersona, round)
		if req.PriorSummary != "" {
			fmt.Fprintf(&sb, "PRIOR_ROUNDS: %s\n", req.PriorSummary)
		}
		fmt.Fprintf(&sb, "\nUSER_QUESTION: %s\n\nTASKS:\n", question)
		fmt.Fprintf(&sb, "1) Score 0-100 overall (integer). Consider this is round %d of a multi-round conversation.\n", round)
		sb.WriteString("2) Produce exactly 4 rubric items (keys: clarity, depth, insight, openness) with short, pointed notes.\n")
		sb.WriteString("3) One sentence proTip tailored to the user's question and conversation context.\n")
		sb.WriteString("4) A single best \"suggestedUpgrade\": rewrite the user's question to be stronger in this conversational context.\n")
		sb.WriteString("5) " + badgeHint)
		return sb.String()
	}

	fmt.Fprintf(&sb, "SCENARIO: %s\nCONTEXT: %s\n\nUSER_QUESTION: %s\n\nTASKS:\n", title, text, question)
	sb.WriteString("1) Score 0-100 overall (integer).\n")
	sb.WriteString("2) Produce exactly 4 rubric items (keys: clarity, depth, insight, openness) with short, pointed notes.\n")
	sb.WriteString("3) One sentence proTip tailored to the user's question.\n")
	sb.WriteString("4) A single best \"suggestedUpgrade\": rewrite the user's question to be stronger.\n")
	sb.WriteString("5) " + badgeHint)
	return sb.String()
}

func buildEvaluatorPrompt(question, characterReply string) string {
	p := "USER_QUESTION: " + question
	if characterReply != "" {
		p += "\n\nCHARACTER_REPLY: " + characterReply
	}
	return p + "\n\nEvaluate the quality of the user's question using the 4 rubric dimensions."
}

const classifierSystemTemplate = `You classify the quality of a learner's QUESTION about a scenario.
Return ONLY JSON that matches the provided schema.

Score each dimension from 1 to 5:
%s.

Be strict. A vague or yes/no question never scores above 2 overall.
List every issue that applies from the allowed vocabulary and the question types you detect, most prominent first.`

// buildClassifierSystem embeds the knowledge base's score legend.
func buildClassifierSystem(legend string) string {
	return fmt.Sprintf(classifierSystemTemplate, legend)
}

func buildClassifierPrompt(scenario, question string) string {
	return fmt.Sprintf("SCENARIO: %s\n\nUSER_QUESTION: %s", scenario, question)
}

const mentorBasePrompt = `You are an experienced mentor who provides thoughtful, substantive guidance. Share insights, perspectives, and practical advice based on your experience. Be engaging and provide concrete details that give the person something meaningful to consider. Keep responses to 3-5 sentences. Never ask questions - only provide insights and advice.`

const mentorCorrection = "\n\nNote: Provide advice and insights without asking any questions. Share your perspective directly."

func buildMentorSystem(persona string) string {
	if persona == "" {
		return mentorBasePrompt
	}
	return persona + "\n\n" + mentorBasePrompt
}

func buildMentorPrompt(p MentorPrompt) string {
	var sb strings.Builder
	sb.WriteString("You're in a mentoring conversation. Here's the context:\n\n")
	fmt.Fprintf(&sb, "Setting: %s\nConversation Round: %d\nFocus Area: %s\n", p.Scene, p.Round, p.TargetSkill)
	if p.PriorSummary != "" {
		fmt.Fprintf(&sb, "Previous context: %s\n", p.PriorSummary)
	}
	fmt.Fprintf(&sb, "\nThe person asked: %q\n\n", p.Question)
	sb.WriteString(`Provide a thoughtful mentor response that:
- Shares specific insights or examples from experience
- Gives them something concrete to think about
- Helps them understand the topic more deeply
- Is encouraging but realistic

Respond naturally as a mentor would, sharing wisdom and perspective.`)
	return sb.String()
}
