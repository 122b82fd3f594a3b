package models

import (
	"roga/internal/llm"
	"roga/internal/qi"
)

// ScorecardSchema constrains the evaluator's JSON output. Every field is
// required so OpenAI can enforce it strictly; an empty badge name means none.
func ScorecardSchema() *llm.Schema {
	item := llm.Object(map[string]*llm.Schema{
		"key":    llm.Enum("rubric dimension", RubricKeys...),
		"label":  llm.String("display label"),
		"status": llm.Enum("verdict", StatusGood, StatusWarn, StatusBad),
		"note":   llm.String("short, pointed note"),
	}, "key", "label", "status", "note")

	return llm.Object(map[string]*llm.Schema{
		"score":            llm.Integer("overall question quality", 0, 100),
		"rubric":           llm.Array(item, 4, 4),
		"proTip":           llm.String("one practical sentence tailored to the question"),
		"suggestedUpgrade": llm.String("a single concrete rewrite of the question"),
		"badge": llm.Object(map[string]*llm.Schema{
			"name":  llm.String("badge name, empty when no badge is warranted"),
			"label": llm.String("badge caption, empty when no badge is warranted"),
		}, "name", "label"),
	}, "score", "rubric", "proTip", "suggestedUpgrade", "badge")
}

// DetectedSkills is the vocabulary of question types the classifier reports.
var DetectedSkills = []string{"clarifying", "probing", "follow_up", "comparative", "open_question", "closed_question"}

// ClassificationSchema constrains the classifier's JSON output.
func ClassificationSchema() *llm.Schema {
	score := func(desc string) *llm.Schema { return llm.Integer(desc, 1, 5) }

	return llm.Object(map[string]*llm.Schema{
		"scores": llm.Object(map[string]*llm.Schema{
			"clarity":   score("is the question unambiguous and scoped"),
			"depth":     score("does it probe causes or tradeoffs"),
			"relevance": score("does it target what matters in the scenario"),
			"empathy":   score("does it consider others' perspectives"),
			"overall":   score("overall question quality"),
		}, "clarity", "depth", "relevance", "empathy", "overall"),
		"issues":          llm.Array(llm.Enum("quality issue", qi.KnownIssues...), 0, 6),
		"detected_skills": llm.Array(llm.Enum("question type", DetectedSkills...), 1, 3),
	}, "scores", "issues", "detected_skills")
}
