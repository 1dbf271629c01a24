// Package difficulty turns a free-text answer judgment into exactly one
// steering action for the next question.
package difficulty

import "strings"

// Action is the steering decision for the next question.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionHold     Action = "hold"
	ActionDecrease Action = "decrease"
	ActionRedirect Action = "redirect"
)

// Directive returns the instruction line passed to question generation.
func (a Action) Directive() string {
	switch a {
	case ActionIncrease:
		return "Increase the difficulty: ask a deeper, more advanced question on the same area."
	case ActionDecrease:
		return "Decrease the difficulty: ask a simpler question about the fundamentals."
	case ActionRedirect:
		return "Redirect: politely bring the candidate back to the interview topic with an on-topic question."
	default:
		return "Hold the difficulty: ask a question of similar difficulty on a new area."
	}
}

// Instruction is the resolved steering instruction.
type Instruction struct {
	Action Action
	// Text is the judgment followed by the action directive. Never empty.
	Text string
}

// cueRule lists lowercase cues that select an action.
type cueRule struct {
	action Action
	cues   []string
}

// cueTable is consulted in order. Cues are case-insensitive substrings.
var cueTable = []cueRule{
	{ActionRedirect, []string{
		"off-topic", "off topic", "not on topic", "unrelated to the question",
		"back to the topic", "redirect", "не по теме", "к теме", "вернуть к теме",
	}},
	{ActionIncrease, []string{
		"increase difficulty", "increase the difficulty", "harder", "more difficult",
		"more complex", "more advanced", "raise the difficulty",
		"более сложн", "сложнее", "повысь", "повысить", "усложн",
	}},
	{ActionDecrease, []string{
		"decrease difficulty", "decrease the difficulty", "lower the difficulty",
		"simpler", "easier", "more basic",
		"более прост", "проще", "упрост", "понизь",
	}},
	{ActionHold, []string{
		"same level", "same difficulty", "similar difficulty", "keep the difficulty",
		"hold the difficulty", "maintain the difficulty",
		"том же уровне", "сохрани уровень", "сохраняй уровень", "аналогичн",
	}},
}

// Resolve maps a judgment to exactly one action. The judgment must name a
// single action unambiguously; otherwise, or when it is empty, the result
// is ActionHold.
func Resolve(judgment string) Instruction {
	judgment = strings.TrimSpace(judgment)
	action := classify(judgment)

	text := action.Directive()
	if judgment != "" {
		text = judgment + "\n\n" + text
	}
	return Instruction{Action: action, Text: text}
}

func classify(judgment string) Action {
	if judgment == "" {
		return ActionHold
	}
	lower := strings.ToLower(judgment)

	var found Action
	for _, rule := range cueTable {
		for _, cue := range rule.cues {
			if !strings.Contains(lower, cue) {
				continue
			}
			if found != "" && found != rule.action {
				return ActionHold
			}
			found = rule.action
			break
		}
	}
	if found == "" {
		return ActionHold
	}
	return found
}
