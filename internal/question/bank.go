package question

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/difficulty"
)

// FirstQuestion opens every interview.
const FirstQuestion = "Tell me about your experience with the core technologies for this position."

// Greeting is the fixed opening line of an interview.
func Greeting(name, role string) string {
	return fmt.Sprintf("Hello, %s! I am running a technical interview for the %s position. Let's begin.", name, role)
}

// Elaborate is shown when the candidate submits an empty answer.
const Elaborate = "Please give a more detailed answer."

var bank = map[difficulty.Action][]string{
	difficulty.ActionIncrease: {
		"How would you design a %s component to handle a tenfold increase in load?",
		"Describe the hardest production incident you have debugged as a %s and how you found the root cause.",
		"What trade-offs would you weigh when choosing between consistency and availability in your %s work?",
		"How would you measure and improve the performance of a system you own as a %s?",
	},
	difficulty.ActionHold: {
		"Which tools do you rely on most as a %s, and why?",
		"How do you test your work as a %s before it reaches production?",
		"Describe a recent project where you worked as a %s. What was your part?",
		"How do you keep your code or configuration maintainable as a %s?",
		"How do you review a teammate's change as a %s?",
		"Which metrics tell you that the systems you work on as a %s are healthy?",
	},
	difficulty.ActionDecrease: {
		"What basic concepts should every %s understand?",
		"Can you explain, in simple terms, a task you do often as a %s?",
		"What does version control give a team, and how do you use it as a %s?",
		"Which fundamental skills did you learn first on the way to becoming a %s?",
		"What is the difference between a bug and a feature request in your work as a %s?",
	},
	difficulty.ActionRedirect: {
		"Let's return to the interview topic: what does a typical working day of a %s look like for you?",
		"Coming back to the position: which technical problem as a %s are you proudest of solving?",
	},
}

// spillOrder is the order other banks are tried once the action's own bank
// has nothing left.
var spillOrder = []difficulty.Action{
	difficulty.ActionHold,
	difficulty.ActionDecrease,
	difficulty.ActionIncrease,
	difficulty.ActionRedirect,
}

// Fallback returns a deterministic bank question for the action. The number
// picks the starting point in the bank and questions already in asked are
// skipped. When the action's bank is used up the other banks are tried in
// turn. A repeat is returned only when every bank is exhausted.
func Fallback(action difficulty.Action, role string, number int, asked []string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "engineer"
	}
	if number < 0 {
		number = -number
	}

	seen := make(map[string]bool, len(asked))
	for _, q := range asked {
		seen[normalize(q)] = true
	}

	var first string
	for _, a := range bankOrder(action) {
		qs := bank[a]
		for i := range qs {
			q := fmt.Sprintf(qs[(number+i)%len(qs)], role)
			if first == "" {
				first = q
			}
			if !seen[normalize(q)] {
				return q
			}
		}
	}
	return first
}

func bankOrder(action difficulty.Action) []difficulty.Action {
	var order []difficulty.Action
	if _, ok := bank[action]; ok {
		order = append(order, action)
	}
	for _, a := range spillOrder {
		if a != action {
			order = append(order, a)
		}
	}
	return order
}

func normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
