// Package panels generates the demo panel texts: profile summary,
// countdown, motivation and floating encouragement messages.
//
// Every function returns plain text. Random choices take a *rand.Rand so
// callers can seed them.
package panels

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/tasks"
)

const (
	minNameLength = 2
	minAge        = 1
	maxAge        = 120

	motivationQuotes  = 3
	motivationPending = 5
)

// Quotes used by Motivation.
var Quotes = []string{
	"The way to get started is to quit talking and begin doing. - Walt Disney",
	"Don't be afraid to give up the good to go for the great. - John D. Rockefeller",
	"Innovation distinguishes between a leader and a follower. - Steve Jobs",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"The only impossible journey is the one you never begin. - Tony Robbins",
}

// FloatingMessages used by FloatingMessage.
var FloatingMessages = []string{
	"Great job staying organized!",
	"You're crushing your goals!",
	"Productivity level: Expert!",
	"Keep up the amazing work!",
	"Task master in action!",
}

// AgeCategory is a profile bracket with its suggested task types.
type AgeCategory struct {
	Name        string
	Suggestions string
}

// Categorize maps an age to its bracket.
func Categorize(age int) AgeCategory {
	switch {
	case age < 13:
		return AgeCategory{"Young Explorer", "homework, chores, and fun activities"}
	case age < 18:
		return AgeCategory{"Teen Achiever", "school projects, part-time jobs, and hobbies"}
	case age < 65:
		return AgeCategory{"Adult Professional", "work tasks, family responsibilities, and personal goals"}
	default:
		return AgeCategory{"Wise Senior", "leisure activities, family time, and health goals"}
	}
}

// Profile validates name and age and returns the profile summary.
func Profile(name, ageText string) (string, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < minNameLength {
		return "", errors.InvalidInput("Please enter a valid name (at least 2 characters)",
			errors.WithMetadata("field", "name"))
	}

	age, err := strconv.Atoi(strings.TrimSpace(ageText))
	if err != nil || age < minAge || age > maxAge {
		return "", errors.InvalidInput("Please enter a valid age (1-120)",
			errors.WithMetadata("field", "age"))
	}

	cat := Categorize(age)
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome, %s!\n", name)
	b.WriteString("Profile Summary:\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Age: %d years old\n", age)
	fmt.Fprintf(&b, "Category: %s\n", cat.Name)
	fmt.Fprintf(&b, "Suggested task types: %s\n\n", cat.Suggestions)
	b.WriteString("You're ready to start managing your tasks!\n")
	return b.String(), nil
}

// Countdown returns the productivity countdown text.
func Countdown() string {
	var b strings.Builder
	b.WriteString("PRODUCTIVITY COUNTDOWN:\n\n")
	for i := 10; i >= 1; i-- {
		fmt.Fprintf(&b, "%d... ", i)
		if i%5 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\nBLAST OFF! Time to be productive!\n\n")

	b.WriteString("BONUS COUNTDOWN (while loop):\n")
	n := 5
	for n > 1 {
		fmt.Fprintf(&b, "%d ", n)
		n--
	}
	b.WriteString("GO! \n")
	return b.String()
}

// Motivation returns three random quotes and up to five pending task
// texts. Quotes are drawn independently, so one may repeat.
func Motivation(rng *rand.Rand, pending []tasks.Task) string {
	var b strings.Builder
	b.WriteString("DAILY MOTIVATION GENERATOR\n")
	b.WriteString(strings.Repeat("═", 50) + "\n\n")

	for i := 0; i < motivationQuotes; i++ {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, Quotes[rng.Intn(len(Quotes))])
	}

	if len(pending) > 0 {
		b.WriteString("YOUR PENDING TASKS:\n")
		b.WriteString(strings.Repeat("─", 25) + "\n")
		for i, t := range pending {
			if i == motivationPending {
				break
			}
			fmt.Fprintf(&b, "• %s\n", t.Text)
		}
		b.WriteString("\nYou got this! One task at a time!\n")
	}
	return b.String()
}

// FloatingMessage returns one random encouragement message.
func FloatingMessage(rng *rand.Rand) string {
	return FloatingMessages[rng.Intn(len(FloatingMessages))]
}
