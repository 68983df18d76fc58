package ui

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/huh"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// ParseDateInput parses a YYYY-MM-DD date typed by the user
func ParseDateInput(s string) (civil.Date, error) {
	s = strings.TrimSpace(sanitizeInput(s))
	if s == "" {
		return civil.Date{}, fmt.Errorf("date cannot be empty")
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return d, nil
}

func validateDate(s string) error {
	_, err := ParseDateInput(s)
	return err
}

// PromptForDate prompts for a single day
func PromptForDate() (civil.Date, error) {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("Day to fetch the most viewed articles for").
				Placeholder("2024-02-16").
				Value(&input).
				Validate(validateDate),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return civil.Date{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	return ParseDateInput(input)
}

// PromptForRange prompts for the first and last day of a range
func PromptForRange() (from, to civil.Date, err error) {
	var fromInput, toInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Description("First day (inclusive)").
				Placeholder("2024-02-01").
				Value(&fromInput).
				Validate(validateDate),
			huh.NewInput().
				Title("To").
				Description("Last day (inclusive)").
				Placeholder("2024-02-16").
				Value(&toInput).
				Validate(validateDate),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	if from, err = ParseDateInput(fromInput); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	if to, err = ParseDateInput(toInput); err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return from, to, nil
}

// PromptForMaxResults prompts for the number of rows per day
func PromptForMaxResults(current int) (int, error) {
	choice := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Results per day").
				Description("The cleaned ranking keeps at most 10 articles").
				Options(
					huh.NewOption("3", 3),
					huh.NewOption("5", 5),
					huh.NewOption("10", 10),
				).
				Value(&choice),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return current, fmt.Errorf("prompt cancelled: %w", err)
	}
	return choice, nil
}
