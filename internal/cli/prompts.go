package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., TSLA, AAPL, NVDA):",
		Help:    "Please enter a valid stock ticker symbol to research",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForPlatform prompts the user to pick a platform to research
func PromptForPlatform() (string, error) {
	var platform string
	prompt := &survey.Select{
		Message: "Which platform do you want to research?",
		Options: []string{"reddit", "twitter", "tiktok", "youtube"},
		Default: "reddit",
	}

	if err := survey.AskOne(prompt, &platform); err != nil {
		return "", err
	}
	return platform, nil
}
