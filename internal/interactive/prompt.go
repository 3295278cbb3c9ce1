package interactive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptToken asks for a personal access token on the terminal.
// rejected switches the title to the error prompt shown after a token error.
func PromptToken(rejected bool) (string, error) {
	var token string

	title := "Gimme PAT"
	if rejected {
		title = "PAT error! Gimme your real PAT"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("To use this app, please enter your GitHub Personal Access Token").
				EchoMode(huh.EchoModePassword).
				Validate(validateToken).
				Value(&token),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return strings.TrimSpace(token), nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token cannot be empty")
	}
	return nil
}
