package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Code        string
	Suggestions []string
	Help        string
}

func (e *CliError) Error() string {
	return e.Text
}

// FromError converts a classified error into a CliError. The kind becomes the code.
func FromError(err *merrors.Error) *CliError {
	cliErr := &CliError{Text: err.Error(), Code: err.Kind.String(), Help: err.Help}
	switch err.Kind {
	case merrors.KindNetwork:
		cliErr.Suggestions = []string{"Check your internet connection", "Try again in a few minutes"}
	case merrors.KindTimeout:
		cliErr.Suggestions = []string{"Finish the login in the browser window that opened"}
	case merrors.KindAuth:
		cliErr.Suggestions = []string{"Run `rls-installer login` again"}
	}
	return cliErr
}

func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}
