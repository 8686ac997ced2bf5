package utils

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt
var ErrAborted = errors.New("aborted")

// SelectPrompt runs the prompt and returns the selected item
func SelectPrompt(prompt *promptui.Select) (int, string, error) {
	i, res, err := prompt.Run()
	if err != nil {
		return -1, "", ErrAborted
	}
	return i, res, nil
}

// StringPrompt runs the prompt and returns the input
func StringPrompt(prompt *promptui.Prompt) (string, error) {
	res, err := prompt.Run()
	if err != nil {
		return "", ErrAborted
	}
	return res, nil
}
