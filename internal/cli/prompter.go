package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter collects line-oriented input with styled prompts. It exists
// so the interactive command flows can be tested against fixed input.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadString prompts for one line and returns it trimmed.
func (p *Prompter) ReadString(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s", FormatPrompt(prompt))

	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

// ReadChoice prompts until the user enters one of the valid choices.
func (p *Prompter) ReadChoice(prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.ReadString(prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		fmt.Fprintln(p.out, FormatError("Invalid choice. Please try again."))
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", PromptStyle.Render(prompt))

	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return false, err
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}
