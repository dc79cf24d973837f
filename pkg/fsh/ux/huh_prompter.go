package ux

import (
	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter using charmbracelet/huh
type HuhPrompter struct{}

func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func (p *HuhPrompter) Confirm(message string) (bool, error) {
	var result bool

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&result).
		Run()

	return result, err
}

// StaticPrompter answers every confirmation with the same value. It backs
// --force and non-interactive runs.
type StaticPrompter struct {
	Answer bool
}

func (p StaticPrompter) Confirm(string) (bool, error) {
	return p.Answer, nil
}
