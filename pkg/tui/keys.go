package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Action is a user command triggered from the keyboard
type Action int

const (
	ActionNone Action = iota
	ActionStep
	ActionRefresh
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionStep:
		return "step"
	case ActionRefresh:
		return "refresh"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// KeyBinding documents the keys bound to an action
type KeyBinding struct {
	Keys        []string
	Action      Action
	Description string
}

// KeyBindings lists every key handled by the terminal UI
var KeyBindings = []KeyBinding{
	{Keys: []string{"s", "space"}, Action: ActionStep, Description: "execute one instruction and refresh"},
	{Keys: []string{"r"}, Action: ActionRefresh, Description: "refresh every panel"},
	{Keys: []string{"q", "esc"}, Action: ActionQuit, Description: "quit"},
}

// KeyBindingsHint returns the short key reference shown in the status bar
func KeyBindingsHint() string {
	hints := make([]string, 0, len(KeyBindings))
	for _, binding := range KeyBindings {
		hints = append(hints, binding.Keys[0]+": "+binding.Action.String())
	}
	return strings.Join(hints, "  ")
}

func keyAction(event *tcell.EventKey) Action {
	switch event.Key() {
	case tcell.KeyEscape:
		return ActionQuit
	case tcell.KeyRune:
		switch event.Rune() {
		case 's', ' ':
			return ActionStep
		case 'r':
			return ActionRefresh
		case 'q':
			return ActionQuit
		}
	}

	return ActionNone
}

// KeyBindingsDoc documents the terminal UI key bindings
func KeyBindingsDoc() string {
	var builder strings.Builder

	builder.WriteString("Key bindings\n")
	for _, binding := range KeyBindings {
		builder.WriteString(fmt.Sprintf("  %-12s %s\n", strings.Join(binding.Keys, ", "), binding.Description))
	}

	return builder.String()
}
