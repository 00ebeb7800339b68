package cmd

import (
	"strings"
	"testing"
)

// Test command initialization and registration
func TestCommandsRegistered(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	expectedCommands := map[string]bool{
		"submit":  false,
		"health":  false,
		"loadgen": false,
	}

	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := expectedCommands[name]; ok {
			expectedCommands[name] = true
		}
	}

	for name, found := range expectedCommands {
		if !found {
			t.Errorf("expected command '%s' to be registered with root command", name)
		}
	}
}

func TestSubmitSubcommands(t *testing.T) {
	expected := map[string]bool{"json": false, "text": false}
	for _, cmd := range submitCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected submit subcommand '%s'", name)
		}
	}
}
