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
		"generate": false,
		"analyze":  false,
		"config":   false,
	}

	for _, cmd := range rootCmd.Commands() {
		// Extract command name (handles "analyze <log.csv>" -> "analyze")
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

func TestConfigSubcommands(t *testing.T) {
	if configCmd == nil {
		t.Fatal("configCmd should not be nil")
	}

	hasInit := false
	hasShow := false
	for _, cmd := range configCmd.Commands() {
		switch cmd.Use {
		case "init":
			hasInit = true
		case "show":
			hasShow = true
		}
	}
	if !hasInit {
		t.Error("config should have an init subcommand")
	}
	if !hasShow {
		t.Error("config should have a show subcommand")
	}
}

func TestGenerateFlags(t *testing.T) {
	for _, flag := range []string{
		"output", "format", "count", "max-events",
		"self-loops", "ping-pongs", "gaps", "errors",
		"incomplete-rate", "seed", "with-resources",
	} {
		if generateCmd.Flags().Lookup(flag) == nil {
			t.Errorf("generate should define the --%s flag", flag)
		}
	}
}

func TestAnalyzeRequiresOneArg(t *testing.T) {
	if analyzeCmd.Args == nil {
		t.Fatal("analyze should constrain its positional arguments")
	}
	if err := analyzeCmd.Args(analyzeCmd, []string{}); err == nil {
		t.Error("analyze should reject a missing log path")
	}
	if err := analyzeCmd.Args(analyzeCmd, []string{"log.csv"}); err != nil {
		t.Errorf("analyze should accept exactly one log path: %v", err)
	}
}
