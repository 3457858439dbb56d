package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "nightwatch",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	return rootCmd
}

func TestNewVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
}

func TestNewReportCmd(t *testing.T) {
	cmd := newReportCmd()
	if cmd.Use != "report" {
		t.Errorf("Use = %q, want %q", cmd.Use, "report")
	}

	// Check required flags exist
	if cmd.Flags().Lookup("text") == nil {
		t.Error("missing --text flag")
	}
	if cmd.Flags().Lookup("location") == nil {
		t.Error("missing --location flag")
	}
	if cmd.Flags().Lookup("severity") == nil {
		t.Error("missing --severity flag")
	}
}

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()
	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.Flags().Lookup("addr") == nil {
		t.Error("missing --addr flag")
	}
}

func TestNewTrainCmd(t *testing.T) {
	cmd := newTrainCmd()
	if cmd.Use != "train" {
		t.Errorf("Use = %q, want %q", cmd.Use, "train")
	}
	for _, flag := range []string{"samples", "output", "epochs", "rate"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
}

func TestInitCmdCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newInitCmd())
	rootCmd.SetArgs([]string{"init", dataDir})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Error("data directory not created")
	}
	cfgPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		t.Error("config.yaml not created")
	}

	// A second init must not overwrite the existing config.
	rootCmd = newTestRootCmd()
	rootCmd.AddCommand(newInitCmd())
	rootCmd.SetArgs([]string{"init", dataDir})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestTrainCmdWritesModel(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "model.json")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.SetArgs([]string{"train", "--output", output, "--epochs", "50"})
	rootCmd.SetOut(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	if _, err := os.Stat(output); os.IsNotExist(err) {
		t.Error("model file not written")
	}
}

func TestTrainCmdRequiresOutputPath(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.SetArgs([]string{"train"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error without output path or data_dir")
	}
}
