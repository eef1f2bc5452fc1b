package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line args with stdin as standard input.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GOPHERPROOF_ENV", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("GOPHERPROOF_LOG_LEVEL", "error")
	outputPath, startIndex, verifyProof, metricsPath, configPath = "", 0, false, "", ""
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckArgs(t *testing.T) {
	out, _, err := run(t, "", "check", "(A -> (B -> A))", "(a->b)")
	require.NoError(t, err)
	assert.Equal(t, "(A -> (B -> A)) is tautology: true\n(a -> b) is tautology: false\n", out)
}

func TestCheckStdin(t *testing.T) {
	out, errOut, err := run(t, "(a | (!a))\n\n(a -> \n((!(!a)) -> a)\n", "check")
	require.NoError(t, err)
	assert.Equal(t, "(a | (!a)) is tautology: true\n((!(!a)) -> a) is tautology: true\n", out)
	assert.Contains(t, errOut, `could not parse "(a ->"`, "the error is reported and the next line is read")
}

func TestCheckLongLine(t *testing.T) {
	long := "(a " + strings.Repeat(" ", 100<<10) + "-> a)"
	out, _, err := run(t, long+"\n(b -> b)\n", "check")
	require.NoError(t, err)
	assert.Equal(t, "(a -> a) is tautology: true\n(b -> b) is tautology: true\n", out)
}

func TestCheckTooManyVariables(t *testing.T) {
	t.Setenv("GOPHERPROOF_CHECK_MAX_VARIABLES", "1")
	out, errOut, err := run(t, "", "check", "(a -> (b -> a))", "(a -> a)")
	require.NoError(t, err)
	assert.Contains(t, errOut, "could not check (a -> (b -> a)): too many variables")
	assert.Equal(t, "(a -> a) is tautology: true\n", out)
}

func TestProve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	metrics := filepath.Join(t.TempDir(), "metrics.prom")
	_, _, err := run(t, "", "prove", "--verify", "--start", "1", "-o", path, "--metrics-file", metrics, "(A -> A)")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "last formula: (A -> A)", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "F_1 = "), lines[3])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "F_"))
	assert.Contains(t, lines[len(lines)-1], " = (A -> A)     basis: (MP) for ")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "gopherproof_adequacy_proofs_total")
}

func TestProveStdout(t *testing.T) {
	out, _, err := run(t, "", "prove", "((!(!A)) -> A)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "last formula: ((!(!A)) -> A)\n\n\nF_0 = "))
}

func TestProveErrors(t *testing.T) {
	_, _, err := run(t, "", "prove", "(A -> B)")
	assert.ErrorContains(t, err, "not a tautology")

	_, _, err = run(t, "", "prove", "(A -> ")
	assert.ErrorContains(t, err, "could not parse formula")

	_, _, err = run(t, "", "prove")
	assert.Error(t, err)
}
