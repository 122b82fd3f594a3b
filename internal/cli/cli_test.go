package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roga/utils"
)

// run executes rogactl with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCommand().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"check", "sanitize", "assess", "token", "kb", "score"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "", "check", "Focus", "on", "retention.")
	require.NoError(t, err)
	assert.Equal(t, "statement\n", out)

	out, _, err = run(t, "", "check", "What now?")
	assert.Error(t, err)
	assert.Contains(t, out, "question")

	out, _, err = run(t, "Plan the launch.\n", "check")
	require.NoError(t, err)
	assert.Equal(t, "statement\n", out)

	_, _, err = run(t, "   ", "check")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	out, errOut, err := run(t, "", "sanitize", "Good point. The budget matters?")
	require.NoError(t, err)
	assert.Equal(t, "Good point. The budget matters.\n", out)
	assert.Empty(t, errOut)

	out, errOut, err = run(t, "", "sanitize", "--fallback", "Focus on retention.", "What else could matter?")
	require.NoError(t, err)
	assert.Equal(t, "Focus on retention.\n", out)
	assert.Contains(t, errOut, "fallback used")

	out, _, err = run(t, "", "sanitize", "-n", "1", "One. Two. Three. Maybe?")
	require.NoError(t, err)
	assert.Equal(t, "One.\n", out)
}

func TestAssess(t *testing.T) {
	out, _, err := run(t, "", "assess", "Is this ok?")
	require.NoError(t, err)
	assert.Contains(t, out, "verdict: capped")
	assert.Contains(t, out, "closed lead-in: is this")
	assert.Contains(t, out, "closed_question, too_vague")
	assert.Contains(t, out, "overall    2")

	out, _, err = run(t, "", "assess", "--issue", "no_context",
		"How could we reduce onboarding churn for new enterprise customers this quarter?")
	require.NoError(t, err)
	assert.Contains(t, out, "verdict: admissible")
	assert.Contains(t, out, "relevance  2")
	assert.Contains(t, out, "overall    5")
}

func TestToken(t *testing.T) {
	out, _, err := run(t, "", "token", "--secret", "cli-secret", "--user", "dev-user", "--ttl", "1h")
	require.NoError(t, err)

	utils.SetJWTSecret("cli-secret")
	t.Cleanup(func() { utils.SetJWTSecret("") })
	claims, err := utils.ParseJWTToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "dev-user", claims.UserID)

	_, _, err = run(t, "", "token", "--secret", "cli-secret")
	assert.Error(t, err)
}

func TestKB(t *testing.T) {
	out, _, err := run(t, "", "kb")
	require.NoError(t, err)
	assert.Contains(t, out, "valid embedded")
	assert.Contains(t, out, "personas:         3")
	assert.Contains(t, out, "cap closed_question")

	bad := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("strict_caps:\n  bogus:\n    overall: 2\n"), 0o644))
	_, _, err = run(t, "", "kb", bad)
	assert.ErrorContains(t, err, "unknown issue")
}
