package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	groups := map[string]string{}
	for _, c := range root.Commands() {
		groups[c.Name()] = c.GroupID
	}

	assert.Equal(t, "getting-started", groups["signup"])
	assert.Equal(t, "getting-started", groups["onboard"])
	assert.Equal(t, "account", groups["login"])
	assert.Equal(t, "account", groups["logout"])
	assert.Equal(t, "account", groups["whoami"])
	for _, name := range []string{"tier", "faq", "team", "about", "image"} {
		assert.Equal(t, "profile", groups[name], name)
	}
	assert.Equal(t, "discover", groups["explore"])
	assert.Equal(t, "discover", groups["show"])
	assert.Contains(t, groups, "version")
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"tier", "list"}, {"tier", "create"}, {"tier", "edit"}, {"tier", "delete"},
		{"faq", "list"}, {"faq", "create"}, {"faq", "edit"}, {"faq", "delete"},
		{"team", "list"}, {"team", "add"}, {"team", "edit"}, {"team", "remove"},
		{"about", "show"}, {"about", "set"},
		{"image", "upload"},
	} {
		c, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[1], c.Name())
	}
}

func TestHelpMentionsGettingStarted(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Getting Started:")
	assert.Contains(t, out.String(), "threef onboard")
	assert.Contains(t, out.String(), "Discover:")
}

func TestEnvironmentAndSessionExclusions(t *testing.T) {
	tests := []struct {
		name            string
		loadEnvironment bool
		requiresSession bool
	}{
		{"version", false, true},
		{"help", false, true},
		{"threef", false, true},
		{"tier", false, true},
		{"login", true, false},
		{"signup", true, false},
		{"logout", true, false},
		{"explore", true, false},
		{"show", true, false},
		{"onboard", true, true},
		{"whoami", true, true},
		{"list", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: tt.name}
			assert.Equal(t, tt.loadEnvironment, isLoadEnvironment(c))
			assert.Equal(t, tt.requiresSession, requiresSession(c))
		})
	}
}
