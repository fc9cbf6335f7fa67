package cmd

import (
	"bytes"
	"strings"
	"testing"

	"travel-admin/feature/links"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOutput(t *testing.T) {
	v := links.ParentLinks{ParentID: 12, ChildIDs: []uint{5, 9}}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printOutput(&buf, "json", v))
		assert.JSONEq(t, `{"parent_id":12,"child_ids":[5,9],"link_ids":null}`, buf.String())
	})

	t.Run("YAML keeps JSON field names", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printOutput(&buf, "yaml", v))
		assert.Contains(t, buf.String(), "parent_id: 12")
		assert.Contains(t, buf.String(), "child_ids:")
	})

	t.Run("Unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, printOutput(&buf, "xml", v))
		assert.Empty(t, buf.String())
	})
}

func TestConfirm(t *testing.T) {
	t.Cleanup(func() { linksYes = false })

	tests := []struct {
		name  string
		yes   bool
		input string
		want  bool
	}{
		{"Typed yes", false, "yes\n", true},
		{"Typed yes with spaces", false, "  yes  \n", true},
		{"Typed no", false, "no\n", false},
		{"No input", false, "", false},
		{"Flag", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linksYes = tt.yes
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "remove links"))
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestLinksCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range linksCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"kinds", "list", "show", "reconcile", "import", "export", "history"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	found, _, err := RootCmd.Find([]string{"links", "reconcile"})
	require.NoError(t, err)
	assert.Equal(t, linksReconcileCmd, found)
	assert.NotNil(t, found.Flags().Lookup("dry-run"))
}

func TestLinksKindsCommand(t *testing.T) {
	var out bytes.Buffer
	linksOutput = "json"
	linksKindsCmd.SetOut(&out)
	t.Cleanup(func() { linksKindsCmd.SetOut(nil) })

	require.NoError(t, linksKindsCmd.RunE(linksKindsCmd, nil))
	assert.Contains(t, out.String(), `"kind": "hotel-amenity"`)
}
