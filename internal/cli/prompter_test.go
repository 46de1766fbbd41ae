package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_ReadString(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  hello world  \n"), &out)

	got, err := p.ReadString("Description")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Description")
}

func TestPrompter_ReadChoice(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("maybe\nY\n"), &out)

	got, err := p.ReadChoice("Overwrite or append?", []string{"y", "n"})
	require.NoError(t, err)
	assert.Equal(t, "y", got)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default is no", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Confirm delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
