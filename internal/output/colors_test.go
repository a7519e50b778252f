package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hgsc.dev/hgsc/internal/resources"
)

func TestStatusLetter(t *testing.T) {
	tests := []struct {
		status resources.Status
		letter string
	}{
		{resources.StatusModified, "M"},
		{resources.StatusAdded, "A"},
		{resources.StatusDeleted, "R"},
		{resources.StatusUntracked, "?"},
		{resources.StatusIgnored, "I"},
		{resources.StatusMissing, "!"},
		{resources.StatusRenamed, "A"},
		{resources.StatusClean, "C"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.letter, StatusLetter(tt.status), tt.status.String())
	}
}

func TestColorizeStatus(t *testing.T) {
	r, err := resources.NewResource(resources.KindWorking, "a.txt", resources.StatusModified, resources.MergeStatusNone, "")
	require.NoError(t, err)

	t.Run("uncolored output passes through", func(t *testing.T) {
		require.Equal(t, "M a.txt", ColorizeStatus(r, "M a.txt", false))
	})

	t.Run("header passes through uncolored", func(t *testing.T) {
		require.Equal(t, "Changes", GroupHeader("Changes", false))
	})
}
