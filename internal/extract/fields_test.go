package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/gemmascan/internal/common"
)

func TestNormalizeFieldsTrimsAndPreservesOrder(t *testing.T) {
	got, err := NormalizeFields([]string{" Invoice number ", "Date", " Total"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoice number", "Date", "Total"}, got)
}

func TestNormalizeFieldsRejectsEmpty(t *testing.T) {
	_, err := NormalizeFields([]string{"Total", "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestNormalizeFieldsRejectsDuplicates(t *testing.T) {
	_, err := NormalizeFields([]string{"Total", " Total "})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestNormalizeFieldsRejectsEmptyList(t *testing.T) {
	_, err := NormalizeFields(nil)
	require.Error(t, err)
}
