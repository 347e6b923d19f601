package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePageRange(t *testing.T) {
	end, err := validatePageRange(2, 4, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, end)
}

func TestValidatePageRange_ClampsEnd(t *testing.T) {
	end, err := validatePageRange(3, 99, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, end)
}

func TestValidatePageRange_BadStart(t *testing.T) {
	_, err := validatePageRange(0, 3, 5)
	assert.Error(t, err)

	_, err = validatePageRange(-2, 3, 5)
	assert.Error(t, err)
}

func TestValidatePageRange_EndBeforeStart(t *testing.T) {
	_, err := validatePageRange(4, 2, 5)
	assert.Error(t, err)
}

func TestValidatePageRange_StartBeyondDocument(t *testing.T) {
	_, err := validatePageRange(6, 8, 5)
	assert.Error(t, err)
}

func TestDerivedName(t *testing.T) {
	assert.Equal(t, "report-pages-2-5.pdf", derivedName("report.pdf", "pages-2-5"))
	assert.Equal(t, "scan-watermarked.pdf", derivedName("scan", "watermarked"))
	assert.Equal(t, "document-stamped.pdf", derivedName("", "stamped"))
	assert.Equal(t, "document-stamped.pdf", derivedName(".pdf", "stamped"))
}
