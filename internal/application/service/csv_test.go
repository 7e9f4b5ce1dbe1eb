package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSamplesCSV(t *testing.T) {
	csv := "Sample ID,Weight,Unit\n" +
		"Widget-A,150,grams\n" +
		"Widget-B,5.5,ounces\n"

	rows, err := ParseSamplesCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Widget-A", rows[0].ID)
	assert.Equal(t, "150", rows[0].Weight)
	assert.Equal(t, "grams", rows[0].Unit)
}

func TestParseSamplesCSVHeaderIsFlexible(t *testing.T) {
	// Different order, different case, padding and an extra column.
	csv := "Notes, UNIT ,weight, sample id \n" +
		"ignored,grams,150,Widget-A\n"

	rows, err := ParseSamplesCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget-A", rows[0].ID)
	assert.Equal(t, "150", rows[0].Weight)
	assert.Equal(t, "grams", rows[0].Unit)
}

func TestParseSamplesCSVMissingColumns(t *testing.T) {
	_, err := ParseSamplesCSV(strings.NewReader("Sample ID,Weight\nWidget-A,150\n"))
	require.ErrorIs(t, err, ErrMissingCSVColumns)
	assert.Contains(t, err.Error(), "unit")
}

func TestParseSamplesCSVEmpty(t *testing.T) {
	_, err := ParseSamplesCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestParseSamplesCSVPadsShortRows(t *testing.T) {
	csv := "Sample ID,Weight,Unit\n" +
		"Widget-A\n" +
		"Widget-B,150,grams\n"

	rows, err := ParseSamplesCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Widget-A", rows[0].ID)
	assert.Empty(t, rows[0].Weight)
	assert.Empty(t, rows[0].Unit)
	assert.Equal(t, "Widget-B", rows[1].ID)
}

func TestImportSamplesCSVCountsShortRowsAsSkipped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	csv := "Sample ID,Weight,Unit\n" +
		"Widget-A\n" + // missing weight and unit
		"Widget-B,150\n" + // missing unit
		"Widget-C,5.5,ounces\n"

	summary, err := svc.ImportSamplesCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)

	results, err := svc.ListSampleResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Widget-C", results[0].Sample.ID)
}

func TestImportSamplesCSV(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddSample(ctx, "Widget-A", 100, "grams")
	require.NoError(t, err)

	csv := "Sample ID,Weight,Unit\n" +
		"Widget-A,150,grams\n" + // duplicate of a stored sample
		"Widget-B,5.5,ounces\n" +
		"Widget-C,abc,grams\n" + // bad weight
		"Widget-D,2.3,stones\n" + // bad unit
		"Widget-E,0.75,kilograms\n"

	summary, err := svc.ImportSamplesCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 3, summary.Skipped)

	results, err := svc.ListSampleResults(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestImportSamplesCSVBadHeader(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportSamplesCSV(context.Background(), strings.NewReader("id,grams\nWidget-A,150\n"))
	assert.ErrorIs(t, err, ErrMissingCSVColumns)
}
