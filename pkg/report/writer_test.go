package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wbharvest/pkg/collector"
)

func sampleCards() []collector.Card {
	loc := time.FixedZone("CST", 8*3600)
	return []collector.Card{
		{
			Scheme: "https://m.weibo.cn/status/4850",
			Post: collector.Post{
				ID:             "4850",
				Text:           "first post",
				RepostsCount:   3,
				CommentsCount:  5,
				AttitudesCount: 7,
				CreatedAt:      time.Date(2024, 1, 2, 10, 30, 0, 0, loc),
			},
		},
		{
			Scheme: "https://m.weibo.cn/status/4851",
			Post: collector.Post{
				ID:             "4851",
				Text:           "second post",
				RepostsCount:   0,
				CommentsCount:  1,
				AttitudesCount: 2,
				CreatedAt:      time.Date(2024, 1, 3, 8, 5, 0, 0, loc),
			},
		},
	}
}

func TestWrite(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	cards := sampleCards()
	filenames := []string{"1-2-1.png", "1-3-1.png"}

	require.NoError(t, Write(cards, filenames, loc, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	// Header row
	for i, header := range sheetHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheet, col+"1")
		require.NoError(t, err)
		assert.Equal(t, header.title, got)
	}

	// First data row
	timeCell, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024年1月2日10時30分", timeCell)

	fileCell, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1-2-1.png", fileCell)

	repostsCell, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "3", repostsCell)

	commentsCell, err := f.GetCellValue(sheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "5", commentsCell)

	likesCell, err := f.GetCellValue(sheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, "7", likesCell)

	// Second data row keeps order
	fileCell3, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1-3-1.png", fileCell3)
}

func TestWriteTimezoneConversion(t *testing.T) {
	// A post stamped in UTC renders in the reference timezone.
	utc := []collector.Card{{
		Post: collector.Post{
			ID:        "1",
			CreatedAt: time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
		},
	}}
	loc := time.FixedZone("CST", 8*3600)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, Write(utc, []string{"1-2-1.png"}, loc, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(f.GetSheetName(0), "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024年1月2日10時0分", got)
}

func TestWriteLengthMismatch(t *testing.T) {
	loc := time.UTC
	path := filepath.Join(t.TempDir(), "report.xlsx")

	err := Write(sampleCards(), []string{"1-2-1.png"}, loc, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}
