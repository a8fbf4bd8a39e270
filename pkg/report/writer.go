// Package report assembles the spreadsheet correlating each collected
// post with its screenshot filename.
package report

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"wbharvest/pkg/collector"
	errs "wbharvest/pkg/errors"
)

// sheetHeaders lists the report columns with their minimum widths, in
// characters. The report keeps the Japanese column titles of the
// spreadsheet its consumers already know.
var sheetHeaders = []struct {
	title string
	width float64
}{
	{"投稿時間", 8},
	{"配信リンク", 8},
	{"備考", 8},
	{"リーチ数(PV)", 8},
	{"リツート数", 4},
	{"コメント数", 3},
	{"いい数", 3},
}

const characterWidth = 3.0

// Write assembles the report at path, one row per (card, filename)
// pair in order. loc is the reference timezone for the post-time column.
func Write(cards []collector.Card, filenames []string, loc *time.Location, path string) error {
	if len(cards) != len(filenames) {
		return fmt.Errorf("cards/filenames length mismatch: %d vs %d", len(cards), len(filenames))
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	generalStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}
	textStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	for i, header := range sheetHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		width := header.width
		if chars := float64(utf8.RuneCountInString(header.title)); chars > width {
			width = chars
		}
		if err := f.SetColWidth(sheet, col, col, width*characterWidth); err != nil {
			return err
		}

		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, header.title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, generalStyle); err != nil {
			return err
		}
	}

	for row, card := range cards {
		t := card.Post.CreatedAt.In(loc)
		postTime := fmt.Sprintf("%d年%d月%d日%d時%d分",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())

		cols := []string{
			postTime,
			filenames[row],
			"",
			"",
			strconv.Itoa(card.Post.RepostsCount),
			strconv.Itoa(card.Post.CommentsCount),
			strconv.Itoa(card.Post.AttitudesCount),
		}

		for colIdx, content := range cols {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, content); err != nil {
				return err
			}
			style := generalStyle
			if colIdx == 1 {
				style = textStyle
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errs.Wrap(errs.ErrorTypePersist,
			fmt.Sprintf("failed to write report %s", path), err)
	}

	return nil
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return borders
}
