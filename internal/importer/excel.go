// internal/importer/excel.go
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lingolearn/internal/model"

	"github.com/xuri/excelize/v2"
)

// ReadConfig はインポートファイルの読み取り設定です。
// 列の並びは固定: 単語 / 定義 / カテゴリ / 発音 / 例文 / 音声URL (後半は省略可)。
type ReadConfig struct {
	SheetName  string // Excelのシート名
	SkipHeader bool   // 先頭行をヘッダーとして読み飛ばす
}

// DefaultReadConfig は既定の読み取り設定を返します。
func DefaultReadConfig() ReadConfig {
	return ReadConfig{
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// ReadResult はファイル読み取りの結果です。行単位のエラーは読み取りを止めず収集します。
type ReadResult struct {
	Words     []*model.Word
	Processed int
	Errors    []string
}

// ReadWords はExcel (.xlsx) またはCSVから単語を読み取ります。
// 永続化は行いません。保存は service.WordService.ImportWords が担当します。
func ReadWords(filePath string, cfg ReadConfig) (*ReadResult, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".csv" {
		return readFromCSV(filePath, cfg)
	}
	return readFromExcel(filePath, cfg)
}

func readFromExcel(filePath string, cfg ReadConfig) (*ReadResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", cfg.SheetName, err)
	}

	result := &ReadResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		result.Processed++
		word, rowErr := rowToWord(row)
		if rowErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, rowErr))
			continue
		}
		result.Words = append(result.Words, word)
	}
	return result, nil
}

func readFromCSV(filePath string, cfg ReadConfig) (*ReadResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // 行ごとの列数のばらつきを許容

	result := &ReadResult{Errors: make([]string, 0)}
	line := 0
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, readErr))
			continue
		}
		if line == 1 && cfg.SkipHeader {
			continue
		}
		result.Processed++
		word, rowErr := rowToWord(row)
		if rowErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, rowErr))
			continue
		}
		result.Words = append(result.Words, word)
	}
	return result, nil
}

func rowToWord(row []string) (*model.Word, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	term := col(0)
	definition := col(1)
	if term == "" {
		return nil, fmt.Errorf("missing term")
	}
	if definition == "" {
		return nil, fmt.Errorf("missing definition for term %q", term)
	}

	category := col(2)
	if category == "" {
		category = "general"
	}

	return &model.Word{
		Term:            term,
		Definition:      definition,
		Category:        category,
		Pronunciation:   col(3),
		ExampleSentence: col(4),
		AudioURL:        col(5),
	}, nil
}
