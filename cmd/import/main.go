// cmd/import/main.go
//
// 単語コンテンツの一括インポートツール。
// 使い方: import -file words.xlsx [-sheet Sheet1] [-config ./configs]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"lingolearn/internal/config"
	"lingolearn/internal/importer"
	"lingolearn/internal/repository"
	"lingolearn/internal/service"
)

func main() {
	filePath := flag.String("file", "", "path to the .xlsx or .csv file to import")
	sheetName := flag.String("sheet", "Sheet1", "Excel sheet name")
	noHeader := flag.Bool("no-header", false, "treat the first row as data instead of a header")
	configPath := flag.String("config", "./configs", "config directory")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *filePath == "" {
		slog.Error("Missing required flag: -file")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadConfig(*configPath); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}

	readCfg := importer.ReadConfig{
		SheetName:  *sheetName,
		SkipHeader: !*noHeader,
	}
	result, err := importer.ReadWords(*filePath, readCfg)
	if err != nil {
		slog.Error("Failed to read import file", slog.String("file", *filePath), slog.Any("error", err))
		os.Exit(1)
	}
	for _, rowErr := range result.Errors {
		slog.Warn("Skipped row", slog.String("reason", rowErr))
	}

	wordService := service.NewWordService(db, repository.NewGormWordRepository(), repository.NewGormProgressRepository(), nil)
	summary, err := wordService.ImportWords(context.Background(), result.Words)
	if err != nil {
		slog.Error("Import failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Import finished",
		slog.Int("processed", result.Processed),
		slog.Int("created", summary.Created),
		slog.Int("skipped", summary.Skipped),
		slog.Int("row_errors", len(result.Errors)),
	)
}
