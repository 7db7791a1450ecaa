// askfin answers natural-language questions about the consolidated
// financial dataset from the command line. With -question it runs one
// question; without it, it runs a small built-in set to exercise the
// full pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/dataset"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/history"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/logger"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/queryengine"
)

var defaultQuestions = []string{
	"What was total revenue for the year?",
	"What were Marketing expenses in Q1?",
	"Which department had the highest expenses?",
}

func main() {
	var (
		dataSource = flag.String("data", envOr("DATA_SOURCE", "data/consolidated_master.csv"),
			"dataset CSV: local path or gs://bucket/object (or set DATA_SOURCE)")
		question = flag.String("question", "", "question to answer; empty runs the built-in test questions")
		model    = flag.String("model", envOr("GEMINI_MODEL", queryengine.DefaultModelName), "Gemini model name (or set GEMINI_MODEL)")
	)
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	log := logger.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	ds, err := dataset.Load(ctx, *dataSource)
	if err != nil {
		log.Fatal().Err(err).Str("source", *dataSource).Msg("Failed to load dataset")
	}
	log.Info().Str("source", *dataSource).Int("rows", ds.Len()).Msg("Dataset loaded")

	fmt.Println(dataset.Summarize(ds).String())

	completion, err := queryengine.NewGeminiCompletion(ctx, *model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create completion service")
	}

	engine := queryengine.New(ds, completion)
	chatLog := history.NewLog()

	questions := defaultQuestions
	if *question != "" {
		questions = []string{*question}
	}

	failed := false
	for _, q := range questions {
		entry := chatLog.Append(q, engine.AnswerQuestion(ctx, q))
		printEntry(log, entry)
		if !entry.Answer.Success {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func printEntry(log zerolog.Logger, entry history.Entry) {
	fmt.Println("============================================================")
	fmt.Printf("QUESTION: %s\n", entry.Question)
	fmt.Printf("ANSWER: %s\n", entry.Answer.Answer)
	if entry.Answer.Code != "" {
		fmt.Printf("\nCODE EXECUTED:\n%s\n", entry.Answer.Code)
	}
	if entry.Answer.Explanation != "" {
		fmt.Printf("\nEXPLANATION: %s\n", entry.Answer.Explanation)
	}
	if entry.Answer.Error != "" {
		log.Warn().Str("entry_id", entry.ID).Str("error", entry.Answer.Error).Msg("Question failed")
	}
	fmt.Println()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
