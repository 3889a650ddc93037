// Package cli implements the quizcraft terminal commands: generate, pools and tags.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/analysis"
	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/export"
	"quizcraft/internal/ingestion"
	"quizcraft/internal/logger"
	"quizcraft/internal/poolfile"
)

const usage = `Usage: quizcraft <command> [flags]

Commands:
  generate   generate a quiz from text, PDF or image files
  pools      draw a quiz from topic question pools
  tags       filter a question bank by tag and score answers

Run "quizcraft <command> --help" for the flags of a command.
`

var errUsage = errors.New("usage")

// App carries the output streams and the generator so tests can swap them.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// NewGenerator builds the question generator for generate; nil selects
	// the heuristic one, or the configured LLM when --llm is set.
	NewGenerator func(ctx context.Context, useLLM bool) (domain.QuestionGenerator, error)

	heading *color.Color
	success *color.Color
	failure *color.Color
}

func New(stdout, stderr io.Writer) *App {
	return &App{
		Stdout:  stdout,
		Stderr:  stderr,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
}

// Run executes args (without the program name) and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "generate":
		err = a.generate(ctx, args[1:])
	case "pools":
		err = a.pools(args[1:])
	case "tags":
		err = a.tags(args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(a.Stdout, usage)
		return 0
	default:
		a.failure.Fprintf(a.Stderr, "unknown command %q\n", args[0])
		fmt.Fprint(a.Stderr, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		a.failure.Fprintf(a.Stderr, "Error: %v\n", err)
		return 1
	}
}

func (a *App) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	return fs
}

func (a *App) generate(ctx context.Context, args []string) error {
	fs := a.flagSet("generate")
	files := fs.StringSlice("file", nil, "input file (txt, pdf, png, jpg); repeatable")
	text := fs.String("text", "", "input text, used when no --file is given")
	n := fs.Int("n", 5, "number of questions")
	types := fs.StringSlice("types", nil, "question types, e.g. fill_blank,multiple_choice")
	difficulty := fs.String("difficulty", "", "easy, medium or hard")
	format := fs.String("format", "md", "export format: md, csv, txt, pdf or png")
	out := fs.String("out", ".", "directory for the exported quiz")
	seed := fs.Int64("seed", 0, "random seed, 0 for time based")
	analyze := fs.Bool("analyze", false, "print keywords, entities and topics")
	shuffle := fs.Bool("shuffle", false, "shuffle questions and options before export")
	useLLM := fs.Bool("llm", false, "generate with the configured LLM, falling back to heuristics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := domain.GenerateRequest{NumQuestions: *n, Seed: *seed}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	for _, raw := range *types {
		t, ok := domain.ParseQuestionType(raw)
		if !ok {
			return fmt.Errorf("unknown question type %q", raw)
		}
		req.QuestionTypes = append(req.QuestionTypes, t)
	}
	if *difficulty != "" {
		d, err := domain.ParseDifficulty(*difficulty)
		if err != nil {
			return err
		}
		req.Difficulty = d
	}

	source, err := a.readSource(ctx, *files, *text)
	if err != nil {
		return err
	}
	if strings.TrimSpace(source) == "" {
		fmt.Fprintln(a.Stdout, domain.MsgEmptyInput)
		return errUsage
	}
	req.SourceText = source

	if *analyze {
		fmt.Fprintln(a.Stdout, analysis.RenderMarkdown(analysis.Analyze(source)))
	}

	generator, err := a.generator(ctx, *useLLM)
	if err != nil {
		return err
	}

	a.heading.Fprintln(a.Stdout, "Generating quiz")
	questions, err := generator.Generate(ctx, req)
	if err != nil {
		return err
	}
	if *shuffle {
		questions = domain.ShuffleQuiz(questions, rand.New(rand.NewSource(req.Seed)))
	}
	for i, q := range questions {
		fmt.Fprintf(a.Stdout, "%d. %s\n", i+1, q.Question)
	}

	f := export.ParseFormat(*format)
	path := filepath.Join(*out, f.Filename())
	if err := writeFile(path, func(w io.Writer) error {
		return export.Write(w, f, export.Quiz{Questions: questions})
	}); err != nil {
		return err
	}
	a.success.Fprintf(a.Stdout, "Quiz downloaded: %s\n", path)
	return nil
}

func (a *App) readSource(ctx context.Context, files []string, text string) (string, error) {
	if len(files) == 0 {
		return text, nil
	}
	uploads := make([]domain.Upload, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		uploads = append(uploads, domain.Upload{Filename: filepath.Base(name), Data: data})
	}
	materials, err := ingestion.NewExtractor(logger.Get()).ExtractAll(ctx, uploads)
	if err != nil {
		return "", err
	}
	return ingestion.JoinText(materials), nil
}

func (a *App) generator(ctx context.Context, useLLM bool) (domain.QuestionGenerator, error) {
	if a.NewGenerator != nil {
		return a.NewGenerator(ctx, useLLM)
	}
	heuristic := quizgen.NewHeuristicGenerator(logger.Get())
	if !useLLM {
		return heuristic, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	model, err := quizgen.NewModel(ctx, cfg.LLM)
	if err != nil {
		logger.Get().Warn("LLM client unavailable, using heuristic generation", zap.Error(err))
		return heuristic, nil
	}
	llm := quizgen.NewLLMGenerator(model, cfg.LLM.Provider, cfg.LLM.Temperature, logger.Get())
	return quizgen.NewFallbackGenerator(llm, heuristic, logger.Get()), nil
}

func (a *App) pools(args []string) error {
	fs := a.flagSet("pools")
	poolsPath := fs.String("pools", "", "pool file (.json or .yaml) mapping topic to questions")
	settings := fs.StringToInt("settings", nil, "questions per topic, e.g. \"NLP=2,Deep Learning=1\"")
	seed := fs.Int64("seed", 0, "random seed, 0 for time based")
	template := fs.String("template", domain.DefaultTemplateFile, "file the settings are saved to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *poolsPath == "" {
		a.failure.Fprintln(a.Stderr, "--pools is required")
		return errUsage
	}

	data, err := os.ReadFile(*poolsPath)
	if err != nil {
		return fmt.Errorf("failed to read pools: %w", err)
	}
	pools, err := poolfile.Parse(*poolsPath, data)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	a.heading.Fprintln(a.Stdout, "Generating quiz")
	quiz, err := domain.GenerateFromPools(pools, domain.PoolSettings(*settings), rand.New(rand.NewSource(s)))
	if err != nil {
		return err
	}
	for i, q := range quiz {
		fmt.Fprintf(a.Stdout, "%d. %s\n", i+1, q)
	}

	path := *template
	if path == "" {
		path = domain.DefaultTemplateFile
	}
	if err := writeFile(path, func(w io.Writer) error {
		return domain.SaveTemplate(w, domain.PoolSettings(*settings))
	}); err != nil {
		return err
	}
	a.success.Fprintf(a.Stdout, "Template saved as %s\n", path)
	return nil
}

func (a *App) tags(args []string) error {
	fs := a.flagSet("tags")
	bankPath := fs.String("bank", "", "JSON file with an array of tagged questions")
	selected := fs.StringSlice("tags", nil, "tags to keep")
	answers := fs.IntSlice("answers", nil, "chosen option index per listed question, for the tag report")
	template := fs.String("template", domain.DefaultTagTemplateFile, "file for the selected tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bankPath == "" {
		a.failure.Fprintln(a.Stderr, "--bank is required")
		return errUsage
	}

	bank, err := loadBank(*bankPath)
	if err != nil {
		return err
	}

	filtered := domain.FilterByTag(bank, *selected)
	a.heading.Fprintf(a.Stdout, "Questions tagged %s\n", strings.Join(*selected, ", "))
	for i, q := range filtered {
		fmt.Fprintf(a.Stdout, "%d. %s\n", i+1, q.Question)
	}

	if len(*answers) > 0 {
		fmt.Fprintln(a.Stdout)
		fmt.Fprint(a.Stdout, domain.TagReport(domain.CalculateTagScores(filtered, *answers)))
	}

	if *template != "" {
		if err := writeFile(*template, func(w io.Writer) error {
			return domain.SaveTagTemplate(w, *selected)
		}); err != nil {
			return err
		}
		a.success.Fprintf(a.Stdout, "Tag template saved as %s\n", *template)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
