package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"contentgen/internal/apiclient"
	"contentgen/internal/config"
	"contentgen/internal/controller"
	"contentgen/internal/logger"
	"contentgen/internal/models"
	"contentgen/internal/services"
	"contentgen/internal/terminal"
)

type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// common holds the flags every subcommand accepts.
type common struct {
	apiURL  string
	timeout time.Duration
	debug   bool
	copy    bool
	saveDir string
}

func (c *common) register(fs *flag.FlagSet, cfg *config.ClientConfig, withOutput bool) {
	fs.StringVar(&c.apiURL, "api", cfg.APIBaseURL, "Base URL of the API")
	fs.DurationVar(&c.timeout, "timeout", cfg.RequestTimeout, "Per-request timeout")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
	if withOutput {
		fs.BoolVar(&c.copy, "copy", false, "Copy the result to the clipboard")
		fs.StringVar(&c.saveDir, "save", "", "Save the result as a .txt file in this directory")
	}
}

func (c *common) setupLogging(cfg *config.ClientConfig) {
	level := cfg.LogLevel
	if c.debug {
		level = "debug"
	}
	logger.Setup(level, true)
}

func newFlagSet(name string, env *environment) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

// startupHealthTimeout caps the startup health check independently of the
// request timeout, so a hung /health never holds the process open.
var startupHealthTimeout = 5 * time.Second

const msgTypesFailed = "Failed to load content types. Please check your API configuration."

// session bundles what the generate and summarize commands share.
type session struct {
	presenter    *terminal.Presenter
	controller   *controller.Controller
	health       <-chan struct{}
	cancelHealth context.CancelFunc
}

func newSession(ctx context.Context, env *environment, c *common) *session {
	client := apiclient.New(c.apiURL, c.timeout)
	presenter := terminal.NewPresenter(env.stdout, env.stderr)
	ctrl := controller.New(client, presenter, controller.WithTimeout(c.timeout), controller.WithLogger(log.Logger))

	healthTimeout := startupHealthTimeout
	if c.timeout > 0 && c.timeout < healthTimeout {
		healthTimeout = c.timeout
	}
	healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	return &session{
		presenter:    presenter,
		controller:   ctrl,
		health:       ctrl.StartHealthCheck(healthCtx),
		cancelHealth: cancel,
	}
}

// finish applies the utility actions to the displayed result and waits for
// the startup health check so its warning is not lost on exit.
func (s *session) finish(form controller.Form, c *common, err error) int {
	<-s.health
	s.cancelHealth()
	if err != nil {
		return exitError
	}

	code := exitOK
	if c.copy {
		if err := s.presenter.Copy(form); err != nil {
			log.Debug().Err(err).Msg("copy failed")
			code = exitError
		}
	}
	if c.saveDir != "" {
		if _, err := s.presenter.Download(form, c.saveDir); err != nil {
			log.Debug().Err(err).Msg("download failed")
			code = exitError
		}
	}
	return code
}

func runGenerate(ctx context.Context, env *environment, args []string) int {
	cfg := config.LoadClient()
	fs := newFlagSet("generate", env)
	var c common
	c.register(fs, cfg, true)
	contentType := fs.String("type", models.ContentBlog, "Content type: "+contentTypeIDs())
	topic := fs.String("topic", "", "Topic or brief (remaining arguments are used when empty)")
	tone := fs.String("tone", models.ToneProfessional, "Tone: "+strings.Join(models.Tones, ", "))
	length := fs.String("length", models.LengthMedium, "Length: "+strings.Join(models.Lengths, ", "))
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	c.setupLogging(cfg)

	if *topic == "" {
		*topic = strings.Join(fs.Args(), " ")
	}

	s := newSession(ctx, env, &c)
	err := s.controller.Generate(ctx, models.GenerateRequest{
		ContentType: *contentType,
		Topic:       *topic,
		Tone:        *tone,
		Length:      *length,
	})
	return s.finish(controller.FormGenerate, &c, err)
}

func runSummarize(ctx context.Context, env *environment, args []string) int {
	cfg := config.LoadClient()
	fs := newFlagSet("summarize", env)
	var c common
	c.register(fs, cfg, true)
	text := fs.String("text", "", "Text to summarize")
	file := fs.String("file", "", "Read text from a .txt, .md, .pdf or .docx file")
	youtube := fs.String("youtube", "", "Summarize the transcript of a YouTube video (URL or ID)")
	summaryType := fs.String("type", models.SummaryBrief, "Summary type: "+strings.Join(models.SummaryTypes, ", "))
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	c.setupLogging(cfg)

	input, err := readSummarizeInput(ctx, env, *text, *file, *youtube)
	if err != nil {
		fmt.Fprintf(env.stderr, "✗ %v\n", err)
		return exitError
	}

	s := newSession(ctx, env, &c)
	err = s.controller.Summarize(ctx, models.SummarizeRequest{
		Text:        input,
		SummaryType: *summaryType,
	})
	return s.finish(controller.FormSummarize, &c, err)
}

var errMultipleSources = errors.New("use only one of --text, --file and --youtube")

func readSummarizeInput(ctx context.Context, env *environment, text, file, youtube string) (string, error) {
	set := 0
	for _, v := range []string{text, file, youtube} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return "", errMultipleSources
	}

	var (
		doc *services.Document
		err error
	)
	switch {
	case text != "":
		return text, nil
	case youtube != "":
		return services.NewTranscriptSource().Transcript(ctx, youtube)
	case file != "":
		doc, err = services.NewTextSource().FromPath(file)
	default:
		doc, err = services.NewTextSource().FromReader("stdin", env.stdin)
	}
	if err != nil {
		return "", err
	}
	fmt.Fprintf(env.stderr, "Read %d words from %s\n", doc.Words, doc.Source)
	return doc.Text, nil
}

func runHealth(ctx context.Context, env *environment, args []string) int {
	cfg := config.LoadClient()
	fs := newFlagSet("health", env)
	var c common
	c.register(fs, cfg, false)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	c.setupLogging(cfg)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := apiclient.New(c.apiURL, c.timeout).Health(ctx)
	if err != nil {
		log.Error().Err(err).Msg("API health check failed")
		terminal.NewPresenter(env.stdout, env.stderr).Notify(controller.MsgHealthWarning, controller.KindWarning)
		return exitError
	}

	fmt.Fprintf(env.stdout, "status: %v\nservice: %v\napi_configured: %v\n",
		status["status"], status["service"], status["api_configured"])
	return exitOK
}

func runTypes(ctx context.Context, env *environment, args []string) int {
	cfg := config.LoadClient()
	fs := newFlagSet("types", env)
	var c common
	c.register(fs, cfg, false)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	c.setupLogging(cfg)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	types, err := apiclient.New(c.apiURL, c.timeout).ContentTypes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load content types")
		fmt.Fprintln(env.stderr, "✗ "+msgTypesFailed)
		return exitError
	}

	fmt.Fprintln(env.stdout, "Content types:")
	for _, ct := range types.ContentTypes {
		fmt.Fprintf(env.stdout, "  %-10s %s\n", ct.ID, ct.Name)
	}
	fmt.Fprintf(env.stdout, "Tones:         %s\n", strings.Join(types.Tones, ", "))
	fmt.Fprintf(env.stdout, "Lengths:       %s\n", strings.Join(types.Lengths, ", "))
	fmt.Fprintf(env.stdout, "Summary types: %s\n", strings.Join(types.SummaryTypes, ", "))
	if types.Note != "" {
		fmt.Fprintln(env.stdout, types.Note)
	}
	return exitOK
}

func contentTypeIDs() string {
	ids := make([]string, 0, len(models.ContentTypes))
	for _, ct := range models.ContentTypes {
		ids = append(ids, ct.ID)
	}
	return strings.Join(ids, ", ")
}
