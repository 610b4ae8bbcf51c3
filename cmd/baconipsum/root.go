package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/NivBraz/baconipsum/internal/app"
	"github.com/NivBraz/baconipsum/internal/config"
	"github.com/NivBraz/baconipsum/internal/logger"
	"github.com/NivBraz/baconipsum/internal/models"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// UsageError reports bad command-line input. It is raised before any
// network call is made.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

type options struct {
	textType       string
	paras          int
	startWithLorem string
	format         string
	sentences      int

	configFile string
	output     string
	progress   bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "Error: %v\nRun '%s --help' for usage.\n", err, cmd.Name())
		return exitUsage
	}
	fmt.Fprintf(stderr, "Failed to retrieve Bacon Ipsum data: %v\n", err)
	return exitFailure
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "baconipsum",
		Short: "Retrieve Bacon Ipsum text from the Bacon Ipsum API",
		Long: `Retrieve placeholder text from the Bacon Ipsum API and report
how many words and characters it contains.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&o.textType, "type", "t", string(models.AllMeat), "type of bacon text to generate (all-meat/meat-and-filler)")
	flags.IntVarP(&o.paras, "paras", "p", 5, "number of paragraphs to generate")
	flags.StringVarP(&o.startWithLorem, "start-with-lorem", "l", "1", "whether to start with \"Bacon ipsum dolor amet\" (0/1)")
	flags.StringVarP(&o.format, "format", "f", string(models.FormatJSON), "format of the response (json/text/html)")
	flags.IntVarP(&o.sentences, "sentences", "s", 0, "number of sentences (this overrides paragraphs)")

	flags.StringVarP(&o.configFile, "config", "c", "", "config file (YAML)")
	flags.StringVarP(&o.output, "output", "o", "", "output style (plain/json), default from config")
	flags.BoolVar(&o.progress, "progress", false, "show a spinner on stderr while fetching")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging on stderr")

	return cmd
}

func (o *options) run(cmd *cobra.Command, _ []string) error {
	params, err := o.requestParameters(cmd.Flags())
	if err != nil {
		return &UsageError{Err: err}
	}

	cfg, err := o.loadConfig(cmd.Flags())
	if err != nil {
		return &UsageError{Err: err}
	}

	if err := logger.Init(cfg.Log, o.stderr); err != nil {
		return &UsageError{Err: fmt.Errorf("failed to init logger: %w", err)}
	}

	application, err := app.New(cfg, o.stderr)
	if err != nil {
		return &UsageError{Err: err}
	}

	result, err := application.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	return render(o.stdout, result, cfg)
}

// requestParameters validates the API flags into RequestParameters.
func (o *options) requestParameters(flags *pflag.FlagSet) (models.RequestParameters, error) {
	typ, err := models.ParseTextType(o.textType)
	if err != nil {
		return models.RequestParameters{}, err
	}
	format, err := models.ParseFormat(o.format)
	if err != nil {
		return models.RequestParameters{}, err
	}

	var startWithLorem bool
	switch o.startWithLorem {
	case "1":
		startWithLorem = true
	case "0":
		startWithLorem = false
	default:
		return models.RequestParameters{}, fmt.Errorf("invalid start-with-lorem %q: must be 0 or 1", o.startWithLorem)
	}

	var sentences *int
	if flags.Changed("sentences") {
		sentences = &o.sentences
	}

	return models.NewRequestParameters(typ, o.paras, startWithLorem, format, sentences)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *options) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	if flags.Changed("output") {
		cfg.Output.Format = o.output
	}
	if o.progress {
		cfg.Output.ShowProgress = true
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// render writes a successful result. Output is assembled in full before
// anything reaches w.
func render(w io.Writer, result *models.Result, cfg *config.Config) error {
	var buf bytes.Buffer

	switch cfg.Output.Format {
	case "json":
		var (
			out []byte
			err error
		)
		if cfg.Output.PrettyPrint {
			out, err = json.MarshalIndent(result, "", "    ")
		} else {
			out, err = json.Marshal(result)
		}
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		buf.Write(out)
		buf.WriteByte('\n')
	default:
		data, err := formatData(result.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(&buf, "Data: %s\nWords: %d\nCharacters: %d\n", data, result.Words, result.Characters)
	}

	_, err := buf.WriteTo(w)
	return err
}

func formatData(body models.ResponseBody) (string, error) {
	switch b := body.(type) {
	case models.PlainText:
		return string(b), nil
	case models.HTMLFragment:
		return string(b), nil
	case models.JSONStringArray:
		out, err := json.Marshal(b)
		if err != nil {
			return "", fmt.Errorf("failed to marshal data: %w", err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("unsupported response body %T", body)
}
