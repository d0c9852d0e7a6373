package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lwch/logging"
	"github.com/urfave/cli/v2"
	"github.com/vdparikh/tea"
	"github.com/vdparikh/tea/internal/config"
	"github.com/vdparikh/tea/tinktea"
)

// Version is reported by --version. Release builds set it with -ldflags.
var Version = "dev"

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if c.IsSet("base-key") {
		cfg.BaseKey = c.String("base-key")
	}
	if c.IsSet("offset") {
		cfg.Offset = c.Int("offset")
	}
	if c.IsSet("keyset") {
		cfg.Keyset = c.String("keyset")
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newCodec builds the codec selected by the configuration: a keyset file if
// one is given, otherwise the base key and offset.
func newCodec(cfg *config.Config) (tea.Codec, error) {
	var opts []tea.Option
	if cfg.Verbose {
		opts = append(opts, tea.WithLogger(logging.Info))
	}

	if cfg.Keyset == "" {
		c, err := tea.New(cfg.BaseKey, cfg.Offset, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	f, err := os.Open(cfg.Keyset)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	handle, err := tinktea.ReadKeyset(f)
	if err != nil {
		return nil, err
	}
	c, err := tinktea.New(handle, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// inputText joins the command arguments, or reads stdin when there are none.
func inputText(c *cli.Context) (string, error) {
	if c.Args().Len() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func encodeAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	codec, err := newCodec(cfg)
	if err != nil {
		return err
	}
	text, err := inputText(c)
	if err != nil {
		return err
	}

	encoded, err := codec.Encode(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, encoded)
	return nil
}

func decodeAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	codec, err := newCodec(cfg)
	if err != nil {
		return err
	}
	text, err := inputText(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, codec.Decode(text))
	return nil
}

func genkeyAction(c *cli.Context) error {
	key, err := tea.GenerateRandomBaseKey(c.Int("length"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, key)
	return nil
}

func keysetNewAction(c *cli.Context) error {
	template, err := tinktea.KeyTemplateWithParams(c.Int("length"), c.Int("offset"))
	if err != nil {
		return err
	}
	handle, err := tinktea.NewHandle(template)
	if err != nil {
		return fmt.Errorf("failed to create keyset: %w", err)
	}

	out := c.App.Writer
	if path := c.String("out"); path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := tinktea.WriteKeyset(handle, out); err != nil {
		return err
	}
	if c.String("out") != "" {
		logging.Info("keyset written to %s", c.String("out"))
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "tea",
		Usage:                  "Encode and decode text with a positional substitution base key",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultPath,
			},
			&cli.StringFlag{
				Name:    "base-key",
				Aliases: []string{"k"},
				Usage:   "Base key alphabet (overrides config)",
			},
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "Key assigned to the first base key character (overrides config)",
			},
			&cli.StringFlag{
				Name:  "keyset",
				Usage: "Cleartext JSON keyset file; takes precedence over --base-key",
			},
			// -v is taken by the built-in --version flag
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Trace configuration and codec calls",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"enc"},
				Usage:     "Encode text (arguments, or stdin when none are given)",
				ArgsUsage: "[text...]",
				Action:    encodeAction,
			},
			{
				Name:      "decode",
				Aliases:   []string{"dec"},
				Usage:     "Decode text; unknown groups are dropped",
				ArgsUsage: "[text...]",
				Action:    decodeAction,
			},
			{
				Name:  "genkey",
				Usage: "Print a random base key",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"n"},
						Usage:   "Base key length (1-1000)",
						Value:   tea.DefaultRandomBaseKeyLength,
					},
				},
				Action: genkeyAction,
			},
			{
				Name:  "keyset",
				Usage: "Manage Tink keysets holding base keys",
				Subcommands: []*cli.Command{
					{
						Name:  "new",
						Usage: "Generate a keyset with a random base key",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:    "length",
								Aliases: []string{"n"},
								Usage:   "Base key length (1-1000)",
								Value:   tinktea.DefaultKeyLength,
							},
							&cli.IntFlag{
								Name:  "offset",
								Usage: "Key assigned to the first base key character",
								Value: tea.DefaultOffset,
							},
							&cli.StringFlag{
								Name:  "out",
								Usage: "Write the keyset to a file instead of stdout",
							},
						},
						Action: keysetNewAction,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}
