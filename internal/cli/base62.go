package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oleg578/swiftcodec/internal/token"
)

// newBase62Cmd creates the base62 command
func newBase62Cmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base62",
		Short: "Pack bytes into base62 tokens and back",
		Long: `Pack bytes into base62 tokens made of A-Z, a-z and 0-9, and unpack them again.

Examples:
  swiftcodec base62 encode "hello"
  swiftcodec base62 encode --zstd --in report.json
  swiftcodec base62 decode --hex 9H
  swiftcodec base62 id --count 3`,
	}

	cmd.AddCommand(newBase62EncodeCmd(a))
	cmd.AddCommand(newBase62DecodeCmd(a))
	cmd.AddCommand(newBase62IDCmd(a))

	return cmd
}

func zstdLevel(name string) (zstd.EncoderLevel, error) {
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown zstd level %q (fastest, default, better, best)", name)
	}
	return level, nil
}

// newBase62EncodeCmd creates the base62 encode command
func newBase62EncodeCmd(a *app) *cobra.Command {
	var (
		compress bool
		level    string
		fromHex  bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode bytes as a base62 token",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readRaw(cmd, args)
			if err != nil {
				return err
			}
			if fromHex {
				data, err = hex.DecodeString(strings.TrimSpace(string(data)))
				if err != nil {
					return fmt.Errorf("decode hex input: %w", err)
				}
			}

			opts := token.Options{Compress: compress}
			if compress {
				if opts.Level, err = zstdLevel(level); err != nil {
					return err
				}
			}

			tok, err := token.Encode(data, opts)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"bytes":   len(data),
				"symbols": len(tok),
				"zstd":    compress,
			}).Debug("encoded base62 token")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().BoolVar(&compress, "zstd", false, "compress with zstd before encoding")
	cmd.Flags().StringVar(&level, "level", "default", "zstd level: fastest, default, better, best")
	cmd.Flags().BoolVar(&fromHex, "hex", false, "treat the input as hex digits")

	return cmd
}

// newBase62DecodeCmd creates the base62 decode command
func newBase62DecodeCmd(a *app) *cobra.Command {
	var (
		compress bool
		toHex    bool
	)

	cmd := &cobra.Command{
		Use:   "decode [token]",
		Short: "Decode a base62 token back to bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.readRaw(cmd, args)
			if err != nil {
				return err
			}
			tok := strings.TrimSpace(string(raw))

			data, err := token.Decode(tok, token.Options{Compress: compress})
			if err != nil {
				return fmt.Errorf("decode token: %w", err)
			}
			a.log.WithFields(logrus.Fields{
				"symbols": len(tok),
				"bytes":   len(data),
				"zstd":    compress,
			}).Debug("decoded base62 token")

			out := cmd.OutOrStdout()
			if toHex {
				_, err = fmt.Fprintln(out, hex.EncodeToString(data))
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&compress, "zstd", false, "decompress with zstd after decoding")
	cmd.Flags().BoolVar(&toHex, "hex", false, "print the bytes as hex digits")

	return cmd
}

// newBase62IDCmd creates the base62 id command
func newBase62IDCmd(a *app) *cobra.Command {
	var (
		count int
		parse string
		from  string
	)

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate random UUIDs as base62 tokens",
		Long: `Generate random UUIDs rendered as base62 tokens.

With --parse, print the UUID a token carries. With --from, print the token for an existing UUID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			switch {
			case parse != "":
				id, err := token.ParseID(parse)
				if err != nil {
					return fmt.Errorf("parse id token: %w", err)
				}
				_, err = fmt.Fprintln(out, id.String())
				return err
			case from != "":
				tok, err := token.FormatID(from)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, tok)
				return err
			}

			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			for i := 0; i < count; i++ {
				id, tok, err := token.NewID()
				if err != nil {
					return err
				}
				a.log.WithField("uuid", id.String()).Debug("generated id")
				if _, err := fmt.Fprintln(out, tok); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of ids to generate")
	cmd.Flags().StringVar(&parse, "parse", "", "print the UUID carried by this token")
	cmd.Flags().StringVar(&from, "from", "", "print the token for this UUID")
	cmd.MarkFlagsMutuallyExclusive("parse", "from")

	return cmd
}
