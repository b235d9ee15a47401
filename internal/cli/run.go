package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/formsense/formsense"
	"github.com/formsense/formsense/internal/render"
	"github.com/formsense/formsense/internal/storage"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCommand() *cobra.Command {
	var (
		rulesPath  string
		lang       string
		minScore   float64
		renderPage bool
		renderWait int
	)

	cmd := &cobra.Command{
		Use:   "run [url-or-file]",
		Short: "Classify form fields in a URL, HTML file, or stdin",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Classify a URL directly
  formsense run https://github.com/login

  # Classify a local HTML file
  formsense run checkout.html

  # Pipe HTML content from a file
  cat checkout.html | formsense run

  # Select language-specific patterns
  formsense run https://example.de/kontakt --lang de

  # Render JavaScript before classifying (SPA forms)
  formsense run https://app.example.com/signup --render

  # Use an updated rules file
  formsense run checkout.html --rules rules-v2.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var htmlContent string
			var target string
			var err error

			if len(args) == 0 {
				if isStdinTerminal() {
					return cmd.Help()
				}
				htmlContent, target, err = readFromStdin()
				if err != nil {
					return err
				}
			} else {
				target = args[0]
				slog.Debug("Fetching HTML", "target", target)
				if renderPage && isURL(target) {
					htmlContent, err = render.Render(cmd.Context(), target, time.Duration(renderWait)*time.Second)
				} else {
					htmlContent, err = fetchHTML(target)
				}
				if err != nil {
					return err
				}
			}
			slog.Debug("HTML fetched", "target", target, "bytes", len(htmlContent))
			if isURL(target) {
				slog.Debug("Classifying", "domain", storage.GetDomain(target), "lang", lang)
			}

			cl := formsense.New()
			if rulesPath != "" {
				if err := cl.LoadRules(rulesPath); err != nil {
					return err
				}
				slog.Debug("Rules loaded", "path", rulesPath, "version", cl.RuleVersion())
			}
			if minScore > 0 {
				cl.SetMinScore(minScore)
			}

			start := time.Now()
			results, err := cl.ExtractFields(htmlContent, lang)
			if err != nil {
				return err
			}
			slog.Debug("Classification completed", "forms", len(results), "duration", time.Since(start))

			if len(results) == 0 {
				fmt.Println("No forms found.")
				return nil
			}
			output, _ := json.MarshalIndent(results, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a rules file (default: embedded rule set)")
	cmd.Flags().StringVar(&lang, "lang", "", "Page language code for pattern selection (empty = any)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum pattern score accepted as a match")
	cmd.Flags().BoolVar(&renderPage, "render", false, "Render JavaScript in a headless browser before classifying")
	cmd.Flags().IntVar(&renderWait, "render-timeout", 30, "Headless render timeout in seconds")
	return cmd
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func fetchHTML(target string) (string, error) {
	if isURL(target) {
		resp, err := http.Get(target)
		if err != nil {
			return "", fmt.Errorf("fetch URL: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		return string(body), nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func readFromStdin() (string, string, error) {
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	content := strings.TrimSpace(string(body))
	if content == "" {
		return "", "", fmt.Errorf("stdin is empty")
	}

	if isURL(content) {
		slog.Debug("Stdin contains URL", "url", content)
		html, err := fetchHTML(content)
		if err != nil {
			return "", "", err
		}
		return html, content, nil
	}

	return content, "stdin", nil
}
