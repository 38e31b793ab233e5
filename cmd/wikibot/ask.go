package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/reference"
	qauc "github.com/kailas-cloud/wikibot/internal/usecase/qa"
)

var (
	askTop  int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question and exit",
	Long: `Searches the guidebook index, builds a context from the top documents and
prints the model's answer followed by the reference list.

Exits non-zero when wikibot is not configured or a service call fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTop, "top", "n", 0, "number of documents to retrieve, 1-8 (default ui.default_top)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the --json shape of the ask command.
type askOutput struct {
	Answer     string                `json:"answer"`
	Fallback   bool                  `json:"fallback"`
	Notice     string                `json:"notice,omitempty"`
	References []reference.Reference `json:"references"`
	Details    []reference.Detail    `json:"details"`
	Usage      *domain.ChatUsage     `json:"usage,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := loadApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	top := askTop
	if top == 0 {
		top = a.cfg.UI.DefaultTop
	}

	ctx, usage := domain.NewContextWithUsage(cmd.Context())
	res, err := a.qa.Run(ctx, args[0], top)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, res, usage)
	}
	outputAskText(cmd, res)
	return nil
}

func outputAskJSON(cmd *cobra.Command, res qauc.Result, usage *domain.ChatUsage) error {
	out := askOutput{
		Answer:     res.Answer.Text,
		Fallback:   res.Answer.Fallback,
		Notice:     res.Notice,
		References: res.References,
		Details:    res.Details,
	}
	if out.References == nil {
		out.References = []reference.Reference{}
	}
	if out.Details == nil {
		out.Details = []reference.Detail{}
	}
	if usage.Called {
		out.Usage = usage
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func outputAskText(cmd *cobra.Command, res qauc.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, res.Answer.Text)
	fmt.Fprintln(w)

	if res.Notice != "" {
		fmt.Fprintln(w, res.Notice)
		return
	}
	fmt.Fprintf(w, "%d documents found\n", len(res.Documents))
	if len(res.References) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "References:")
	for _, r := range res.References {
		fmt.Fprintf(w, "  %s\n", r)
	}
}
