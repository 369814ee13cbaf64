package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdash/internal/game"
	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer generated problems for a category (no storage)",
	Long: `Generate and interactively answer problems for one category.

This is a stateless developer tool: no player, no timer, nothing saved.
Answer with the choice number or the value itself. An empty line skips.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", string(problemgen.CategoryNumber), "Category: "+categoryList())
	previewCmd.Flags().Int("level", 1, "Difficulty level (widens + and - operand ranges)")
	previewCmd.Flags().Int("count", 5, "Number of problems")
	previewCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
}

func categoryList() string {
	cats := problemgen.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c.Category)
	}
	return strings.Join(names, ", ")
}

func runPreview(cmd *cobra.Command, args []string) error {
	catVal, _ := cmd.Flags().GetString("category")
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	cat, err := problemgen.ParseCategory(catVal)
	if err != nil {
		return fmt.Errorf("%w (want one of: %s)", err, categoryList())
	}
	if level < 1 {
		return fmt.Errorf("invalid level %d: must be at least 1", level)
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	dispatcher := problemgen.NewDispatcher(rand.New(rand.NewPCG(seed, seed)), problemgen.DefaultConfig())
	return previewLoop(cmd.InOrStdin(), cmd.OutOrStdout(), dispatcher, cat, level, count)
}

// previewLoop asks count problems and prints a summary.
func previewLoop(in io.Reader, out io.Writer, problems game.Problems, cat problemgen.Category, level, count int) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Category: %s (%s), level %d\n\n", cat.Label(), cat, level)

	var correct, asked int
	for i := 1; i <= count; i++ {
		p, err := problems.Next(cat, level)
		if err != nil {
			return fmt.Errorf("problem %d: %w", i, err)
		}
		asked++

		fmt.Fprintf(out, "── Problem %d/%d ──\n", i, count)
		if p.ShowsVisual() {
			fmt.Fprintln(out, components.AngleCanvas(p.Visual.Degrees, 5))
			fmt.Fprintln(out, "What kind of angle is this?")
		} else {
			fmt.Fprintf(out, "%s = ?\n", p.Prompt)
		}
		for j, c := range p.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c.Label)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := resolveChoice(strings.TrimSpace(scanner.Text()), p.Choices)
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		if problemgen.CheckAnswer(answer, p) {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", p.Answer)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// resolveChoice turns a choice number into its value. Anything else is
// taken as a literal answer.
func resolveChoice(input string, choices []problemgen.Choice) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		// A value that is also a valid index wins over the index.
		for _, c := range choices {
			if c.Value == input {
				return input
			}
		}
		return choices[n-1].Value
	}
	return input
}
