package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/ranking"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [catalog.yaml]",
	Short: "Rank catalog candidates against a tone palette",
	Long: `Recommend scores every candidate in a catalog file against the palette
it declares and prints them best first.

The catalog is YAML:

  palette:
    tone_id: Monk03
    primary: ["#2e5d4b", "#7a9e7e"]
    accent:  ["#c9a227"]
    neutral: ["#f5f0e8"]
  candidates:
    - id: shirt-01
      hex: "#2e5d4b"
      tags: [work, casual]
      price: 39.9

Examples:
  aifashion recommend catalog.yaml
  aifashion recommend catalog.yaml --occasion work --budget-min 20 --budget-max 60
  aifashion recommend catalog.yaml --profile makeup --contrast high --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().String("profile", "", "Weight profile name (default from config)")
	recommendCmd.Flags().String("occasion", "", "Occasion to score context fit against")
	recommendCmd.Flags().String("contrast", "", "Requested contrast level: light, medium, high")
	recommendCmd.Flags().Float64("budget-min", 0, "Lower bound of the price budget")
	recommendCmd.Flags().Float64("budget-max", 0, "Upper bound of the price budget (0 = no budget)")
	recommendCmd.Flags().Int("top", 0, "Limit output to the top N candidates (0 = all)")
}

// catalogFile is the YAML shape of one recommendation catalog.
type catalogFile struct {
	Palette struct {
		ToneID  string   `yaml:"tone_id"`
		Primary []string `yaml:"primary"`
		Accent  []string `yaml:"accent"`
		Neutral []string `yaml:"neutral"`
		Avoid   []string `yaml:"avoid"`
	} `yaml:"palette"`
	Candidates []struct {
		ID    string   `yaml:"id"`
		Hex   string   `yaml:"hex"`
		Tags  []string `yaml:"tags"`
		Price float64  `yaml:"price"`
	} `yaml:"candidates"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	profile, _ := cmd.Flags().GetString("profile")
	occasion, _ := cmd.Flags().GetString("occasion")
	contrast, _ := cmd.Flags().GetString("contrast")
	budgetMin, _ := cmd.Flags().GetFloat64("budget-min")
	budgetMax, _ := cmd.Flags().GetFloat64("budget-max")
	top, _ := cmd.Flags().GetInt("top")

	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	req := ranking.Request{
		Palette: ranking.Palette{
			ToneID:  cat.Palette.ToneID,
			Primary: cat.Palette.Primary,
			Accent:  cat.Palette.Accent,
			Neutral: cat.Palette.Neutral,
			Avoid:   cat.Palette.Avoid,
		},
		Profile:   profile,
		Occasion:  occasion,
		Contrast:  contrast,
		BudgetMin: budgetMin,
		BudgetMax: budgetMax,
	}
	for _, c := range cat.Candidates {
		req.Candidates = append(req.Candidates, ranking.Candidate{
			ID:    c.ID,
			Hex:   c.Hex,
			Tags:  c.Tags,
			Price: c.Price,
		})
	}

	scored, err := svc.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}
	if top > 0 && top < len(scored) {
		scored = scored[:top]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scored)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tID\tTOTAL\tCOLOR\tCONTEXT\tPRICE\tCONTRAST\tMATCHED")
	for i, s := range scored {
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%s\n",
			i+1, s.ID, s.TotalScore, s.ColorScore, s.ContextScore, s.PriceScore, s.ContrastScore, s.MatchedColor)
	}
	w.Flush()
	return nil
}

func loadCatalog(path string) (*catalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var cat catalogFile
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &cat, nil
}
