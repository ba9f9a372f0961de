package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	service "github.com/TaddsTechnology/Ai-Fashion/internal/app"
	"github.com/TaddsTechnology/Ai-Fashion/internal/imaging"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [image]",
	Short: "Estimate the skin tone of a face photo",
	Long: `Analyze samples skin regions from a face photo, estimates the underlying
skin color, and places it on the Monk tone scale.

Landmarks are optional. When a face-mesh landmark file is given, sampling
follows the mesh regions; otherwise fixed geometric regions are used.

Examples:
  aifashion analyze face.jpg
  aifashion analyze face.jpg --landmarks mesh.json
  aifashion analyze face.png --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("landmarks", "", "JSON file with face mesh landmark points")
}

// analyzeOutput is the JSON shape of one analysis.
type analyzeOutput struct {
	RequestID  string            `json:"request_id"`
	Tone       string            `json:"tone"`
	ToneName   string            `json:"tone_name"`
	Color      string            `json:"color"`
	Confidence float64           `json:"confidence"`
	Method     string            `json:"method"`
	Reason     string            `json:"reason"`
	Regions    map[string]string `json:"regions"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	landmarksPath, err := cmd.Flags().GetString("landmarks")
	if err != nil {
		return err
	}

	img, err := imaging.Load(args[0])
	if err != nil {
		return err
	}

	var landmarks []image.Point
	if landmarksPath != "" {
		landmarks, err = loadLandmarks(landmarksPath)
		if err != nil {
			return err
		}
	}

	res, err := svc.Analyze(cmd.Context(), service.AnalyzeRequest{
		Image:     img,
		Landmarks: landmarks,
	})
	if err != nil {
		return err
	}

	regions := make(map[string]string, len(res.Samples))
	for _, sm := range res.Samples {
		regions[sm.Region] = sm.Color.Hex()
	}
	out := analyzeOutput{
		RequestID:  res.RequestID,
		Tone:       res.Tone.ID(),
		ToneName:   res.Tone.Name,
		Color:      res.Hex,
		Confidence: res.Confidence,
		Method:     string(res.Method),
		Reason:     string(res.Reason),
		Regions:    regions,
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Tone:       %s (%s)\n", out.Tone, out.ToneName)
	fmt.Printf("Color:      %s\n", out.Color)
	fmt.Printf("Confidence: %.2f\n", out.Confidence)
	fmt.Printf("Method:     %s (%s)\n", out.Method, out.Reason)
	if len(res.Samples) > 0 {
		fmt.Println("Regions:")
		for _, sm := range res.Samples {
			fmt.Printf("  %-12s %s (%d px)\n", sm.Region, sm.Color.Hex(), sm.PixelCount)
		}
	}
	return nil
}

// loadLandmarks reads face mesh points as a JSON array of [x, y] pairs.
func loadLandmarks(path string) ([]image.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading landmarks: %w", err)
	}
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing landmarks: %w", err)
	}
	pts := make([]image.Point, 0, len(raw))
	for _, p := range raw {
		if len(p) < 2 {
			return nil, errors.New("parsing landmarks: each point needs x and y")
		}
		pts = append(pts, image.Point{X: int(p[0]), Y: int(p[1])})
	}
	return pts, nil
}
