package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agriadvisor/internal/modules/predictor"
	"agriadvisor/internal/modules/recommend"
	"agriadvisor/internal/service"
	"agriadvisor/internal/types"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "advisorctl",
		Short:         "Query the fertilizer and irrigation advisor from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newChatCmd(), newRecommendCmd(), newCropsCmd())
	return root
}

func newChatCmd() *cobra.Command {
	var lang, name, location string
	cmd := &cobra.Command{
		Use:   "chat <text...>",
		Short: "Classify a question and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := service.LoadEngine()
			if err != nil {
				return err
			}
			advisor := service.NewAdvisor(engine, nil, nil, 0, zap.NewNop())
			reply := advisor.Chat(cmd.Context(), service.Query{
				Text:     strings.Join(args, " "),
				Language: lang,
				Name:     name,
				Location: location,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "[%s/%s] %s\n", reply.Topic, reply.Language, reply.Reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "reply language (en, te); empty detects from the text")
	cmd.Flags().StringVar(&name, "name", "", "farmer name to address")
	cmd.Flags().StringVar(&location, "location", "", "farm location")
	return cmd
}

type recommendFlags struct {
	reading     recommend.SoilReading
	label       string
	quantity    float64
	probability float64
	modelURL    string
	timeout     time.Duration
	lang        string
}

func newRecommendCmd() *cobra.Command {
	var f recommendFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Merge a model answer with the crop overlay and print the recommendation",
		Long: `Without --model-url the model answer is taken from --label, --quantity and
--probability, which is handy for checking overlay and insight rules offline.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := service.LoadEngine()
			if err != nil {
				return err
			}
			var pred predictor.Predictor = predictor.Static{Out: predictor.Label(f.label, f.quantity, f.probability)}
			if f.modelURL != "" {
				pred = predictor.NewHTTPPredictor(f.modelURL, f.timeout)
			}
			advisor := service.NewAdvisor(engine, pred, nil, f.timeout, zap.NewNop())

			rec, err := advisor.Recommend(cmd.Context(), f.reading)
			if err != nil {
				return err
			}
			if f.lang == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			lang, ok := types.ParseLanguage(f.lang)
			if !ok {
				return fmt.Errorf("unsupported language %q", f.lang)
			}
			printRecommendation(cmd, rec, lang)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.reading.Crop, "crop", "", "crop name")
	fl.StringVar(&f.reading.Season, "season", "", "season (Kharif, Rabi, Zaid, ...)")
	fl.Float64Var(&f.reading.N, "n", 0, "soil nitrogen")
	fl.Float64Var(&f.reading.P, "p", 0, "soil phosphorus")
	fl.Float64Var(&f.reading.K, "k", 0, "soil potassium")
	fl.Float64Var(&f.reading.PH, "ph", 7, "soil pH")
	fl.Float64Var(&f.reading.Moisture, "moisture", 40, "soil moisture percent")
	fl.Float64Var(&f.reading.LandArea, "area", recommend.DefaultLandArea, "land area in acres")
	fl.StringVar(&f.label, "label", "Urea", "model fertilizer label (static mode)")
	fl.Float64Var(&f.quantity, "quantity", 50, "model quantity per acre (static mode)")
	fl.Float64Var(&f.probability, "probability", 0.8, "model success probability (static mode)")
	fl.StringVar(&f.modelURL, "model-url", "", "model server URL; overrides the static answer")
	fl.DurationVar(&f.timeout, "timeout", service.DefaultPredictTimeout, "model call timeout")
	fl.StringVar(&f.lang, "lang", "", "print text in one language (en, te) instead of JSON")
	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func printRecommendation(cmd *cobra.Command, rec recommend.Recommendation, lang types.Language) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Fertilizer:   %s (%s)\n", rec.FertilizerType, rec.Source)
	fmt.Fprintf(w, "Purpose:      %s\n", rec.FertilizerPurpose.Get(lang))
	fmt.Fprintf(w, "Also:         %s\n", rec.AdditionalInfo.Get(lang))
	fmt.Fprintf(w, "Quantity:     %.2f kg/acre, %.2f kg total for %.2f acres\n", rec.QuantityPerAcre, rec.TotalQuantity, rec.LandArea)
	fmt.Fprintf(w, "Success:      %.0f%%\n", rec.SuccessProbability*100)
	fmt.Fprintf(w, "Irrigation:   %s\n", rec.IrrigationMethod.Get(lang))
	fmt.Fprintf(w, "Timing:       %s\n", rec.IrrigationTiming.Get(lang))
	fmt.Fprintf(w, "Frequency:    %s\n", rec.IrrigationFreq.Get(lang))
	fmt.Fprintf(w, "Tips:         %s\n", rec.IrrigationTips.Get(lang))
	for _, in := range rec.Insights {
		fmt.Fprintf(w, "Insight:      %s\n", in.Get(lang))
	}
	fmt.Fprintf(w, "Suggestion:   %s\n", rec.Suggestion.Get(lang))
}

func newCropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crops",
		Short: "List crops with curated fertilizer and irrigation advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := service.LoadEngine()
			if err != nil {
				return err
			}
			kb := engine.Knowledge
			for _, crop := range kb.Crops() {
				name := kb.CropName(crop)
				profile, _ := kb.Lookup(crop)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-12s %s\n", crop, name.TE, profile.Fertilizer)
			}
			return nil
		},
	}
}
