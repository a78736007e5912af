// README: Pricing configuration and the baseline request sent to the model.
package pricing

import (
	"fmt"

	"tripmind/internal/ai"
	"tripmind/internal/extract"
	"tripmind/internal/types"
)

type Config struct {
	Route  ai.Route
	Styles types.StyleSet
}

func baselinePrompt(city string) string {
	return fmt.Sprintf(`Estimate typical daily travel costs in %s. Return JSON:
{"accommodation":1500,"food":800,"transport":500,"activities":1000}`, city)
}

// parseBaseline reads the four components; missing or non-numeric values are 0.
func parseBaseline(fields map[string]any) types.Baseline {
	return types.Baseline{
		Accommodation: extract.Float(fields, "accommodation", 0),
		Food:          extract.Float(fields, "food", 0),
		Transport:     extract.Float(fields, "transport", 0),
		Activities:    extract.Float(fields, "activities", 0),
	}
}
