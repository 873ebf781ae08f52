package assistant

import (
	"fmt"
	"strings"

	"github.com/ternarybob/sapore/internal/models"
)

// maxContextRecommendations caps how many recommendations are rendered into
// the assistant context.
const maxContextRecommendations = 8

// genericTags are provider tags carrying no cuisine information; they are
// excluded from the rendered type list.
var genericTags = map[string]bool{
	"restaurant":        true,
	"food":              true,
	"point_of_interest": true,
	"establishment":     true,
}

// priceLevelLabels maps a provider price level to a descriptor. Levels 0-3
// are what the provider emits today; the table keeps the historical fifth
// label for out-of-range values.
var priceLevelLabels = []string{"Very Affordable", "Affordable", "Moderate", "Expensive", "Very Expensive"}

// BuildContext renders the current recommendations, user location, and
// optionally the selected restaurant's menu into assistant-facing text.
// Recommendation names appear in input order, truncated to the first eight.
func BuildContext(recommendations []models.ScoredPlace, userLocation *models.Location, selected *models.SelectedRestaurant) string {
	var b strings.Builder

	if userLocation != nil {
		fmt.Fprintf(&b, "📍 User's current location: Latitude %.4f, Longitude %.4f\n\n",
			userLocation.Lat, userLocation.Lng)
	}

	if len(recommendations) > 0 {
		b.WriteString("Available nearby restaurants:\n")
		limit := len(recommendations)
		if limit > maxContextRecommendations {
			limit = maxContextRecommendations
		}
		for i, place := range recommendations[:limit] {
			fmt.Fprintf(&b, "\n%d. **%s**\n", i+1, place.Name)
			b.WriteString("   Rating: " + formatRating(place) + "\n")
			b.WriteString("   Distance: " + formatDistance(place.Distance) + "\n")
			b.WriteString("   Address: " + formatAddress(place.Vicinity) + "\n")
			if place.PriceLevel != nil {
				fmt.Fprintf(&b, "   Price: %s (%s)\n",
					strings.Repeat("$", *place.PriceLevel+1), PriceLevelDescription(*place.PriceLevel))
			}
			if place.OpeningHours != nil {
				if place.OpeningHours.OpenNow {
					b.WriteString("   Status: Currently Open\n")
				} else {
					b.WriteString("   Status: Currently Closed\n")
				}
			}
			if tags := cuisineTags(place.Types); len(tags) > 0 {
				b.WriteString("   Type: " + strings.Join(tags, ", ") + "\n")
			}
		}
	} else {
		b.WriteString("⚠️ No restaurant recommendations available. The user needs to search for restaurants first.\n")
	}

	if selected != nil && selected.Menu != nil {
		fmt.Fprintf(&b, "\n\nCurrently Viewing Restaurant: **%s**\n", selected.Name)
		b.WriteString("Menu Details:\n")
		for _, category := range selected.Menu.Categories {
			fmt.Fprintf(&b, "\n**%s:**\n", category.Name)
			for _, item := range category.Items {
				fmt.Fprintf(&b, "  • %s - $%.2f", item.Name, item.Price)
				if item.Description != "" {
					fmt.Fprintf(&b, " (%s)", item.Description)
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// PriceLevelDescription returns the label for a provider price level.
func PriceLevelDescription(level int) string {
	if level < 0 || level >= len(priceLevelLabels) {
		return "Unknown"
	}
	return priceLevelLabels[level]
}

func formatRating(place models.ScoredPlace) string {
	if place.Rating == nil {
		return "N/A"
	}
	rating := fmt.Sprintf("%.1f", *place.Rating)
	if place.UserRatingsTotal != nil {
		rating += fmt.Sprintf(" (%d reviews)", *place.UserRatingsTotal)
	}
	return rating
}

func formatDistance(meters float64) string {
	if meters <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

func formatAddress(vicinity string) string {
	if vicinity == "" {
		return "Address not available"
	}
	return vicinity
}

func cuisineTags(types []string) []string {
	var tags []string
	for _, t := range types {
		if genericTags[t] {
			continue
		}
		tags = append(tags, t)
		if len(tags) == 3 {
			break
		}
	}
	return tags
}
