package storefront

import (
	"sort"

	"github.com/hkanaan/shamshop/internal/model"
)

// SelectableColors returns the colors of an item a customer may still choose:
// sold-out variants are excluded and the result is ordered by name.
func SelectableColors(colors []model.Color) []model.Color {
	var out []model.Color
	for _, c := range colors {
		if !c.IsSoldOut {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SelectablePlaces returns the places belonging to the given city, ordered by
// name. A zero cityID means no city is chosen and yields an empty result.
func SelectablePlaces(places []model.Place, cityID int64) []model.Place {
	if cityID == 0 {
		return nil
	}
	var out []model.Place
	for _, p := range places {
		if p.CityID == cityID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks the cross-entity invariants of a selection: a chosen color
// must belong to the item and not be sold out, and a chosen place must belong
// to the chosen city. Absent references pass. Requiredness is checked
// separately by the inquiry recorder; this is the single authority for
// mismatch rules, shared by the narrowing endpoints and the final submission.
func Validate(item *model.Item, color *model.Color, city *model.City, place *model.Place) FieldErrors {
	var errs FieldErrors

	if color != nil {
		if color.ItemID != item.ID {
			errs.add("color", CodeColorMismatch, "Selected color does not belong to this item.")
		} else if color.IsSoldOut {
			errs.add("color", CodeColorSoldOut, "This color is sold out.")
		}
	}

	if city != nil && place != nil && place.CityID != city.ID {
		errs.add("place", CodePlaceMismatch, "Selected place does not belong to the selected city.")
	}

	return errs
}
