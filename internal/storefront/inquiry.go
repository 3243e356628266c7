package storefront

import (
	"context"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// InquiryInput is the typed form input for an inquiry submission, constructed
// once at the HTTP boundary.
type InquiryInput struct {
	CustomerName  string
	CustomerPhone string
	Message       string
	ColorID       *int64
	CityID        *int64
	PlaceID       *int64
}

// Phone numbers are stored as entered: digits plus common separators, no
// strict E.164 enforcement.
var phonePattern = regexp.MustCompile(`^[0-9+()\- ]+$`)

const maxPhoneLen = 20

// RecordInquiry resolves the input's references, validates the selection, and
// persists a new inquiry with contacted=false and a server-assigned timestamp.
// It never mutates the item, its colors, or the location tables. Validation
// failures come back as FieldErrors with a nil infrastructure error; two
// identical submissions create two rows.
func RecordInquiry(ctx context.Context, db *sqlx.DB, item *model.Item, colors []model.Color, in InquiryInput) (*model.Inquiry, FieldErrors, error) {
	var errs FieldErrors

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		errs.add("customer_name", CodeRequired, "Name is required.")
	}

	phone := strings.TrimSpace(in.CustomerPhone)
	switch {
	case phone == "":
		errs.add("customer_phone", CodeRequired, "Phone number is required.")
	case len(phone) > maxPhoneLen || !phonePattern.MatchString(phone):
		errs.add("customer_phone", CodeInvalid, "Enter a valid phone number.")
	}

	// Color is mandatory only when the item still has selectable colors.
	if in.ColorID == nil && len(SelectableColors(colors)) > 0 {
		errs.add("color", CodeRequired, "Choose a color.")
	}

	// Delivery info is always collected together.
	if in.CityID == nil {
		errs.add("city", CodeRequired, "City is required.")
	}
	if in.PlaceID == nil {
		errs.add("place", CodeRequired, "Place of delivery is required.")
	}

	var color *model.Color
	if in.ColorID != nil {
		var err error
		color, err = store.GetColor(ctx, db, *in.ColorID)
		if err != nil {
			return nil, nil, err
		}
		if color == nil {
			errs.add("color", CodeNotFound, "Selected color no longer exists.")
		}
	}

	var city *model.City
	if in.CityID != nil {
		var err error
		city, err = store.GetCity(ctx, db, *in.CityID)
		if err != nil {
			return nil, nil, err
		}
		if city == nil {
			errs.add("city", CodeNotFound, "Selected city no longer exists.")
		}
	}

	var place *model.Place
	if in.PlaceID != nil {
		var err error
		place, err = store.GetPlace(ctx, db, *in.PlaceID)
		if err != nil {
			return nil, nil, err
		}
		if place == nil {
			errs.add("place", CodeNotFound, "Selected place no longer exists.")
		}
	}

	errs = append(errs, Validate(item, color, city, place)...)
	if len(errs) > 0 {
		return nil, errs, nil
	}

	inquiry, err := store.CreateInquiry(ctx, db, &model.Inquiry{
		ItemID:        item.ID,
		ColorID:       in.ColorID,
		CityID:        in.CityID,
		PlaceID:       in.PlaceID,
		CustomerName:  name,
		CustomerPhone: phone,
		Message:       strings.TrimSpace(in.Message),
	})
	if err != nil {
		return nil, nil, err
	}
	return inquiry, nil, nil
}
