package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/crunch"
)

const maxNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", catalog.Invalid("name", "is required")
	}
	if len(name) > maxNameLength {
		return "", catalog.Invalid("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	return name, nil
}

func validateTarget(target crunch.Target) error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"total_cards", target.TotalCards},
		{"white_cards", target.WhiteCards},
		{"blue_cards", target.BlueCards},
		{"black_cards", target.BlackCards},
		{"red_cards", target.RedCards},
		{"green_cards", target.GreenCards},
		{"colorless_cards", target.ColorlessCards},
		{"multicolor_cards", target.MulticolorCards},
		{"lands_cards", target.LandsCards},
		{"basic_lands_cards", target.BasicLandsCards},
	} {
		if f.value < 0 {
			return catalog.Invalid(f.name, "must not be negative")
		}
	}
	return nil
}

// requireSet returns a not-found error unless the set exists
func requireSet(ctx context.Context, s *catalog.Service, setID uint) error {
	exists, err := s.SetRepo.Exists(ctx, setID)
	if err != nil {
		return err
	}
	if !exists {
		return catalog.NotFound("set", setID)
	}
	return nil
}
