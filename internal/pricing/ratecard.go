package pricing

import "gamedesk/internal/model"

// The rate card is the single source of the lounge's prices. Handlers,
// services and the seed tool all read it from here; nobody re-derives a band
// price anywhere else.

const (
	// Minutes below the free threshold are not billed at all.
	freeMinutes = 7
	// Billable time is rounded up to whole blocks.
	blockMinutes = 15
	// The frame station charges per player, not per minute.
	framePlayerRate = 50.0
)

// bandRates holds the four block prices for one occupancy tier, plus the
// hourly base used to extrapolate past the last band.
type bandRates struct {
	QuarterHour  float64
	HalfHour     float64
	ThreeQuarter float64
	FullHour     float64
	Hourly       float64
}

// occupancyTier maps a player-count range onto its prices. MaxPlayers 0
// means "any count"; tiers are ordered ascending and the last one catches
// everything larger.
type occupancyTier struct {
	MaxPlayers int
	Rates      bandRates
}

var rateCard = map[model.DeviceType][]occupancyTier{
	model.DevicePS4: {
		{MaxPlayers: 1, Rates: bandRates{25, 45, 60, 75, 75}},
		{MaxPlayers: 2, Rates: bandRates{30, 55, 75, 95, 95}},
		{MaxPlayers: 0, Rates: bandRates{40, 70, 95, 120, 120}},
	},
	model.DevicePS5: {
		{MaxPlayers: 1, Rates: bandRates{35, 60, 85, 110, 110}},
		{MaxPlayers: 2, Rates: bandRates{45, 75, 105, 135, 135}},
		{MaxPlayers: 0, Rates: bandRates{55, 90, 125, 165, 165}},
	},
	// Single-seat stations ignore player count entirely.
	model.DeviceRacing: {
		{MaxPlayers: 0, Rates: bandRates{40, 70, 100, 130, 130}},
	},
	model.DeviceVR: {
		{MaxPlayers: 0, Rates: bandRates{50, 90, 130, 170, 170}},
	},
	model.DeviceVRRacing: {
		{MaxPlayers: 0, Rates: bandRates{60, 110, 155, 200, 200}},
	},
	// Pool is billed per table regardless of who is around it.
	model.DeviceBilliards: {
		{MaxPlayers: 0, Rates: bandRates{25, 45, 65, 85, 85}},
	},
}

// price returns the tier's charge for a rounded billable duration.
func (r bandRates) price(billedMinutes int) float64 {
	switch {
	case billedMinutes <= 0:
		return 0
	case billedMinutes <= 15:
		return r.QuarterHour
	case billedMinutes <= 30:
		return r.HalfHour
	case billedMinutes <= 45:
		return r.ThreeQuarter
	case billedMinutes <= 60:
		return r.FullHour
	default:
		return r.Hourly * float64(billedMinutes) / 60
	}
}

func tierFor(tiers []occupancyTier, playerCount int) bandRates {
	if playerCount < 1 {
		playerCount = 1
	}
	for _, t := range tiers {
		if t.MaxPlayers == 0 || playerCount <= t.MaxPlayers {
			return t.Rates
		}
	}
	return tiers[len(tiers)-1].Rates
}

// RateCard exposes a read-only view of the card for the devices endpoint and
// the seed tool.
type RateCardEntry struct {
	DeviceType model.DeviceType `json:"deviceType"`
	MaxPlayers int              `json:"maxPlayers"`
	Quarter    float64          `json:"quarterHour"`
	Half       float64          `json:"halfHour"`
	ThreeQ     float64          `json:"threeQuarterHour"`
	Hour       float64          `json:"fullHour"`
	Hourly     float64          `json:"hourlyRate"`
}

func RateCard() []RateCardEntry {
	var entries []RateCardEntry
	for _, dt := range []model.DeviceType{
		model.DevicePS4, model.DevicePS5, model.DeviceRacing,
		model.DeviceVR, model.DeviceVRRacing, model.DeviceBilliards,
	} {
		for _, tier := range rateCard[dt] {
			entries = append(entries, RateCardEntry{
				DeviceType: dt,
				MaxPlayers: tier.MaxPlayers,
				Quarter:    tier.Rates.QuarterHour,
				Half:       tier.Rates.HalfHour,
				ThreeQ:     tier.Rates.ThreeQuarter,
				Hour:       tier.Rates.FullHour,
				Hourly:     tier.Rates.Hourly,
			})
		}
	}
	return entries
}

// HourlyBase returns the hourly extrapolation rate a device type bills at for
// the given occupancy, falling back to zero for unmapped types. The seed tool
// uses it to stamp each device's fallback rate.
func HourlyBase(deviceType model.DeviceType, playerCount int) float64 {
	tiers, ok := rateCard[deviceType]
	if !ok {
		return 0
	}
	return tierFor(tiers, playerCount).Hourly
}
