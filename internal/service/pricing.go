package service

import (
	"strconv"

	"splinter-planner/internal/domain"
)

// CardPrice looks up the market price of a card at a level. The second
// return is false when the card is unlisted or already owned, in which case
// it contributes nothing to a team total.
func CardPrice(cardID, level int, prices domain.PriceTable, owned map[domain.CardKey]bool) (float64, bool) {
	if owned[domain.CardKey{CardDetailID: cardID, Level: level}] {
		return 0, false
	}

	byLevel, ok := prices[strconv.Itoa(cardID)]
	if !ok {
		return 0, false
	}
	price, ok := byLevel[strconv.Itoa(level)]
	if !ok {
		return 0, false
	}
	return price, true
}

// TeamPrice sums the acquisition cost of a team's members in the base
// currency: owned cards and unlisted cards contribute zero. The supplied
// price table is read, never mutated.
func TeamPrice(members []domain.TeamCard, prices domain.PriceTable, owned map[domain.CardKey]bool) float64 {
	total := 0.0
	for _, member := range members {
		if price, ok := CardPrice(member.CardDetailID, member.Level, prices, owned); ok {
			total += price
		}
	}
	return total
}
