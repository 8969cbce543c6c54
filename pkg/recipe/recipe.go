// Package recipe parses the compact slot strings used to describe crafting
// grids and inventories.
package recipe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

const (
	// RecordSeparator separates items in recipe and inventory strings.
	RecordSeparator = "%%"

	MinAmount = 1
	MaxAmount = 64
)

// Item is one occupied slot of a recipe grid. Slots are 1-indexed.
type Item struct {
	Slot      int    `json:"slot"`
	Amount    int    `json:"amount"`
	Material  string `json:"material"`
	ExtraData string `json:"extraData,omitempty"`
}

// Parse reads "slot,material[:amount][,extra]" records separated by %%.
// Extra is everything after the second comma, commas included.
// A later record for the same slot replaces an earlier one. Amounts are
// clamped to [1,64]; an unparseable amount leaves the default of 1. Slot
// numbers are not checked against any grid size.
func Parse(input string) (map[int]Item, error) {
	result := make(map[int]Item)

	for _, record := range strings.Split(input, RecordSeparator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, ",", 3)

		slotToken := strings.TrimSpace(fields[0])
		slot, err := strconv.Atoi(slotToken)
		if err != nil {
			return nil, errors.Generator("Invalid slot: %s", slotToken).
				WithDetail("record", record)
		}
		if len(fields) < 2 || strings.TrimSpace(fields[1]) == "" {
			return nil, errors.Generator("Missing material for slot %d in item: %s", slot, record)
		}

		item := Item{Slot: slot, Amount: MinAmount}
		material, amount, hasAmount := strings.Cut(strings.TrimSpace(fields[1]), ":")
		item.Material = strings.TrimSpace(material)
		if hasAmount {
			if n, err := strconv.Atoi(strings.TrimSpace(amount)); err == nil {
				item.Amount = ClampAmount(n)
			}
		}
		if len(fields) == 3 {
			item.ExtraData = strings.TrimSpace(fields[2])
		}

		result[slot] = item
	}

	return result, nil
}

// Sorted returns the items ordered by slot.
func Sorted(items map[int]Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// ClampAmount fits n into the stack size range.
func ClampAmount(n int) int {
	return clamp(n, MinAmount, MaxAmount)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
