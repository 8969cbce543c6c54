package recipe

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Entry is one inventory record: a material placed in one or more slots.
// Slots and Amounts are parallel.
type Entry struct {
	Slots    []int  `json:"slots"`
	Amounts  []int  `json:"amounts"`
	Material string `json:"material"`
	Data     string `json:"data,omitempty"`
}

// ParseInventory reads "material[,data]:slots" records separated by %%.
// The slot part takes one of three forms:
//
//	{3:16,7:1}   slot:amount pairs
//	[1,2,5-9]32  slot list and ranges sharing one amount
//	4,12         a single slot with an optional amount
//
// Slots are clamped to [1,totalSlots] and amounts to [1,64]. Namespaced
// materials such as minecraft:stone are accepted.
func ParseInventory(input string, totalSlots int) ([]Entry, error) {
	if totalSlots < 1 {
		return nil, errors.Newf(errors.ErrInvalidInput, "inventory needs at least one slot, got %d", totalSlots)
	}

	var entries []Entry
	for _, record := range strings.Split(input, RecordSeparator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		sep := slotSeparator(record)
		if sep < 0 {
			return nil, errors.Generator("Unknown inventory item: %s", record)
		}
		material, data, _ := strings.Cut(record[:sep], ",")
		entry := Entry{
			Material: strings.TrimSpace(material),
			Data:     strings.TrimSpace(data),
		}
		slotData := strings.TrimSpace(record[sep+1:])

		var err error
		switch {
		case strings.HasPrefix(slotData, "{"):
			err = entry.fromMap(slotData, totalSlots)
		case strings.HasPrefix(slotData, "["):
			err = entry.fromList(slotData, totalSlots)
		default:
			err = entry.fromSingle(slotData, totalSlots)
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// slotSeparator finds the colon between material and slot data. Colons
// followed by a letter belong to a namespaced material.
func slotSeparator(record string) int {
	for i := 0; i < len(record); i++ {
		if record[i] != ':' {
			continue
		}
		if i+1 < len(record) && unicode.IsLetter(rune(record[i+1])) {
			continue
		}
		return i
	}
	return -1
}

func (e *Entry) fromMap(slotData string, totalSlots int) error {
	body := strings.TrimPrefix(slotData, "{")
	if end := strings.Index(body, "}"); end >= 0 {
		body = body[:end]
	}
	for _, pair := range strings.Split(body, ",") {
		slotStr, amountStr, ok := strings.Cut(pair, ":")
		slot, slotErr := strconv.Atoi(strings.TrimSpace(slotStr))
		amount, amountErr := strconv.Atoi(strings.TrimSpace(amountStr))
		if !ok || slotErr != nil || amountErr != nil {
			return errors.Generator("Invalid slot or amount: %s in slot data: %s for material: %s",
				strings.TrimSpace(pair), slotData, e.Material)
		}
		e.add(clamp(slot, 1, totalSlots), ClampAmount(amount))
	}
	return nil
}

func (e *Entry) fromList(slotData string, totalSlots int) error {
	body := strings.TrimPrefix(slotData, "[")
	amount := MinAmount
	if end := strings.Index(body, "]"); end >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(body[end+1:])); err == nil {
			amount = ClampAmount(n)
		}
		body = body[:end]
	}

	for _, token := range strings.Split(body, ",") {
		token = strings.TrimSpace(token)
		lo, hi, err := parseRange(token)
		if err != nil {
			return errors.Generator("Invalid slot: %s in slot data: %s for material: %s",
				token, slotData, e.Material)
		}
		lo, hi = clamp(lo, 1, totalSlots), clamp(hi, 1, totalSlots)
		if lo > hi {
			return errors.Generator("Start slot cannot be greater than end slot in range: %s", token).
				WithDetail("material", e.Material)
		}
		for s := lo; s <= hi; s++ {
			e.add(s, amount)
		}
	}
	return nil
}

func (e *Entry) fromSingle(slotData string, totalSlots int) error {
	slotStr, amountStr, hasAmount := strings.Cut(slotData, ",")
	slot, err := strconv.Atoi(strings.TrimSpace(slotStr))
	if err != nil {
		return errors.Generator("Invalid slot or amount: %s for material: %s", slotData, e.Material)
	}
	amount := MinAmount
	if hasAmount {
		if n, err := strconv.Atoi(strings.TrimSpace(amountStr)); err == nil {
			amount = ClampAmount(n)
		}
	}
	e.add(clamp(slot, 1, totalSlots), amount)
	return nil
}

func (e *Entry) add(slot, amount int) {
	e.Slots = append(e.Slots, slot)
	e.Amounts = append(e.Amounts, amount)
}

// parseRange reads "n" or "a-b".
func parseRange(token string) (int, int, error) {
	a, b, isRange := strings.Cut(token, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// Placement is what ends up in a single inventory slot.
type Placement struct {
	Slot     int
	Amount   int
	Material string
	Data     string
}

// Resolve flattens entries into per-slot placements ordered by slot. When
// several entries claim a slot the last one wins.
func Resolve(entries []Entry) []Placement {
	bySlot := make(map[int]Placement)
	for _, e := range entries {
		for i, s := range e.Slots {
			bySlot[s] = Placement{Slot: s, Amount: e.Amounts[i], Material: e.Material, Data: e.Data}
		}
	}
	out := make([]Placement, 0, len(bySlot))
	for _, p := range bySlot {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}
