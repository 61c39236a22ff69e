// Package refdata holds the static bank and merchant reference tables.
//
// The tables map human-readable names to the canonical identifiers the
// trained model and the transaction store use, and constrain which states
// each merchant operates in. They are loaded once at startup and never
// mutated, so concurrent requests read them without locking.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Tables is the immutable reference data bundle.
type Tables struct {
	banks          map[string]string   // bank name → canonical ID
	merchants      map[string]string   // merchant name → canonical ID
	merchantStates map[string][]string // merchant name → valid states
}

// defaultBanks mirrors the issuing banks the model was trained on.
var defaultBanks = map[string]string{
	"ICICI Bank":     "B001",
	"SBI":            "B002",
	"HDFC Bank":      "B003",
	"Federal Bank":   "B004",
	"Andhra Bank":    "B005",
	"Bank of Baroda": "B006",
	"Yes Bank":       "B007",
	"Kotak Bank":     "B008",
	"Axis Bank":      "B009",
}

var defaultMerchants = map[string]string{
	"Uber":             "M001",
	"Zomato":           "M002",
	"Myntra":           "M003",
	"Lifestyle":        "M004",
	"Tata Cliq":        "M005",
	"Flipkart":         "M006",
	"Amazon India":     "M007",
	"Big Bazaar":       "M008",
	"Reliance Digital": "M009",
	"Swiggy":           "M010",
}

// All merchants currently operate in the same set of cities.
var defaultStates = []string{
	"Ahmedabad", "Bangalore", "Chennai", "Delhi", "Hyderabad",
	"Jaipur", "Kochi", "Kolkata", "Lucknow", "Mumbai",
}

// Default returns the built-in reference tables.
func Default() *Tables {
	states := make(map[string][]string, len(defaultMerchants))
	for name := range defaultMerchants {
		states[name] = defaultStates
	}
	return &Tables{
		banks:          defaultBanks,
		merchants:      defaultMerchants,
		merchantStates: states,
	}
}

// fileFormat is the JSON shape of an external reference table file.
type fileFormat struct {
	Banks          map[string]string   `json:"banks"`
	Merchants      map[string]string   `json:"merchants"`
	MerchantStates map[string][]string `json:"merchant_states"`
}

// LoadFile reads reference tables from a JSON file, replacing the defaults.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse reference file: %w", err)
	}
	if len(f.Banks) == 0 || len(f.Merchants) == 0 {
		return nil, fmt.Errorf("reference file %s: banks and merchants must be non-empty", path)
	}
	for name := range f.Merchants {
		if len(f.MerchantStates[name]) == 0 {
			return nil, fmt.Errorf("reference file %s: merchant %q has no valid states", path, name)
		}
	}

	return &Tables{
		banks:          f.Banks,
		merchants:      f.Merchants,
		merchantStates: f.MerchantStates,
	}, nil
}

// BankID resolves a bank name to its canonical identifier.
func (t *Tables) BankID(name string) (string, bool) {
	id, ok := t.banks[name]
	return id, ok
}

// MerchantID resolves a merchant name to its canonical identifier.
func (t *Tables) MerchantID(name string) (string, bool) {
	id, ok := t.merchants[name]
	return id, ok
}

// ValidState reports whether a merchant operates in the given state.
func (t *Tables) ValidState(merchant, state string) bool {
	for _, s := range t.merchantStates[merchant] {
		if s == state {
			return true
		}
	}
	return false
}

// Banks returns bank names in sorted order.
func (t *Tables) Banks() []string {
	return sortedKeys(t.banks)
}

// Merchants returns merchant names in sorted order.
func (t *Tables) Merchants() []string {
	return sortedKeys(t.merchants)
}

// States returns the valid states for a merchant.
func (t *Tables) States(merchant string) []string {
	states := t.merchantStates[merchant]
	out := make([]string, len(states))
	copy(out, states)
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
