package refdata

import "fmt"

// ValidationError reports a bank/merchant/state combination that is not in
// the reference tables. Field names the offending input.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Field {
	case "merchant_state":
		return fmt.Sprintf("invalid state %q", e.Value)
	default:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
	}
}

// Resolved carries the canonical identifiers of a validated transaction.
type Resolved struct {
	BankID     string
	MerchantID string
}

// Validate checks the bank/merchant/state combination against the tables
// and resolves canonical IDs. Checks run in a fixed order (bank, then
// merchant, then state) and the first failure wins.
func (t *Tables) Validate(bank, merchant, state string) (Resolved, *ValidationError) {
	bankID, ok := t.BankID(bank)
	if !ok {
		return Resolved{}, &ValidationError{Field: "bank", Value: bank}
	}

	merchantID, ok := t.MerchantID(merchant)
	if !ok {
		return Resolved{}, &ValidationError{Field: "merchant_name", Value: merchant}
	}

	if !t.ValidState(merchant, state) {
		return Resolved{}, &ValidationError{Field: "merchant_state", Value: state}
	}

	return Resolved{BankID: bankID, MerchantID: merchantID}, nil
}
