// Package features turns a validated transaction into the numeric vector
// the trained classifier expects.
//
// The encoding is fixed by the preprocessing artifacts: column order
// follows feature_columns, categorical columns are label-encoded with the
// training-time codes, and the numeric column group is standardized with
// the training-time scaler. Encoding is deterministic and total: columns
// the record does not carry default to zero, and category values never
// seen during training fall back to code zero instead of failing the
// request.
package features

import (
	"context"
	"strconv"

	"github.com/mbd888/fraudscore/internal/artifacts"
	"github.com/mbd888/fraudscore/internal/logging"
	"github.com/mbd888/fraudscore/internal/metrics"
)

// Record is the fixed-schema view of a validated transaction, using the
// column names assigned by the training pipeline.
type Record struct {
	CustomerName  string
	CustomerState string
	Category      string
	CardType      string
	BankID        string
	BankName      string
	MerchantID    string
	MerchantName  string
	MerchantState string
	Amount        float64
	Hour          int
	CardPresent   bool
	International bool
}

// field resolves a training column name against the record. Categorical
// lookups use str (values are string-cast the way training did); numeric
// lookups use num. ok is false for columns the record does not carry,
// which the encoder zero-fills.
func (r *Record) field(col string) (str string, num float64, ok bool) {
	switch col {
	case "Customer Name":
		return r.CustomerName, 0, true
	case "Customer State":
		return r.CustomerState, 0, true
	case "Transaction Category":
		return r.Category, 0, true
	case "Card Type":
		return r.CardType, 0, true
	case "BANK ID":
		return r.BankID, 0, true
	case "Bank":
		return r.BankName, 0, true
	case "Merchant Id":
		return r.MerchantID, 0, true
	case "Merchant Name":
		return r.MerchantName, 0, true
	case "merchant_state":
		return r.MerchantState, 0, true
	case "Transaction Amount":
		return strconv.FormatFloat(r.Amount, 'g', -1, 64), r.Amount, true
	case "Transaction Hour":
		return strconv.Itoa(r.Hour), float64(r.Hour), true
	case "Card Present":
		return boolField(r.CardPresent)
	case "International":
		return boolField(r.International)
	}
	return "", 0, false
}

func boolField(b bool) (string, float64, bool) {
	if b {
		return "1", 1, true
	}
	return "0", 0, true
}

// Encoder maps records onto the training feature schema.
type Encoder struct {
	bundle *artifacts.Bundle
}

// NewEncoder creates an encoder over a validated artifact bundle.
func NewEncoder(bundle *artifacts.Bundle) *Encoder {
	return &Encoder{bundle: bundle}
}

// Columns returns the length of the produced vectors.
func (e *Encoder) Columns() int {
	return len(e.bundle.FeatureColumns)
}

// Encode produces the feature vector for a record. The result always has
// exactly len(feature_columns) elements in schema order.
func (e *Encoder) Encode(ctx context.Context, rec *Record) []float64 {
	vec := make([]float64, len(e.bundle.FeatureColumns))

	for i, col := range e.bundle.FeatureColumns {
		str, num, ok := rec.field(col)
		if !ok {
			// Column the model was trained on but the record does not
			// supply: zero-fill, not an error.
			continue
		}

		if e.bundle.IsCategorical(col) {
			code, found := e.bundle.Encoders[col].Encode(str)
			if !found {
				// Unseen-category fallback: an out-of-vocabulary value
				// degrades to code zero rather than rejecting the
				// transaction.
				metrics.UnseenCategoryTotal.WithLabelValues(col).Inc()
				logging.L(ctx).Debug("unseen category fallback",
					"column", col,
					"value", str,
				)
				code = 0
			}
			vec[i] = float64(code)
			continue
		}

		vec[i] = num
	}

	if len(e.bundle.NumericCols) > 0 {
		group := make([]float64, len(e.bundle.NumericCols))
		for j, col := range e.bundle.NumericCols {
			idx, _ := e.bundle.ColumnIndex(col)
			group[j] = vec[idx]
		}
		e.bundle.Scaler.Transform(group)
		for j, col := range e.bundle.NumericCols {
			idx, _ := e.bundle.ColumnIndex(col)
			vec[idx] = group[j]
		}
	}

	return vec
}
