// Package scoring runs the fraud scoring pipeline.
//
// Flow:
//  1. Validate the request against the reference tables
//  2. Encode the transaction into the training feature schema
//  3. Invoke the classifier once for P(fraud)
//  4. Apply the risk policy (score, bucket, flag, recommendation)
//  5. Persist the finalized record and broadcast it
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbd888/fraudscore/internal/features"
	"github.com/mbd888/fraudscore/internal/idgen"
	"github.com/mbd888/fraudscore/internal/metrics"
	"github.com/mbd888/fraudscore/internal/model"
	"github.com/mbd888/fraudscore/internal/realtime"
	"github.com/mbd888/fraudscore/internal/refdata"
	"github.com/mbd888/fraudscore/internal/risk"
	"github.com/mbd888/fraudscore/internal/traces"
	"github.com/mbd888/fraudscore/internal/validation"
)

var (
	// ErrClassifier marks a failed classifier invocation. The request
	// was valid but no probability could be obtained.
	ErrClassifier = errors.New("classifier invocation failed")

	// ErrPersistence marks a store write failure after scoring. The
	// assessment was computed and is returned alongside this error.
	ErrPersistence = errors.New("failed to persist scoring result")
)

// Service ties the pipeline stages together
type Service struct {
	tables     *refdata.Tables
	encoder    *features.Encoder
	classifier model.Classifier
	store      Store
	hub        *realtime.Hub // nil disables broadcasting
	logger     *slog.Logger
}

// NewService creates a scoring service
func NewService(tables *refdata.Tables, encoder *features.Encoder, classifier model.Classifier, store Store, hub *realtime.Hub, logger *slog.Logger) *Service {
	return &Service{
		tables:     tables,
		encoder:    encoder,
		classifier: classifier,
		store:      store,
		hub:        hub,
		logger:     logger,
	}
}

// Score runs the full pipeline for one transaction.
//
// Validation failures return a *refdata.ValidationError or
// validation.FieldErrors. Classifier failures wrap ErrClassifier. A
// store failure after scoring returns the computed response together
// with an error wrapping ErrPersistence, so the result is never
// silently dropped.
func (s *Service) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	if errs := validation.Validate(
		validation.PositiveAmount("amount", req.Amount),
		validation.ValidHour("hour", req.Hour),
	); len(errs) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(errs[0].Field).Inc()
		return nil, errs
	}

	resolved, verr := s.tables.Validate(req.BankName, req.MerchantName, req.MerchantState)
	if verr != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(verr.Field).Inc()
		return nil, verr
	}

	rec := &features.Record{
		CustomerName:  validation.SanitizeString(req.CustomerName, validation.MaxNameLength),
		CustomerState: req.CustomerState,
		Category:      req.Category,
		CardType:      req.CardType,
		BankID:        resolved.BankID,
		BankName:      req.BankName,
		MerchantID:    resolved.MerchantID,
		MerchantName:  req.MerchantName,
		MerchantState: req.MerchantState,
		Amount:        req.Amount,
		Hour:          req.Hour,
		CardPresent:   req.CardPresent,
		International: req.International,
	}

	encodeCtx, encodeSpan := traces.StartSpan(ctx, "features.encode",
		traces.Bank(resolved.BankID), traces.Merchant(resolved.MerchantID), traces.Amount(req.Amount))
	vector := s.encoder.Encode(encodeCtx, rec)
	encodeSpan.End()

	classifyCtx, classifySpan := traces.StartSpan(ctx, "classifier.predict")
	start := time.Now()
	probability, err := s.classifier.PredictProba(classifyCtx, vector)
	metrics.ClassifierDuration.Observe(time.Since(start).Seconds())
	classifySpan.End()
	if err != nil {
		metrics.ClassifierFailuresTotal.Inc()
		s.logger.Error("classifier invocation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrClassifier, err)
	}

	assessment := risk.Assess(probability)
	metrics.TransactionsScoredTotal.WithLabelValues(string(assessment.Level)).Inc()
	if assessment.IsFraud {
		metrics.FraudFlaggedTotal.Inc()
	}

	tx := &ScoredTransaction{
		ID:            idgen.WithPrefix("txn_"),
		CustomerName:  rec.CustomerName,
		CustomerState: req.CustomerState,
		BankID:        resolved.BankID,
		BankName:      req.BankName,
		MerchantID:    resolved.MerchantID,
		MerchantName:  req.MerchantName,
		MerchantState: req.MerchantState,
		Timestamp:     time.Now().UTC(),
		Amount:        req.Amount,
		Category:      req.Category,
		CardType:      req.CardType,
		IsFraud:       assessment.IsFraud,
		FraudScore:    assessment.Score,
		FraudLevel:    string(assessment.Level),
		Hour:          req.Hour,
		CardPresent:   req.CardPresent,
		International: req.International,
	}

	resp := &ScoreResponse{
		TransactionID: tx.ID,
		Assessment:    assessment,
	}

	persistCtx, persistSpan := traces.StartSpan(ctx, "store.insert",
		traces.FraudScore(assessment.Score), traces.FraudLevel(string(assessment.Level)))
	err = s.store.Insert(persistCtx, tx)
	persistSpan.End()
	if err != nil {
		metrics.PersistenceFailuresTotal.Inc()
		s.logger.Error("failed to persist scored transaction",
			"transaction_id", tx.ID,
			"fraud_score", assessment.Score,
			"error", err,
		)
		return resp, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logger.Info("transaction scored",
		"transaction_id", tx.ID,
		"bank_id", resolved.BankID,
		"merchant_id", resolved.MerchantID,
		"fraud_score", assessment.Score,
		"fraud_level", assessment.Level,
		"is_fraud", assessment.IsFraud,
	)

	if s.hub != nil {
		s.hub.BroadcastScore(map[string]interface{}{
			"transaction_id": tx.ID,
			"merchant_name":  tx.MerchantName,
			"merchant_state": tx.MerchantState,
			"amount":         tx.Amount,
			"fraud_score":    float64(tx.FraudScore),
			"fraud_level":    tx.FraudLevel,
			"is_fraud":       tx.IsFraud,
			"timestamp":      tx.Timestamp,
		})
	}

	return resp, nil
}

// Recent returns the latest scored transactions
func (s *Service) Recent(ctx context.Context, limit int) ([]*ScoredTransaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.store.List(ctx, limit)
}
