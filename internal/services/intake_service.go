package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	phonevalidator "github.com/pfjetdev/pfgrouptravel/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ErrUnknownRequestType is returned for a request type with no intake rule
var ErrUnknownRequestType = errors.New("unknown request type")

// ValidationError is a caller-fixable rejection. No record is written.
type ValidationError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError means the store was unreachable or rejected the write
type PersistenceError struct {
	Label string
	Err   error
}

func (e *PersistenceError) Error() string {
	return "Failed to save " + e.Label
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Submission is the outcome of an accepted intake request
type Submission struct {
	Type      models.RequestType
	ID        string
	CreatedAt time.Time
	Message   string
}

// IntakeService validates, persists and announces lead submissions
type IntakeService struct {
	store      database.Store
	dispatcher Dispatcher
	rules      map[models.RequestType]*IntakeRule
	validate   *validator.Validate
	phones     *phonevalidator.PhoneValidator
	location   *time.Location
	logger     *logrus.Logger
}

// NewIntakeService creates a new intake service. loc is the zone used for
// the "Received at" line of notifications; nil means UTC.
func NewIntakeService(store database.Store, dispatcher Dispatcher, loc *time.Location, logger *logrus.Logger) *IntakeService {
	if loc == nil {
		loc = time.UTC
	}
	return &IntakeService{
		store:      store,
		dispatcher: dispatcher,
		rules:      IntakeRules,
		validate:   validator.New(),
		phones:     phonevalidator.NewPhoneValidator(),
		location:   loc,
		logger:     logger,
	}
}

// Rule returns the intake rule for t
func (s *IntakeService) Rule(t models.RequestType) (*IntakeRule, bool) {
	rule, ok := s.rules[t]
	return rule, ok
}

// Submit runs one submission through validation, persistence and notification.
// It returns *ValidationError or *PersistenceError on failure.
func (s *IntakeService) Submit(ctx context.Context, t models.RequestType, body []byte, meta SubmissionMeta) (*Submission, error) {
	rule, ok := s.rules[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequestType, t)
	}

	l, verr := s.decode(rule, body)
	if verr != nil {
		return nil, verr
	}

	rec := append(l.record(), database.Field{Column: "status", Value: string(models.LeadStatusNew)})
	res, err := s.store.Insert(ctx, rule.Table, rec)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"request_type": t,
			"table":        rule.Table,
			"request_id":   meta.RequestID,
		}).WithError(err).Error("Failed to persist submission")
		return nil, &PersistenceError{Label: rule.Label, Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"request_type": t,
		"lead_id":      res.ID,
		"request_id":   meta.RequestID,
	}).Info("Submission stored")

	if a, ok := l.(announcer); ok && rule.Notify && s.dispatcher != nil {
		s.dispatcher.Dispatch(t, res.ID, a.summary(meta, s.location))
	}

	return &Submission{
		Type:      t,
		ID:        res.ID,
		CreatedAt: res.CreatedAt,
		Message:   rule.SuccessMessage,
	}, nil
}

// decode checks body against rule and decodes it into the typed lead
func (s *IntakeService) decode(rule *IntakeRule, body []byte) (lead, *ValidationError) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, &ValidationError{Code: CodeInvalidJSON, Message: "Invalid JSON body"}
	}

	if verr := rule.Check(raw); verr != nil {
		return nil, verr
	}

	l := rule.newLead()
	if err := json.Unmarshal(body, l); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, invalidField(typeErr.Field, "has the wrong type")
		}
		return nil, &ValidationError{Code: CodeInvalidJSON, Message: "Invalid JSON body"}
	}

	if err := l.Validate(); err != nil {
		var fe *models.FieldError
		if errors.As(err, &fe) {
			return nil, invalidField(fe.Field, fe.Message)
		}
		return nil, &ValidationError{Code: CodeInvalidField, Message: err.Error()}
	}

	email, phone := l.contact()
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, invalidField("email", "must be a valid email address")
	}
	if _, err := s.phones.Validate(phone); err != nil {
		return nil, invalidField("phone", err.Error())
	}

	return l, nil
}
