package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/pennywise/client/internal/models"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Message string            `json:"message,omitempty"` // Human readable message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper with the money, date
// and transaction coherence rules registered.
func NewValidationHelper() *ValidationHelper {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	_ = v.RegisterValidation("dpositive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	_ = v.RegisterValidation("dateset", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})

	v.RegisterStructValidation(transactionPayloadRules, models.TransactionPayload{})

	return &ValidationHelper{validator: v}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// ValidateTransaction validates a transaction payload.
func (vh *ValidationHelper) ValidateTransaction(p models.TransactionPayload) error {
	return vh.validator.Struct(p)
}

// transactionPayloadRules checks the wallet and category references against
// the transaction kind.
func transactionPayloadRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.TransactionPayload)

	switch p.TransactionType {
	case models.TransactionTypeExpense:
		if p.WalletFromID == nil {
			sl.ReportError(p.WalletFromID, "walletFromId", "WalletFromID", "required_for_expense", "")
		}
	case models.TransactionTypeIncome:
		if p.WalletToID == nil {
			sl.ReportError(p.WalletToID, "walletToId", "WalletToID", "required_for_income", "")
		}
	case models.TransactionTypeTransfer:
		if p.WalletFromID == nil && p.WalletToID == nil {
			sl.ReportError(p.WalletFromID, "walletFromId", "WalletFromID", "one_wallet_required", "")
		}
		if p.CategoryID != nil {
			sl.ReportError(p.CategoryID, "categoryId", "CategoryID", "forbidden_for_transfer", "")
		}
	}
}

// ValidationDetails flattens validator errors into field → reason pairs.
func ValidationDetails(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	details := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		details[fe.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
	}
	return details
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: http.StatusText(statusCode), Message: message}
	if validationErr != nil {
		errorResp.Details = ValidationDetails(validationErr)
	}

	json.NewEncoder(w).Encode(errorResp)
}
