package transaction

import "encoding/json"

// CreateTransactionInput is the transaction-creation request body. The owner
// is always the authenticated principal; a caller-supplied userId is
// ignored.
type CreateTransactionInput struct {
	Type            string          `json:"type" validate:"required,oneof=transfer batch"`
	Recipient       string          `json:"recipient" validate:"required"`
	Amount          string          `json:"amount" validate:"required"`
	TokenSymbol     string          `json:"tokenSymbol"`
	BatchOperations json.RawMessage `json:"batchOperations,omitempty"`
}

// UpdateTransactionInput is the partial status-update body. The owner is
// immutable and has no field here.
type UpdateTransactionInput struct {
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed failed"`
	Hash         *string `json:"hash,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
}
