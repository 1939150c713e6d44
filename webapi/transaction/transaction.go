// Package transaction exposes the transaction CRUD endpoints. Every
// handler touching a record by id runs the same three-step check: require a
// principal, load the record (404 when absent), compare the owner (403 on
// mismatch). Only then does it read or mutate.
package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/dto"
	"github.com/walletmaster/backend/pkg/middleware"
	txsvc "github.com/walletmaster/backend/pkg/service/transaction"
	"github.com/walletmaster/backend/webapi/common"
)

// Routes registers the transaction endpoints.
func Routes(app *fiber.App, txSvc *txsvc.Service) {
	app.Post("/api/transactions", middleware.RequireAuth(), CreateTransaction(txSvc))
	app.Get("/api/transactions/:id", middleware.RequireAuth(), GetTransaction(txSvc))
	app.Patch("/api/transactions/:id", middleware.RequireAuth(), UpdateTransaction(txSvc))
}

// CreateTransaction records a new pending transaction owned by the
// authenticated principal.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionInput true "Transaction fields"
// @Success 200 {object} dto.TransactionRead
// @Failure 400 {object} common.ErrorBody
// @Failure 401 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/transactions [post]
func CreateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if input == nil {
			return err // error response already written
		}
		principal := middleware.PrincipalFromCtx(c)

		tx, err := txSvc.Create(c.Context(), &dto.TransactionCreate{
			UserID:          principal.UserID,
			Type:            dto.TransactionType(input.Type),
			Recipient:       input.Recipient,
			Amount:          input.Amount,
			TokenSymbol:     input.TokenSymbol,
			BatchOperations: input.BatchOperations,
		})
		if err != nil {
			log.Errorf("Transaction creation failed: %v", err)
			return common.ErrorJSON(
				c, fiber.StatusInternalServerError,
				"Failed to create transaction",
				common.CodeCreationError,
			)
		}
		return c.JSON(tx)
	}
}

// GetTransaction returns a single transaction, owner-only.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionRead
// @Failure 401 {object} common.ErrorBody
// @Failure 403 {object} common.ErrorBody
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/transactions/{id} [get]
func GetTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx, errResp := loadOwnedTransaction(c, txSvc)
		if tx == nil {
			return errResp
		}
		return c.JSON(tx)
	}
}

// UpdateTransaction applies a partial status update, owner-only.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionInput true "Partial update"
// @Success 200 {object} dto.TransactionRead
// @Failure 400 {object} common.ErrorBody
// @Failure 401 {object} common.ErrorBody
// @Failure 403 {object} common.ErrorBody
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/transactions/{id} [patch]
func UpdateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, errResp := loadOwnedTransaction(c, txSvc)
		if existing == nil {
			return errResp
		}

		input, err := common.BindAndValidate[UpdateTransactionInput](c)
		if input == nil {
			return err // error response already written
		}

		update := &dto.TransactionUpdate{
			Hash:         input.Hash,
			ErrorMessage: input.ErrorMessage,
		}
		if input.Status != nil {
			status := dto.TransactionStatus(*input.Status)
			update.Status = &status
		}

		tx, err := txSvc.Update(c.Context(), existing.ID, update)
		if err != nil {
			log.Errorf("Transaction update failed: %v", err)
			return common.ErrorJSON(
				c, fiber.StatusInternalServerError,
				"Failed to update transaction",
				common.CodeUpdateError,
			)
		}
		if tx == nil {
			return common.ErrorJSON(
				c, fiber.StatusNotFound,
				"Transaction not found",
				common.CodeTransactionNotFound,
			)
		}
		return c.JSON(tx)
	}
}

// loadOwnedTransaction performs the uniform ownership check. It returns the
// transaction, or nil plus the error response it already picked: 404 for
// an unknown or unparseable id, 403 when the principal is not the owner.
func loadOwnedTransaction(
	c *fiber.Ctx,
	txSvc *txsvc.Service,
) (*dto.TransactionRead, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, common.ErrorJSON(
			c, fiber.StatusNotFound,
			"Transaction not found",
			common.CodeTransactionNotFound,
		)
	}

	tx, err := txSvc.Get(c.Context(), id)
	if err != nil {
		log.Errorf("Transaction lookup failed: %v", err)
		return nil, common.ErrorJSON(
			c, fiber.StatusInternalServerError,
			"Failed to get transaction",
			common.CodeFetchError,
		)
	}
	if tx == nil {
		return nil, common.ErrorJSON(
			c, fiber.StatusNotFound,
			"Transaction not found",
			common.CodeTransactionNotFound,
		)
	}

	principal := middleware.PrincipalFromCtx(c)
	if tx.UserID != principal.UserID {
		return nil, common.ErrorJSON(
			c, fiber.StatusForbidden,
			"You can only access your own transactions",
			common.CodeAccessDenied,
		)
	}
	return tx, nil
}
