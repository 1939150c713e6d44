// Package user exposes the user-profile endpoints: wallet update and the
// transaction listing for the authenticated user.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/walletmaster/backend/pkg/middleware"
	txsvc "github.com/walletmaster/backend/pkg/service/transaction"
	usersvc "github.com/walletmaster/backend/pkg/service/user"
	"github.com/walletmaster/backend/webapi/common"
)

// Routes registers the user endpoints. Both verbs are accepted for the
// wallet update because deployed frontends disagree on which one they send.
func Routes(app *fiber.App, userSvc *usersvc.Service, txSvc *txsvc.Service) {
	app.Put("/api/user/wallet", middleware.RequireAuth(), UpdateWallet(userSvc))
	app.Patch("/api/user/wallet", middleware.RequireAuth(), UpdateWallet(userSvc))
	app.Get("/api/user/transactions", middleware.RequireAuth(), ListTransactions(txSvc))
}

// UpdateWallet sets the authenticated user's wallet address. The target is
// always the principal's own record, so the ownership comparison is the
// identity lookup itself.
// @Summary Update wallet address
// @Tags user
// @Accept json
// @Produce json
// @Param request body WalletUpdateInput true "Wallet address"
// @Success 200 {object} dto.UserRead
// @Failure 400 {object} common.ErrorBody
// @Failure 401 {object} common.ErrorBody
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/user/wallet [put]
func UpdateWallet(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WalletUpdateInput](c)
		if input == nil {
			return err // error response already written
		}
		principal := middleware.PrincipalFromCtx(c)

		u, err := userSvc.UpdateWallet(c.Context(), principal.UserID, input.WalletAddress)
		if err != nil {
			log.Errorf("Wallet update failed: %v", err)
			return common.ErrorJSON(
				c, fiber.StatusInternalServerError,
				"Failed to update wallet",
				common.CodeUpdateError,
			)
		}
		if u == nil {
			return common.ErrorJSON(
				c, fiber.StatusNotFound,
				"User not found",
				common.CodeUserNotFound,
			)
		}
		return c.JSON(u)
	}
}

// ListTransactions returns the authenticated user's transactions,
// newest-first.
// @Summary List own transactions
// @Tags user
// @Produce json
// @Success 200 {array} dto.TransactionRead
// @Failure 401 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/user/transactions [get]
func ListTransactions(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := middleware.PrincipalFromCtx(c)
		txs, err := txSvc.ListByUser(c.Context(), principal.UserID)
		if err != nil {
			log.Errorf("Transaction listing failed: %v", err)
			return common.ErrorJSON(
				c, fiber.StatusInternalServerError,
				"Failed to get transactions",
				common.CodeFetchError,
			)
		}
		return c.JSON(txs)
	}
}
