package user

// WalletUpdateInput is the wallet-update request body. eth_addr enforces
// 0x + 40 hex characters.
type WalletUpdateInput struct {
	WalletAddress string `json:"walletAddress" validate:"required,eth_addr"`
}
