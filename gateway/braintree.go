package gateway

import (
	"context"
	"math"

	"github.com/braintree-go/braintree-go"

	"github.com/Mayur79/ecommercebackend/config"
)

// SaleResult is the snapshot of a gateway transaction stored with an order.
// It is written once at checkout and never reconciled with the gateway.
type SaleResult struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	Success       bool    `json:"success"`
}

// Gateway is the payment gateway port: issue a client token, run a sale.
type Gateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, amount float64, nonce string) (*SaleResult, error)
}

type Braintree struct {
	bt *braintree.Braintree
}

func NewBraintree(cfg config.BraintreeConfig) *Braintree {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}
	return &Braintree{
		bt: braintree.New(env, cfg.MerchantID, cfg.PublicKey, cfg.PrivateKey),
	}
}

func (g *Braintree) ClientToken(ctx context.Context) (string, error) {
	return g.bt.ClientToken().Generate(ctx)
}

func (g *Braintree) Sale(ctx context.Context, amount float64, nonce string) (*SaleResult, error) {
	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(int64(math.Round(amount*100)), 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, err
	}

	return &SaleResult{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Amount:        amount,
		Currency:      tx.CurrencyISOCode,
		Success:       true,
	}, nil
}
