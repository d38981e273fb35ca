package paymentgateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
)

func CreateMidtransClient(config *config.Config) *coreapi.Client {
	env := midtrans.Sandbox
	if config.MidtransConfig.Environment == "production" {
		env = midtrans.Production
	}

	client := &coreapi.Client{}
	client.New(config.MidtransConfig.ServerKey, env)

	return client
}

type MidtransVerifier struct {
	client *coreapi.Client
}

func CreateMidtransVerifier(client *coreapi.Client) *MidtransVerifier {
	return &MidtransVerifier{client: client}
}

// GetPaymentDetails maps a Midtrans transaction status onto the processor
// neutral shape. Settled and accepted captures count as completed.
func (v *MidtransVerifier) GetPaymentDetails(ctx context.Context, transactionID string) (details dto.PaymentDetails, err error) {
	resp, mErr := v.client.CheckTransaction(transactionID)
	if mErr != nil {
		log.Ctx(ctx).Error().Str("component", "MidtransGetPaymentDetails").Int("status_code", mErr.StatusCode).Msg(mErr.Message)
		if mErr.StatusCode == http.StatusNotFound {
			return details, fmt.Errorf("%w: midtrans has no transaction %q", errs.ErrPaymentNotFound, transactionID)
		}
		return details, fmt.Errorf("midtrans check transaction failed: %s", mErr.Message)
	}

	if resp == nil {
		return details, fmt.Errorf("midtrans check transaction returned no body")
	}

	details = dto.PaymentDetails{
		ID:           resp.TransactionID,
		Status:       midtransStatus(resp.TransactionStatus, resp.FraudStatus),
		Amount:       resp.GrossAmount,
		CurrencyCode: resp.Currency,
		UpdateTime:   resp.SettlementTime,
	}
	if details.UpdateTime == "" {
		details.UpdateTime = resp.TransactionTime
	}

	return details, nil
}

func midtransStatus(transactionStatus string, fraudStatus string) string {
	switch {
	case transactionStatus == "settlement":
		return dto.PaymentStatusCompleted
	case transactionStatus == "capture" && fraudStatus == "accept":
		return dto.PaymentStatusCompleted
	default:
		return transactionStatus
	}
}
