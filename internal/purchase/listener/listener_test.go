package listener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordedPurchase struct {
	productID string
	variantID string
	qty       int
}

type fakePurchaseUC struct {
	purchases []recordedPurchase
}

func (f *fakePurchaseUC) CanPurchase(_ context.Context, _ string, _ int) (bool, error) {
	return true, nil
}

func (f *fakePurchaseUC) TotalPrice(_ context.Context, _ string, _ int) (float64, error) {
	return 0, nil
}

func (f *fakePurchaseUC) PurchaseProduct(_ context.Context, productID string, qty int) error {
	f.purchases = append(f.purchases, recordedPurchase{productID: productID, qty: qty})
	return nil
}

func (f *fakePurchaseUC) PurchaseVariant(_ context.Context, variantID string, qty int) error {
	f.purchases = append(f.purchases, recordedPurchase{variantID: variantID, qty: qty})
	return nil
}

func TestProcessMessage_OrderCreated(t *testing.T) {
	uc := &fakePurchaseUC{}
	l := &OrderListener{uc: uc, logger: zap.NewNop()}

	msg := []byte(`{
		"event_id": "e-1",
		"event_type": "OrderCreated",
		"payload": {
			"id": "order-1",
			"items": [
				{"product_id": "prod-1", "quantity": 2},
				{"product_id": "prod-2", "variant_id": "v-9", "quantity": 1}
			]
		}
	}`)

	l.processMessage(context.Background(), msg)

	assert.Equal(t, []recordedPurchase{
		{productID: "prod-1", qty: 2},
		{variantID: "v-9", qty: 1},
	}, uc.purchases)
}

func TestProcessMessage_IgnoresOtherEvents(t *testing.T) {
	uc := &fakePurchaseUC{}
	l := &OrderListener{uc: uc, logger: zap.NewNop()}

	l.processMessage(context.Background(), []byte(`{"event_type":"OrderCancelled","payload":{"id":"o-1"}}`))
	assert.Empty(t, uc.purchases)
}

func TestProcessMessage_MalformedPayload(t *testing.T) {
	uc := &fakePurchaseUC{}
	l := &OrderListener{uc: uc, logger: zap.NewNop()}

	l.processMessage(context.Background(), []byte(`not json`))
	assert.Empty(t, uc.purchases)
}
