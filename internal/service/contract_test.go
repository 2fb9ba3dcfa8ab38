package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veeloway/internal/domain"
)

func TestNextStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current domain.ContractStatus
		op      contractOp
		want    domain.ContractStatus
		wantErr bool
	}{
		{"accept pending", domain.ContractStatusPending, opAccept, domain.ContractStatusAccepted, false},
		{"reject pending", domain.ContractStatusPending, opReject, domain.ContractStatusRejected, false},
		{"cancel pending", domain.ContractStatusPending, opCancel, domain.ContractStatusCancelled, false},
		{"start accepted", domain.ContractStatusAccepted, opStart, domain.ContractStatusActive, false},
		{"cancel accepted", domain.ContractStatusAccepted, opCancel, domain.ContractStatusCancelled, false},
		{"finalize active", domain.ContractStatusActive, opFinalize, domain.ContractStatusFinalized, false},
		{"cancel active", domain.ContractStatusActive, opCancel, domain.ContractStatusCancelled, false},
		{"start pending skips acceptance", domain.ContractStatusPending, opStart, "", true},
		{"finalize pending", domain.ContractStatusPending, opFinalize, "", true},
		{"finalize accepted", domain.ContractStatusAccepted, opFinalize, "", true},
		{"accept active", domain.ContractStatusActive, opAccept, "", true},
		{"cancel finalized", domain.ContractStatusFinalized, opCancel, "", true},
		{"accept cancelled", domain.ContractStatusCancelled, opAccept, "", true},
		{"start rejected", domain.ContractStatusRejected, opStart, "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := nextStatus(tc.current, tc.op)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.ContractStatus{
		domain.ContractStatusFinalized,
		domain.ContractStatusCancelled,
		domain.ContractStatusRejected,
	} {
		assert.True(t, status.Terminal(), "%s should be terminal", status)
		_, ok := transitions[status]
		assert.False(t, ok, "%s should have no outgoing transitions", status)
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"cash", "debit_card", "credit_card", "pix", "bank_transfer"} {
		got, err := ValidatePaymentMethod(method)
		require.NoError(t, err, method)
		assert.Equal(t, domain.PaymentMethod(method), got)
	}

	_, err := ValidatePaymentMethod("")
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	_, err = ValidatePaymentMethod("check")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}
