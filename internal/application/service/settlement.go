package service

import (
	"fmt"

	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/pkg/apperror"
)

// settlement is how a bill of Total was paid. Paid + Due always equals Total;
// Cash is what moves through the account and may include Collected.
type settlement struct {
	Total     int64
	Paid      int64 // part of this bill that is settled
	Due       int64 // left on the party's account by this bill
	Collected int64 // excess applied to the party's prior balance
	Change    int64 // handed back to the payer
	Cash      int64 // amount that moves through the cash account
	Debit     int64 // ledger debit against the party
	Credit    int64 // ledger credit against the party
}

// settlePayment splits received against a bill. For a tracked party any
// shortfall is debited and any excess is first applied to a positive prior
// balance, the rest is change. Untracked parties must pay in full.
func settlePayment(total, received, prior int64, tracked bool) (settlement, error) {
	st := settlement{Total: total}

	if !tracked {
		if received < total {
			return st, apperror.NewFieldError("cash_received",
				fmt.Sprintf("walk-in must pay the full amount %d, received %d", total, received))
		}
		st.Paid = total
		st.Change = received - total
		st.Cash = total
		return st, nil
	}

	if received < total {
		st.Paid = received
		st.Due = total - received
		st.Debit = st.Due
		st.Cash = received
		return st, nil
	}

	excess := received - total
	st.Paid = total
	st.Collected = min(excess, max(prior, 0))
	st.Credit = st.Collected
	st.Change = excess - st.Collected
	st.Cash = received - st.Change
	return st, nil
}

// settleReturn refunds a returned bill in full, either through the cash
// account or as a credit on the party's account.
func settleReturn(total int64, onAccount bool) settlement {
	st := settlement{Total: total, Paid: total}
	if onAccount {
		st.Credit = total
	} else {
		st.Cash = total
	}
	return st
}

// foldBalance applies entries, already in (date, seq) order, to an opening balance
func foldBalance(opening int64, entries []entity.LedgerEntry) int64 {
	balance := opening
	for i := range entries {
		balance += entries[i].Net()
	}
	return balance
}
