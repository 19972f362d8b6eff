package models

// TransitionAction is a request to move a transaction to its next status.
type TransitionAction string

const (
	ActionDealerApprove TransitionAction = "dealer_approve"
	ActionDealerReject  TransitionAction = "dealer_reject"
	ActionAdminApprove  TransitionAction = "admin_approve"
	ActionAdminReject   TransitionAction = "admin_reject"
	ActionComplete      TransitionAction = "complete"
)

// Transition is one allowed edge of the status automaton. Credit is true when
// taking the edge returns Amount points to the owner: the approval credit of an
// earned request or the refund of a redemption.
type Transition struct {
	From   TransactionStatus
	To     TransactionStatus
	Credit bool
}

type transitionKey struct {
	typ    TransactionType
	from   TransactionStatus
	action TransitionAction
}

var transitions = map[transitionKey]Transition{
	{TransactionTypeEarned, TransactionStatusPending, ActionDealerApprove}: {
		From: TransactionStatusPending, To: TransactionStatusDealerApproved,
	},
	{TransactionTypeEarned, TransactionStatusPending, ActionDealerReject}: {
		From: TransactionStatusPending, To: TransactionStatusRejected,
	},
	{TransactionTypeEarned, TransactionStatusPending, ActionAdminReject}: {
		From: TransactionStatusPending, To: TransactionStatusRejected,
	},
	{TransactionTypeEarned, TransactionStatusDealerApproved, ActionAdminApprove}: {
		From: TransactionStatusDealerApproved, To: TransactionStatusApproved, Credit: true,
	},
	{TransactionTypeEarned, TransactionStatusDealerApproved, ActionAdminReject}: {
		From: TransactionStatusDealerApproved, To: TransactionStatusRejected,
	},

	{TransactionTypeRedeemed, TransactionStatusPending, ActionAdminApprove}: {
		From: TransactionStatusPending, To: TransactionStatusApproved,
	},
	{TransactionTypeRedeemed, TransactionStatusDealerApproved, ActionAdminApprove}: {
		From: TransactionStatusDealerApproved, To: TransactionStatusApproved,
	},
	{TransactionTypeRedeemed, TransactionStatusPending, ActionAdminReject}: {
		From: TransactionStatusPending, To: TransactionStatusRejected, Credit: true,
	},
	{TransactionTypeRedeemed, TransactionStatusDealerApproved, ActionAdminReject}: {
		From: TransactionStatusDealerApproved, To: TransactionStatusRejected, Credit: true,
	},
	{TransactionTypeRedeemed, TransactionStatusApproved, ActionComplete}: {
		From: TransactionStatusApproved, To: TransactionStatusCompleted,
	},
}

// NextTransition looks up the edge for action out of status from. The second
// result is false when the automaton has no such edge.
func NextTransition(typ TransactionType, from TransactionStatus, action TransitionAction) (Transition, bool) {
	t, ok := transitions[transitionKey{typ, from, action}]
	return t, ok
}

// IsTerminal reports whether no action can move a transaction of type typ out
// of status s.
func IsTerminal(typ TransactionType, s TransactionStatus) bool {
	for k := range transitions {
		if k.typ == typ && k.from == s {
			return false
		}
	}
	return true
}
