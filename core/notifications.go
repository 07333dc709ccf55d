package core

// Notify delivers a best-effort notification that txID has been recorded,
// to the principal `to`, failing with NotificationFailed if the underlying
// Notifier errors. It is idempotent only up to the first successful call:
// a second attempt on an already-acknowledged transaction reports
// AlreadyActioned.
func (e *Engine) Notify(txID TxId, to Principal) error {
	if !e.Ledger.NotificationExists(txID) {
		return ErrTransactionDoesNotExist
	}
	if e.Ledger.NotificationActioned(txID) {
		return ErrAlreadyActioned
	}
	if err := e.Notifier(txID, to); err != nil {
		return NewNotificationFailed(txID)
	}
	e.Ledger.SetNotificationActioned(txID, to)
	return nil
}

// ConsumeNotification lets caller acknowledge txID directly, without going
// through the Notifier side effect. It is used by a recipient that polls
// for new transactions rather than waiting to be notified.
func (e *Engine) ConsumeNotification(txID TxId, caller Principal) error {
	if !e.Ledger.NotificationExists(txID) {
		return ErrNotificationDoesNotExist
	}
	if e.Ledger.NotificationActioned(txID) {
		return ErrAlreadyActioned
	}
	e.Ledger.SetNotificationActioned(txID, caller)
	return nil
}

// ApproveAndNotify approves spender for amount and then notifies it of the
// resulting transaction. If the approval succeeds but the notification
// does not, the transaction id still stands and the failure is reported as
// ApproveSucceededButNotifyFailed so the caller knows not to retry the
// approval itself.
func (e *Engine) ApproveAndNotify(caller, spender Principal, amount Tokens128) (TxId, error) {
	id, err := e.Approve(caller, spender, amount)
	if err != nil {
		return 0, err
	}
	if notifyErr := e.Notify(id, spender); notifyErr != nil {
		txErr, ok := notifyErr.(*TxError)
		if !ok {
			txErr = ErrUnauthorized
		}
		return id, NewApproveSucceededButNotifyFailed(txErr)
	}
	return id, nil
}
