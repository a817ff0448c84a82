package repositories

import "context"

// TxFn is a function executed within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager coordinates multi-statement operations so a failure
// leaves the previously stored state unchanged.
type TransactionManager interface {
	// ExecTx executes fn inside a transaction. The transaction is carried in
	// the context so repositories participate automatically.
	ExecTx(ctx context.Context, fn TxFn) error
}
