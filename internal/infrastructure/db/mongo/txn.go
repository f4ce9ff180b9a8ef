package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner implements ports.TxRunner on a MongoDB session. Repositories pick
// up the transaction through the mongo.SessionContext flowing in ctx, so a
// mutation and its audit entry commit or roll back as one group.
type TxRunner struct {
	client *mongo.Client
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

// WithinTx starts a session transaction and runs fn inside it. The driver
// aborts the transaction on any error or panic exit path; it commits only
// when fn returns nil.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
