// internal/app/system/txn/txn.go

// Package txn wraps multi-document MongoDB transactions. A transaction
// groups writes to the suggestions and users collections into one
// commit/abort unit; on any error the session aborts and store state is
// left untouched.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// WithTransaction runs fn inside a session transaction with snapshot
// read concern and majority write concern. fn must issue every store
// operation through the supplied SessionContext so the writes join the
// transaction. The driver aborts on error and retries transient
// conflicts (two callers racing on the same document), so concurrent
// read-modify-write sequences cannot lose updates.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts)
	return err
}

// Server error codes returned when transactions are attempted against a
// deployment that cannot run them (standalone mongod, old wire version).
const (
	codeIllegalOperation        = 20
	codeCommandNotSupported     = 51
	codeOperationNotSupportedIn = 263
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions at all (as opposed to a transaction that
// failed). Used by tests and startup checks to degrade gracefully on
// standalone servers.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupportedIn:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "illegal operation"):
		return true
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set"):
		return true
	case strings.Contains(msg, "transaction") && strings.Contains(msg, "session"):
		return true
	case strings.Contains(msg, "session") && strings.Contains(msg, "not supported"):
		return true
	}
	return false
}
