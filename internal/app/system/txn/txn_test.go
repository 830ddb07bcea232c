package txn

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some random error"), false},
		{"command error code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}, true},
		{"command error code 51", mongo.CommandError{Code: 51, Message: "Illegal operation"}, true},
		{"command error code 263", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"other command error code", mongo.CommandError{Code: 100, Message: "Some other error"}, false},
		{"transaction plus replica set keywords", errors.New("transaction failed because this is not a replica set member"), true},
		{"session plus not supported keywords", errors.New("session operations are not supported on this server"), true},
		{"transaction keyword alone", errors.New("transaction failed"), false},
		{"transaction plus session keywords", errors.New("cannot start transaction in current session state"), true},
		{"illegal operation keywords", errors.New("illegal operation during transaction"), true},
		{"uppercase keywords", errors.New("TRANSACTION FAILED on REPLICA SET"), true},
		{"mixed case keywords", errors.New("Transaction Session error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
