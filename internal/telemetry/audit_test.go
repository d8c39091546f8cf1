package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tribune/internal/mocks"
)

func TestAuditEmitterPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.tribune", "tribune", "test")

	userID := int64(7)
	publisher.On("Publish", mock.Anything, "audit.tribune", mock.MatchedBy(func(event any) bool {
		env, ok := event.(AuditEnvelope)
		if !ok {
			return false
		}
		return env.SchemaVersion == 1 &&
			env.EventType == "audit_log" &&
			env.Service == "tribune" &&
			env.Environment == "test" &&
			env.RequestID == "req-1" &&
			env.UserID != nil && *env.UserID == 7 &&
			env.Payload.Level == "INFO" &&
			env.Payload.Text == "Post created"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), Event{Level: "INFO", Text: "Post created", RequestID: "req-1", UserID: &userID})
	publisher.AssertExpectations(t)
}

func TestAuditEmitterSwallowsPublishError(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.tribune", "tribune", "test")

	publisher.On("Publish", mock.Anything, "audit.tribune", mock.Anything).
		Return(errors.New("broker gone")).Once()

	require.NotPanics(t, func() {
		emitter.Emit(context.Background(), Event{Level: "ERROR", Text: "login failed", RequestID: "req-2"})
	})
	publisher.AssertExpectations(t)
}

func TestAuditEmitterNilSafe(t *testing.T) {
	var emitter *AuditEmitter
	require.NotPanics(t, func() {
		emitter.Emit(context.Background(), Event{Level: "INFO", Text: "noop", RequestID: "req-3"})
	})

	emitter = NewAuditEmitter(nil, "audit.tribune", "tribune", "test")
	require.NotPanics(t, func() {
		emitter.Emit(context.Background(), Event{Level: "INFO", Text: "noop", RequestID: "req-4"})
	})
}
