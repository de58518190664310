package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoAuditRecorder_Record(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert succeeds", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		rec := NewMongoAuditRecorder(mt.DB)

		err := rec.Record(context.Background(), AssignmentEvent{
			Action:    ActionAssigned,
			MappingID: 1,
			PatientID: 2,
			DoctorID:  3,
			UserID:    4,
		})
		assert.NoError(t, err)

		started := mt.GetStartedEvent()
		if assert.NotNil(t, started) {
			assert.Equal(t, "insert", started.CommandName)
		}
	})

	mt.Run("write error surfaces", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		rec := NewMongoAuditRecorder(mt.DB)

		err := rec.Record(context.Background(), AssignmentEvent{Action: ActionUnassigned})
		assert.True(t, mongo.IsDuplicateKeyError(err))
	})
}

func TestNopAuditRecorder(t *testing.T) {
	var rec AuditRecorder = NopAuditRecorder{}
	assert.NoError(t, rec.Record(context.Background(), AssignmentEvent{}))
}

func TestMemoryAuditRecorder(t *testing.T) {
	rec := &MemoryAuditRecorder{}
	assert.NoError(t, rec.Record(context.Background(), AssignmentEvent{Action: ActionAssigned, MappingID: 9}))
	events := rec.Events()
	if assert.Len(t, events, 1) {
		assert.Equal(t, uint(9), events[0].MappingID)
		assert.False(t, events[0].At.IsZero())
	}
}
