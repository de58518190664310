package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ActionAssigned    = "assigned"
	ActionReactivated = "reactivated"
	ActionNotesEdited = "notes_edited"
	ActionUnassigned  = "unassigned"
)

// AssignmentEvent is one entry of a patient's assignment history.
type AssignmentEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    string             `bson:"action" json:"action"`
	MappingID uint               `bson:"mappingId" json:"mapping_id"`
	PatientID uint               `bson:"patientId" json:"patient_id"`
	DoctorID  uint               `bson:"doctorId" json:"doctor_id"`
	UserID    uint               `bson:"userId" json:"user_id"`
	At        time.Time          `bson:"at" json:"at"`
}

// AuditRecorder appends assignment events somewhere durable.
type AuditRecorder interface {
	Record(ctx context.Context, ev AssignmentEvent) error
}

// MongoAuditRecorder writes events to the assignment_events collection.
type MongoAuditRecorder struct {
	coll *mongo.Collection
}

func NewMongoAuditRecorder(db *mongo.Database) *MongoAuditRecorder {
	return &MongoAuditRecorder{coll: db.Collection("assignment_events")}
}

func (r *MongoAuditRecorder) Record(ctx context.Context, ev AssignmentEvent) error {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, ev)
	return err
}

// NopAuditRecorder drops events. Used when MONGO_URI is not set.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, AssignmentEvent) error { return nil }
